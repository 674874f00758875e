package health

import (
	"context"
	"sort"

	"weather-reminder/internal/domain/gateway/cache"
	"weather-reminder/internal/domain/gateway/db"
	"weather-reminder/internal/domain/gateway/queue"
	"weather-reminder/internal/domain/model"
)

type healthUseCase struct {
	dbGateways   map[string]db.HealthDBGateway
	cacheGateway cache.HealthGateway
	queueGateway queue.HealthGateway
}

// NewHealthUseCase aggregates the named database probes into the database component.
func NewHealthUseCase(dbGateways map[string]db.HealthDBGateway, cacheGateway cache.HealthGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateways:   dbGateways,
		cacheGateway: cacheGateway,
		queueGateway: queueGateway,
	}
}

// CheckHealth is DOWN when any component is DOWN. UNKNOWN components (disabled cache, no queue workers) do not fail it.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	dbHealth := useCase.databaseHealth(ctx)
	cacheHealth := useCase.cacheGateway.Health(ctx)
	queueHealth := useCase.queueGateway.Health()

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{dbHealth, cacheHealth, queueHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Cache:    cacheHealth,
		Queue:    queueHealth,
	}
}

func (useCase *healthUseCase) databaseHealth(ctx context.Context) model.ComponentHealthStatus {
	if len(useCase.dbGateways) == 0 {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "No database probes registered"},
		}
	}

	names := make([]string, 0, len(useCase.dbGateways))
	for name := range useCase.dbGateways {
		names = append(names, name)
	}
	sort.Strings(names)

	status := model.StatusUp
	details := make(map[string]string)
	for _, name := range names {
		probe := useCase.dbGateways[name].Health(ctx)
		if probe.Status != model.StatusUp {
			status = model.StatusDown
		}
		details[name+"_status"] = string(probe.Status)
		for key, value := range probe.Details {
			details[name+"_"+key] = value
		}
	}

	return model.ComponentHealthStatus{Status: status, Details: details}
}
