package queue

import (
	"weather-reminder/internal/domain/model"
	"weather-reminder/pkg/sqs"
)

// WorkerHealthChecker is implemented by *sqs.Worker.
type WorkerHealthChecker interface {
	HealthCheck() sqs.WorkerHealth
}

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker WorkerHealthChecker)
	UnregisterWorker(name string)
}
