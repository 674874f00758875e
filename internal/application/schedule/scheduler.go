package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weather-reminder/internal/domain/usecase/notification"
	"weather-reminder/internal/domain/usecase/weather"
	"weather-reminder/pkg/log"
	"weather-reminder/pkg/msg"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	UpdateWeatherForecastJob = "Update weather forecast from the weather service"
	SendWeatherForecastJob   = "Send weather forecast to users"

	DefaultUpdateWeatherForecastCron = "50 * * * *"
	DefaultSendWeatherForecastCron   = "0 */1 * * *"
)

// Task is the body of a job. requestID identifies one run in the logs.
type Task func(ctx context.Context, requestID string) error

// SchedulerConfig holds the cron expressions of the jobs. Empty values use the defaults.
type SchedulerConfig struct {
	UpdateWeatherForecastCron string
	SendWeatherForecastCron   string
	// Locker serializes runs across replicas, nil runs every job locally.
	Locker gocron.Locker
}

// Scheduler runs the named cron jobs. Each job has at most one running instance.
type Scheduler struct {
	scheduler           gocron.Scheduler
	config              SchedulerConfig
	weatherUseCase      weather.UseCase
	notificationUseCase notification.UseCase

	ctx    context.Context
	cancel context.CancelFunc
	now    func() time.Time

	mu   sync.Mutex
	jobs map[string]gocron.Job
}

func NewScheduler(config SchedulerConfig, weatherUseCase weather.UseCase, notificationUseCase notification.UseCase) (*Scheduler, error) {
	if config.UpdateWeatherForecastCron == "" {
		config.UpdateWeatherForecastCron = DefaultUpdateWeatherForecastCron
	}
	if config.SendWeatherForecastCron == "" {
		config.SendWeatherForecastCron = DefaultSendWeatherForecastCron
	}

	options := []gocron.SchedulerOption{
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(zapLogger{}),
		gocron.WithStopTimeout(30 * time.Second),
	}
	if config.Locker != nil {
		options = append(options, gocron.WithDistributedLocker(config.Locker))
	}

	scheduler, err := gocron.NewScheduler(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler:           scheduler,
		config:              config,
		weatherUseCase:      weatherUseCase,
		notificationUseCase: notificationUseCase,
		ctx:                 ctx,
		cancel:              cancel,
		now:                 time.Now,
		jobs:                make(map[string]gocron.Job),
	}, nil
}

// InitScheduleTasks registers the forecast synchronization and the notification jobs.
func (s *Scheduler) InitScheduleTasks() error {
	if _, err := s.Register(UpdateWeatherForecastJob, s.config.UpdateWeatherForecastCron, s.updateWeatherForecast); err != nil {
		return err
	}
	if _, err := s.Register(SendWeatherForecastJob, s.config.SendWeatherForecastCron, s.sendWeatherForecast); err != nil {
		return err
	}
	return nil
}

// Register adds a job unless one with the same name exists. It reports whether the job was added.
func (s *Scheduler) Register(name string, cronExpression string, task Task) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		log.Info(msg.GetMessage("schedule.duplicated", name))
		return false, nil
	}

	schedule, err := cron.ParseStandard(cronExpression)
	if err != nil {
		return false, fmt.Errorf("invalid cron expression %q for job %s: %w", cronExpression, name, err)
	}

	job, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpression, false),
		gocron.NewTask(s.execute, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return false, fmt.Errorf("failed to register job %s: %w", name, err)
	}

	s.jobs[name] = job
	next := schedule.Next(s.now().UTC())
	log.Info(msg.GetMessage("schedule.registered", name, cronExpression, next.Format(time.RFC3339)),
		zap.String("job", name),
		zap.String("job_id", job.ID().String()))
	return true, nil
}

// Jobs returns the names of the registered jobs.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// RunNow runs a registered job outside of its schedule, still honoring its singleton mode.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("job %s is not registered", name)
	}
	if err := job.RunNow(); err != nil {
		return fmt.Errorf("failed to run job %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) TriggerWeatherUpdate() error {
	return s.RunNow(UpdateWeatherForecastJob)
}

// Shutdown stops scheduling and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	return s.scheduler.Shutdown()
}

func (s *Scheduler) execute(name string, task Task) {
	requestID := uuid.New().String()
	start := time.Now()
	log.Info(msg.GetMessage("schedule.triggered", name), zap.String("request_id", requestID))

	if err := task(s.ctx, requestID); err != nil {
		log.Error(msg.GetMessage("schedule.failed", name), zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("schedule.finished", name, time.Since(start)), zap.String("request_id", requestID))
}

func (s *Scheduler) updateWeatherForecast(ctx context.Context, requestID string) error {
	_, err := s.weatherUseCase.UpdateWeatherForecast(ctx, requestID)
	return err
}

func (s *Scheduler) sendWeatherForecast(ctx context.Context, requestID string) error {
	_, err := s.notificationUseCase.SendWeatherForecast(ctx, requestID, s.now())
	return err
}
