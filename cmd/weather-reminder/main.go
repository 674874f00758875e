package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"weather-reminder/configs"
	"weather-reminder/docs"
	"weather-reminder/internal/application/controller"
	"weather-reminder/internal/application/middleware"
	"weather-reminder/internal/application/processor"
	"weather-reminder/internal/application/schedule"
	"weather-reminder/internal/domain/gateway/api"
	"weather-reminder/internal/domain/gateway/cache"
	"weather-reminder/internal/domain/gateway/db"
	"weather-reminder/internal/domain/gateway/mail"
	"weather-reminder/internal/domain/gateway/queue"
	"weather-reminder/internal/domain/usecase/health"
	"weather-reminder/internal/domain/usecase/notification"
	"weather-reminder/internal/domain/usecase/subscription"
	"weather-reminder/internal/domain/usecase/weather"
	"weather-reminder/internal/infra/aws"
	"weather-reminder/internal/infra/database/gorm"
	"weather-reminder/internal/infra/database/sqlc"
	"weather-reminder/pkg/log"
	"weather-reminder/pkg/msg"
	"weather-reminder/pkg/redis"
	"weather-reminder/pkg/resource"
	"weather-reminder/pkg/sqs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	if err := resource.Init(resource.PropertiesPath()); err != nil {
		log.Fatal("Failed to load properties", zap.Error(err))
	}
	config, err := configs.Load()
	if err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}
	log.Configure(config.ApplicationName, config.LogLevel)
	defer log.Sync()

	log.Info(msg.GetMessage("app.start", config.ApplicationName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	gormDB, err := gorm.Open(config.Database.Config)
	if err != nil {
		log.Fatal("Fail to connect Database", zap.Error(err))
	}
	if config.Database.AutoMigrate {
		if err := gorm.Migrate(gormDB); err != nil {
			log.Fatal("Fail to migrate Database", zap.Error(err))
		}
	}

	sqlDB, err := sqlc.Open(ctx, config.Database.DSN(), config.Database.PingTimeout)
	if err != nil {
		log.Fatal("Fail to connect Database", zap.Error(err))
	}
	defer sqlDB.Close()

	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient, err = redis.NewClient(config.Redis.Client)
		if err != nil {
			log.Fatal("Fail to create Redis client", zap.Error(err))
		}
		defer redisClient.Close()
	}

	// Init Gateways
	cityGateway := db.NewGormCityGateway(gormDB)
	subscriptionGateway := db.NewGormSubscriptionGateway(gormDB)
	lastUpdateGateway := db.NewSQLCLastUpdateGateway(sqlDB)

	weatherGateway := api.NewWeatherGateway(config.Weather.OpenWeatherConfig)
	if redisClient != nil {
		weatherGateway = api.NewCachedWeatherGateway(weatherGateway, redis.NewCache(redisClient, "geocoding", config.Redis.GeocodingTTL))
	}

	queueHealthGateway := queue.NewQueueHealthGateway()
	mailSender, err := newMailSender(ctx, config, queueHealthGateway)
	if err != nil {
		log.Fatal("Fail to init mail transport", zap.String("transport", config.Mail.Transport), zap.Error(err))
	}

	// Init UseCase
	weatherUseCase := weather.NewWeatherUseCase(config.Weather.BatchSize, weatherGateway, cityGateway, lastUpdateGateway)
	notificationUseCase := notification.NewNotificationUseCase(config.Notification, subscriptionGateway, cityGateway, mailSender)
	subscriptionUseCase := subscription.NewSubscriptionUseCase(subscriptionGateway, weatherUseCase)
	healthUseCase := health.NewHealthUseCase(
		map[string]db.HealthDBGateway{
			"gorm": db.NewGormHealthDBGateway(gormDB),
			"sql":  db.NewSQLCHealthDBGateway(sqlDB),
		},
		cache.NewRedisHealthGateway(redisClient),
		queueHealthGateway,
	)

	// Init Schedule
	schedulerConfig := schedule.SchedulerConfig{
		UpdateWeatherForecastCron: config.Schedule.UpdateWeatherForecastCron,
		SendWeatherForecastCron:   config.Schedule.SendWeatherForecastCron,
	}
	if redisClient != nil {
		schedulerConfig.Locker = schedule.NewRedisLocker(redisClient, config.Schedule.LockTTL)
	}
	scheduler, err := schedule.NewScheduler(schedulerConfig, weatherUseCase, notificationUseCase)
	if err != nil {
		log.Fatal("Fail to create scheduler", zap.Error(err))
	}
	if err := scheduler.InitScheduleTasks(); err != nil {
		log.Fatal("Fail to register scheduled jobs", zap.Error(err))
	}
	scheduler.Start()

	// Init Controller
	e := echo.New()
	e.HideBanner = true
	e.Validator = controller.NewRequestValidator()
	e.Use(echomw.Recover())
	middleware.SetupRequestLogger(e)

	docs.SwaggerInfo.BasePath = config.Server.ContextPath
	group := e.Group(config.Server.ContextPath)
	group.GET("/swagger/*", echoSwagger.WrapHandler)

	controller.NewHealthController(group, healthUseCase).InitHealthRoutes()
	controller.NewCityController(group, weatherUseCase).InitCityRoutes()
	controller.NewWeatherController(group, weatherUseCase, scheduler).InitWeatherRoutes()
	controller.NewSubscriptionController(group, subscriptionUseCase).InitSubscriptionRoutes()

	// Start Routes
	go func() {
		if err := e.Start(":" + config.Server.Port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started", config.ApplicationName, config.Server.Port))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stop", config.ApplicationName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := scheduler.Shutdown(); err != nil {
		log.Error("Scheduler shutdown failed", zap.Error(err))
	}
}

// newMailSender sends directly over SMTP, or enqueues on SQS and starts the worker delivering the queue.
func newMailSender(ctx context.Context, config *configs.Config, queueHealthGateway queue.HealthGateway) (mail.Sender, error) {
	smtpSender := mail.NewSMTPSender(config.Mail.SMTP)
	if config.Mail.Transport != configs.MailTransportQueue {
		return smtpSender, nil
	}

	sqsClient, err := aws.NewSQSClient(ctx, config.AWS)
	if err != nil {
		return nil, err
	}

	worker, err := sqs.NewWorker(ctx, sqsClient, config.Mail.QueueName, processor.NewMailProcessor(smtpSender), &sqs.WorkerConfig{
		PoolSize: config.Mail.QueuePoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mail worker: %w", err)
	}
	queueHealthGateway.RegisterWorker(config.Mail.QueueName, worker)
	go worker.Start(ctx)

	return mail.NewQueueSender(aws.NewSQSSenderAdapter(sqsClient), config.Mail.QueueName, config.Notification.From), nil
}
