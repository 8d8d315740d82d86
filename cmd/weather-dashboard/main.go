package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	_ "weather-dashboard/configs"
	"weather-dashboard/internal/application/controller"
	"weather-dashboard/internal/application/middleware"
	"weather-dashboard/internal/application/processor"
	"weather-dashboard/internal/application/schedule"
	weatherapi "weather-dashboard/internal/domain/gateway/api"
	"weather-dashboard/internal/domain/gateway/store"
	"weather-dashboard/internal/domain/usecase/dashboard"
	"weather-dashboard/internal/domain/usecase/health"
	"weather-dashboard/internal/domain/usecase/location"
	"weather-dashboard/internal/infra/aws"
	"weather-dashboard/pkg/http"
	"weather-dashboard/pkg/log"
	"weather-dashboard/pkg/msg"
	"weather-dashboard/pkg/redis"
	"weather-dashboard/pkg/resource"
	"weather-dashboard/pkg/sqs"
)

func main() {
	log.Info(msg.GetMessage("app.start"))

	// Init infra
	e := echo.New()
	middleware.SetupRequestLogger(e)
	api := e.Group(resource.GetString("app.server.context-path"))

	redisClient := redis.NewClient(redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")))

	sqsClient := aws.NewSqsClient()
	queueSender := aws.NewSQSSenderAdapter(sqsClient)

	// Init Gateway
	apiGateway := weatherapi.NewWeatherGateway(weatherapi.GatewayConfig{
		DataBaseURL: resource.GetString("app.provider.data-base-url"),
		GeoBaseURL:  resource.GetString("app.provider.geo-base-url"),
		APIKey:      resource.GetString("app.provider.api-key"),
		Units:       resource.GetString("app.provider.units"),
	}, http.ClientOptions{Logger: http.ZapHTTPLogger{}})
	locationGateway := store.NewRedisLocationGateway(redisClient)
	healthGateway := store.NewRedisHealthGateway(redisClient)

	// Init UseCase
	refreshInterval := time.Duration(resource.GetInt("app.dashboard.refresh-interval-seconds")) * time.Second
	dashboardUseCase := dashboard.NewDashboardUseCase(
		resource.GetString("app.refresh.queue"),
		resource.GetInt("app.refresh.batch-size"),
		refreshInterval,
		resource.GetString("app.provider.map-base-url"),
		resource.GetString("app.provider.api-key"),
		queueSender,
		apiGateway,
		locationGateway,
	)
	locationUseCase := location.NewLocationUseCase(apiGateway, locationGateway)
	healthUseCase := health.NewHealthUseCase(healthGateway)

	// Init Controller
	dashboardController := controller.NewDashboardController(api, dashboardUseCase, resource.GetString("app.dashboard.default-city"))
	locationController := controller.NewLocationController(api, locationUseCase)
	healthController := controller.NewHealthController(api, healthUseCase)

	// Init Routes
	dashboardController.InitDashboardRoutes()
	locationController.InitLocationRoutes()
	healthController.InitHealthRoutes()

	// Init Worker
	refreshProcessor := processor.NewRefreshProcessor(dashboardUseCase)
	refreshWorker, err := sqs.NewWorker(sqsClient, resource.GetString("app.refresh.queue"), refreshProcessor, &sqs.WorkerConfig{
		MaxNumberOfMessages: int32(resource.GetInt("app.refresh.worker.max-number-of-messages")),
		WaitTimeSeconds:     int32(resource.GetInt("app.refresh.worker.wait-time-seconds")),
		PoolSize:            resource.GetInt("app.refresh.worker.pool-size"),
		LogLevel:            sqs.ErrorLevel,
	})
	if err != nil {
		log.Fatalf("Failed to create refresh worker: %v", err)
	}
	go refreshWorker.Start(context.Background())

	// Init Schedule
	refreshScheduler := schedule.NewRefreshScheduler(
		dashboardUseCase,
		redisClient,
		resource.GetString("app.refresh.cron"),
		resource.GetInt("app.refresh.lock-ttl-seconds"),
		resource.GetInt("app.refresh.lock-refresh-interval-seconds"),
	)
	refreshScheduler.InitRefreshScheduleTasks(context.Background())

	// Start Routes
	e.Logger.Fatal(e.Start(":" + resource.GetString("app.server.port")))
}
