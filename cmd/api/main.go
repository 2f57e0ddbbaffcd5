package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/palletflow/dispatch-service/pkg/cloudevents"
	"github.com/palletflow/dispatch-service/pkg/kafka"
	"github.com/palletflow/dispatch-service/pkg/logging"
	"github.com/palletflow/dispatch-service/pkg/metrics"
	"github.com/palletflow/dispatch-service/pkg/middleware"
	"github.com/palletflow/dispatch-service/pkg/mongodb"
	"github.com/palletflow/dispatch-service/pkg/tracing"

	"github.com/palletflow/dispatch-service/internal/api/handlers"
	"github.com/palletflow/dispatch-service/internal/application"
	kafkaInfra "github.com/palletflow/dispatch-service/internal/infrastructure/kafka"
	mongoRepo "github.com/palletflow/dispatch-service/internal/infrastructure/mongodb"
)

const serviceName = "dispatch-service"

func main() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := run(context.Background(), quit); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, quit <-chan os.Signal) error {
	logger := logging.NewLogger(logging.Config{
		ServiceName: serviceName,
		Level:       getEnv("LOG_LEVEL", "info"),
		Format:      getEnv("LOG_FORMAT", "json"),
	})

	logger.Info("Starting dispatch-service API")

	config := loadConfig()

	// OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Prometheus metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	m := metrics.NewMetrics(registry)
	logger.Info("Metrics initialized")

	// MongoDB with instrumentation and circuit breaker
	rawClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return err
	}
	instrumented := mongodb.NewInstrumentedClient(rawClient, m, logger)
	mongoClient := mongodb.NewCircuitBreakerClient(instrumented, logger, m)
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Repositories
	taskRepo := mongoRepo.NewTaskRepository(mongoClient)
	truckInventoryRepo := mongoRepo.NewTruckInventoryRepository(mongoClient)
	sequenceRepo := mongoRepo.NewProductionSequenceRepository(mongoClient, logger, m)
	catalogRepo := mongoRepo.NewCatalogRepository(mongoClient)

	// Kafka producer and event publisher
	kafkaProducer := kafka.NewProducer(config.Kafka)
	instrumentedProducer := kafka.NewInstrumentedProducer(kafkaProducer, m, logger)
	defer instrumentedProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceDispatch)
	eventPublisher := kafkaInfra.NewEventPublisher(instrumentedProducer, eventFactory, logger)

	// Services
	ledgerService := application.NewInventoryLedgerService(truckInventoryRepo, eventPublisher, logger)
	taskService := application.NewTaskApplicationService(taskRepo, catalogRepo, sequenceRepo, ledgerService, eventPublisher, logger)
	catalogService := application.NewCatalogQueryService(catalogRepo, logger)

	// Handlers
	businessMetrics := middleware.NewBusinessMetrics(m)
	taskHandlers := handlers.NewTaskHandlers(taskService, ledgerService, logger, businessMetrics)
	catalogHandlers := handlers.NewCatalogHandlers(catalogService, logger)

	// Gin router with middleware
	router := gin.New()
	middleware.Setup(router, middleware.DefaultConfig(serviceName, logger.Logger))
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.SimpleTracingMiddleware(serviceName))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	taskHandlers.RegisterRoutes(api)
	catalogHandlers.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server started", "addr", config.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
	return nil
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	kafkaConfig.ClientID = serviceName

	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	mongoConfig.Database = getEnv("MONGODB_DATABASE", "dispatch")

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		MongoDB:    mongoConfig,
		Kafka:      kafkaConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
