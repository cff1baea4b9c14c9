package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MrSprintALot/job-feed/internal/adapters/arbeitnowfetcher"
	"github.com/MrSprintALot/job-feed/internal/adapters/jobicyfetcher"
	logger_adapter "github.com/MrSprintALot/job-feed/internal/adapters/logger"
	postgres_adapter "github.com/MrSprintALot/job-feed/internal/adapters/postgres"
	rabbitmq_adapter "github.com/MrSprintALot/job-feed/internal/adapters/rabbitmq"
	"github.com/MrSprintALot/job-feed/internal/adapters/remoteokfetcher"
	"github.com/MrSprintALot/job-feed/internal/adapters/remotivefetcher"
	"github.com/MrSprintALot/job-feed/internal/adapters/rest"
	"github.com/MrSprintALot/job-feed/internal/adapters/scheduler"
	"github.com/MrSprintALot/job-feed/internal/configs"
	"github.com/MrSprintALot/job-feed/internal/core/port"
	"github.com/MrSprintALot/job-feed/internal/core/usecase"
	fluentlogger "github.com/MrSprintALot/job-feed/pkg/fluent_logger"
	"github.com/MrSprintALot/job-feed/pkg/postgres"
	"github.com/MrSprintALot/job-feed/pkg/rabbitmq/rabbitmq_common"
	"github.com/MrSprintALot/job-feed/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const serviceName = "job-feed"

// App wires every adapter and use case together and owns their lifecycle.
type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher
	fluentClient  *fluent.Fluent
	logger        port.LoggerPort

	restServer *rest.Server
	scheduler  *scheduler.Scheduler
}

// NewApp is the composition root: every dependency is created and connected
// here, nowhere else.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. Loggers ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.FluentBit.TagPrefix,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": serviceName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. PostgreSQL ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	if err := postgres_adapter.EnsureSchema(context.Background(), dbPool); err != nil {
		appLogger.Error("Failed to ensure database schema", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}
	appLogger.Info("Database schema is up to date.", nil)

	// --- 3. RabbitMQ run reporting (optional) ---
	// Without a broker URL runs simply go unreported; aggregation itself
	// does not depend on the broker.
	var (
		connManager   *rabbitmq_common.ConnectionManager
		eventProducer *rabbitmq_producer.Publisher
		runReporter   port.RunReporterPort
	)
	if appConfig.RabbitMQ.Enabled {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
		connManager, err = rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		producerCfg := rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             "job_feed_exchange",
			ExchangeType:             "direct",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
		}
		eventProducer, err = rabbitmq_producer.NewPublisher(producerCfg, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, port.Fields{"url": appConfig.RabbitMQ.URL})
			connManager.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)

		runReporter, err = rabbitmq_adapter.NewRunReporterAdapter(eventProducer, appConfig.RabbitMQ.RoutingKey)
		if err != nil {
			appLogger.Error("Failed to create run reporter adapter", err, nil)
			eventProducer.Close()
			connManager.Close()
			dbPool.Close()
			return nil, err
		}
	} else {
		appLogger.Info("RABBITMQ_URL is not set, run reporting is disabled.", nil)
	}

	// --- 4. Source adapters and registry ---
	registry := usecase.NewFetcherRegistry()
	registry.Register(remotivefetcher.NewRemotiveFetcherAdapter(appConfig.Scraper.RemotiveCategory))
	registry.Register(remoteokfetcher.NewRemoteOKFetcherAdapter())
	registry.Register(jobicyfetcher.NewJobicyFetcherAdapter(
		appConfig.Scraper.JobicyGeo,
		appConfig.Scraper.JobicyIndustry,
		appConfig.Scraper.JobicyCount,
	))
	registry.Register(arbeitnowfetcher.NewArbeitnowFetcherAdapter())
	appLogger.Info("Source adapters registered.", port.Fields{"sources": registry.Names()})

	// --- 5. Persistence adapters ---
	jobStorage, err := postgres_adapter.NewPostgresJobStorageAdapter(dbPool)
	if err != nil {
		appLogger.Error("Failed to create job storage adapter", err, nil)
		dbPool.Close()
		return nil, err
	}
	feedRepo, err := postgres_adapter.NewPostgresFeedRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create feed repository", err, nil)
		dbPool.Close()
		return nil, err
	}
	savedListsRepo, err := postgres_adapter.NewPostgresSavedListsRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create saved lists repository", err, nil)
		dbPool.Close()
		return nil, err
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 6. Use cases ---
	runAggregationUseCase := usecase.NewRunAggregationUseCase(registry, jobStorage, runReporter)
	getFeedUseCase := usecase.NewGetFeedUseCase(feedRepo)
	getStatsUseCase := usecase.NewGetStatsUseCase(feedRepo)
	saveJobUseCase := usecase.NewSaveJobUseCase(savedListsRepo)
	unsaveJobUseCase := usecase.NewUnsaveJobUseCase(savedListsRepo)
	getSavedUseCase := usecase.NewGetSavedUseCase(savedListsRepo)
	createListUseCase := usecase.NewCreateListUseCase(savedListsRepo)
	deleteListUseCase := usecase.NewDeleteListUseCase(savedListsRepo)
	appLogger.Info("All use cases initialized.", nil)

	// --- 7. Incoming adapters ---
	feedHandler := rest.NewFeedHandler(getFeedUseCase, getStatsUseCase)
	savedHandler := rest.NewSavedHandler(saveJobUseCase, unsaveJobUseCase, getSavedUseCase, createListUseCase, deleteListUseCase)
	scrapeHandler := rest.NewScrapeHandler(runAggregationUseCase, appConfig.Scraper.SearchTerms)

	restServer := rest.NewServer(appConfig.Rest.PORT, feedHandler, savedHandler, scrapeHandler, baseLogger)

	var cronScheduler *scheduler.Scheduler
	if appConfig.Scraper.BackgroundEnabled {
		cronScheduler = scheduler.New(
			runAggregationUseCase,
			appConfig.Scraper.SearchTerms,
			appConfig.Scraper.IntervalHours,
			baseLogger,
		)
	} else {
		appLogger.Info("Background aggregation is disabled, only the manual trigger is available.", nil)
	}

	application := &App{
		config:        appConfig,
		dbPool:        dbPool,
		connManager:   connManager,
		eventProducer: eventProducer,
		fluentClient:  fluentClient,
		logger:        appLogger,
		restServer:    restServer,
		scheduler:     cronScheduler,
	}

	return application, nil
}

// Run starts every component and blocks until a shutdown signal arrives.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.scheduler != nil {
			a.scheduler.Stop()
		}

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := a.restServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error stopping REST server", err, nil)
		}

		if a.eventProducer != nil {
			if err := a.eventProducer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}
		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			a.logger.Info("Closing Fluent Bit connection...", nil)
			if err := a.fluentClient.Close(); err != nil {
				log.Printf("App: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.restServer.Start(); err != nil {
			serverErrors <- err
		}
	}()

	if a.scheduler != nil {
		if err := a.scheduler.Start(appCtx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("REST server failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down", nil)
	}

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
