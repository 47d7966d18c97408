package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"stats-collector/internal/dashboards"
	"stats-collector/internal/events"
	internalhttp "stats-collector/internal/http"
	"stats-collector/internal/ingestors"
	"stats-collector/internal/shared/configs"
	"stats-collector/internal/shared/filestorages"
	"stats-collector/internal/shared/loggers"
	"stats-collector/internal/stores"
	"stats-collector/internal/streams"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	recordAppendConsumer streams.RecordAppendConsumer
	backgroundCtx        context.Context
	backgroundCancel     context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return newWithLogger(config, appLogger)
}

func newWithLogger(config *configs.Config, appLogger loggers.Logger) (*App, error) {
	appLogger = appLogger.With().
		Str(loggers.FieldApp, "stats-collector").
		Logger()

	// Initialize output folder
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	recordLogStore := stores.NewRecordLogStore(fileStorage)

	// Initialize append lanes
	recordAppendQueue := streams.NewPartitionedQueue[events.RecordAppendEvent](
		config.Appender.Partitions, config.Appender.Buffer)
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "appender").Logger()
	recordAppendConsumer := streams.NewRecordAppendConsumer(recordAppendQueue, recordLogStore, consumerLogger)
	recordAppendProducer := streams.NewRecordAppendProducer(recordAppendQueue)

	// Initialize services
	ingestionService := ingestors.NewIngestionService(config.Ingestion.MaxBodyBytes, recordAppendProducer)
	dashboardService := dashboards.NewDashboardService(config.Dashboard.PageFile, config.Dashboard.LogNames, recordLogStore)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, dashboardService, config.Ingestion.MaxBodyBytes, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              net.JoinHostPort(config.Server.Host, strconv.Itoa(config.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:               config,
		appLogger:            appLogger,
		server:               server,
		recordAppendConsumer: recordAppendConsumer,
	}, nil
}

// Start starts the append workers, then serves HTTP until Shutdown.
func (app *App) Start() error {
	listener, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.server.Addr, err)
	}
	return app.Serve(listener)
}

// Serve is Start on an existing listener.
func (app *App) Serve(listener net.Listener) error {
	app.appLogger.Info().
		Msgf("Starting stats-collector on %s (log_level=%s, output_folder=%s, max_body_bytes=%d)",
			listener.Addr(),
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Ingestion.MaxBodyBytes)

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.recordAppendConsumer.Start(app.backgroundCtx)

	return app.server.Serve(listener)
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Stop accepting requests and wait for in-flight ones, whose appends are awaited
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background consumers
	if app.backgroundCancel != nil {
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background consumers cancelled")
	}

	// 3) Wait for background consumers to finish
	app.recordAppendConsumer.Stop()
	app.appLogger.Info().Msg("Background consumers stopped")

	return nil
}
