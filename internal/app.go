package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	token_adapter "listings-service/internal/adapters/jwt"
	logger_adapter "listings-service/internal/adapters/logger"
	"listings-service/internal/adapters/notifier"
	postgres_adapter "listings-service/internal/adapters/postgres"
	rabbitmq_adapter "listings-service/internal/adapters/rabbitmq"
	"listings-service/internal/adapters/rest"
	"listings-service/internal/configs"
	"listings-service/internal/constants"
	"listings-service/internal/core/port"
	"listings-service/internal/core/usecase"
	fluentlogger "listings-service/pkg/fluent_logger"
	"listings-service/pkg/postgres"
	"listings-service/pkg/rabbitmq/rabbitmq_common"
	"listings-service/pkg/rabbitmq/rabbitmq_consumer"
	"listings-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config               *configs.AppConfig
	dbPool               *pgxpool.Pool
	apiServer            *rest.Server
	eventsProducer       *rabbitmq_producer.Publisher
	changeEventsListener port.EventListenerPort

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
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

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
	connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, connManagerBridge)
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	listingRepo, err := postgres_adapter.NewPostgresListingRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres listing repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres listing repository: %w", err)
	}
	inquiryRepo, err := postgres_adapter.NewPostgresInquiryRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres inquiry repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres inquiry repository: %w", err)
	}
	profileRepo, err := postgres_adapter.NewPostgresProfileRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres profile repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres profile repository: %w", err)
	}
	viewEventRepo, err := postgres_adapter.NewPostgresViewEventRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres view event repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres view event repository: %w", err)
	}

	// --- 4. ИСХОДЯЩАЯ ОЧЕРЕДЬ СОБЫТИЙ ---
	producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.EventsExchange,
		ExchangeType:             constants.EventsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
	}
	eventsProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		appLogger.Error("Failed to create events producer", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create events producer: %w", err)
	}

	changeEventsQueue, err := rabbitmq_adapter.NewChangeEventsQueueAdapter(eventsProducer)
	if err != nil {
		appLogger.Error("Failed to create change events queue adapter", err, nil)
		eventsProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create change events queue adapter: %w", err)
	}

	sseNotifier := notifier.NewSSENotifier(baseLogger)
	appLogger.Info("SSE Notifier initialized.", nil)

	// --- 5. USE CASES (ядро бизнес-логики) ---
	findListingsUC := usecase.NewFindListingsUseCase(listingRepo)
	getListingDetailsUC := usecase.NewGetListingDetailsUseCase(listingRepo)
	createListingUC := usecase.NewCreateListingUseCase(listingRepo, changeEventsQueue)
	updateListingUC := usecase.NewUpdateListingUseCase(listingRepo, changeEventsQueue)
	trackViewUC := usecase.NewTrackViewUseCase(viewEventRepo)
	createInquiryUC := usecase.NewCreateInquiryUseCase(inquiryRepo, listingRepo)
	getInquiriesUC := usecase.NewGetInquiriesUseCase(inquiryRepo)
	updateInquiryStatusUC := usecase.NewUpdateInquiryStatusUseCase(inquiryRepo, listingRepo)
	getDashboardStatsUC := usecase.NewGetDashboardStatsUseCase(listingRepo, profileRepo, inquiryRepo, viewEventRepo)
	getProfileUC := usecase.NewGetProfileUseCase(profileRepo)
	updateProfileUC := usecase.NewUpdateProfileUseCase(profileRepo, changeEventsQueue)
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. ВХОДЯЩИЙ СЛУШАТЕЛЬ СОБЫТИЙ ---
	consumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueueEntityChangeEvents,
		RoutingKeyForBind:   constants.RoutingKeyEntityChange,
		ExchangeNameForBind: constants.EventsExchange,
		PrefetchCount:       5,
		DurableQueue:        true,
		ConsumerTag:         "entity-change-events-relay",
		DeclareQueue:        true,

		EnableRetryMechanism: true,

		// "Сателлиты" для этой конкретной очереди.
		// Имя основной очереди используется как префикс для уникальности.
		RetryExchange: constants.QueueEntityChangeEvents + "_retry_ex",
		RetryQueue:    constants.QueueEntityChangeEvents + "_retry_wait_10s",
		RetryTTL:      constants.RetryTTL,

		// Общая "свалка" для сообщений, исчерпавших все попытки.
		FinalDLXExchange:   constants.FinalDLXExchange,
		FinalDLQ:           constants.FinalDLQ,
		FinalDLQRoutingKey: constants.FinalDLQRoutingKey,

		MaxRetries: 3,
	}

	changeEventsListener, err := rabbitmq_adapter.NewChangeEventsConsumerAdapter(consumerCfg, sseNotifier, baseLogger, connManager)
	if err != nil {
		appLogger.Error("Failed to create change events consumer", err, nil)
		eventsProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create change events consumer adapter: %w", err)
	}
	appLogger.Info("RabbitMQ listener initialized.", nil)

	// --- 7. REST API ---
	tokenService, err := token_adapter.NewTokenService(appConfig.JWT.Secret)
	if err != nil {
		appLogger.Error("Failed to create token service", err, nil)
		eventsProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	listingHandlers := rest.NewListingHandlers(findListingsUC, getListingDetailsUC, createListingUC, updateListingUC, trackViewUC, sseNotifier)
	inquiryHandlers := rest.NewInquiryHandlers(createInquiryUC, getInquiriesUC, updateInquiryStatusUC)
	profileHandlers := rest.NewProfileHandlers(getProfileUC, updateProfileUC, sseNotifier)
	dashboardHandlers := rest.NewDashboardHandlers(getDashboardStatsUC)

	apiServer := rest.NewServer(
		appConfig.Rest.PORT,
		appConfig.Rest.CorsAllowedOrigin,
		listingHandlers,
		inquiryHandlers,
		profileHandlers,
		dashboardHandlers,
		tokenService,
		baseLogger,
	)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:               appConfig,
		dbPool:               dbPool,
		apiServer:            apiServer,
		eventsProducer:       eventsProducer,
		changeEventsListener: changeEventsListener,
		logger:               appLogger,
		fluentClient:         fluentClient,
	}

	return application, nil
}

func (a *App) Run() error {
	// Единый контекст приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.changeEventsListener != nil {
			if err := a.changeEventsListener.Close(); err != nil {
				a.logger.Error("Error closing change events listener", err, nil)
			}
		}

		if a.eventsProducer != nil {
			if err := a.eventsProducer.Close(); err != nil {
				a.logger.Error("Error closing events producer", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("HTTP server start error: %w", err)
		}
	}()

	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully.", nil)
		}
	}

	wg.Add(1)
	go startListener("Change Events Listener", a.changeEventsListener)

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	cancelApp()

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
