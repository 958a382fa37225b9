package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applyReliabilityEventHandler "github.com/m04kA/SMC-DepositService/internal/api/handlers/apply_reliability_event"
	createDepositQuoteHandler "github.com/m04kA/SMC-DepositService/internal/api/handlers/create_deposit_quote"
	getClientQuotesHandler "github.com/m04kA/SMC-DepositService/internal/api/handlers/get_client_quotes"
	getClientReliabilityHandler "github.com/m04kA/SMC-DepositService/internal/api/handlers/get_client_reliability"
	getDepositQuoteHandler "github.com/m04kA/SMC-DepositService/internal/api/handlers/get_deposit_quote"
	"github.com/m04kA/SMC-DepositService/internal/api/middleware"
	"github.com/m04kA/SMC-DepositService/internal/config"
	"github.com/m04kA/SMC-DepositService/internal/infra/events"
	quoteRepo "github.com/m04kA/SMC-DepositService/internal/infra/storage/quote"
	reliabilityRepo "github.com/m04kA/SMC-DepositService/internal/infra/storage/reliability"
	sellerServiceClient "github.com/m04kA/SMC-DepositService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-DepositService/internal/service/amount"
	"github.com/m04kA/SMC-DepositService/internal/service/deposit"
	"github.com/m04kA/SMC-DepositService/internal/service/policy"
	quotesService "github.com/m04kA/SMC-DepositService/internal/service/quotes"
	reliabilityService "github.com/m04kA/SMC-DepositService/internal/service/reliability"
	applyReliabilityEventUC "github.com/m04kA/SMC-DepositService/internal/usecase/apply_reliability_event"
	quoteDepositUC "github.com/m04kA/SMC-DepositService/internal/usecase/quote_deposit"
	"github.com/m04kA/SMC-DepositService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DepositService/pkg/logger"
	"github.com/m04kA/SMC-DepositService/pkg/metrics"
	"github.com/m04kA/SMC-DepositService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := config.Path()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-DepositService...")
	log.Info("Configuration loaded from %s", configPath)

	// Коллектор нужен use cases всегда, наружу метрики отдаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Проверяем соединение
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = wrappedDB.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Интеграции
	sellerClient := sellerServiceClient.NewClient(
		cfg.SellerService.URL,
		time.Duration(cfg.SellerService.Timeout)*time.Second,
		log,
	)
	log.Info("SellerService client initialized (url=%s, timeout=%ds)", cfg.SellerService.URL, cfg.SellerService.Timeout)

	// Репозитории и менеджер транзакций
	reliabilityRepository := reliabilityRepo.NewRepository(wrappedDB)
	quoteRepository := quoteRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Доменные компоненты
	weekendDays, err := cfg.Deposit.WeekendWeekdays()
	if err != nil {
		log.Fatal("Invalid deposit config: %v", err)
	}

	normalizer := amount.NewNormalizer(amount.Config{
		MinChargeMinorUnits: cfg.Deposit.MinChargeMinorUnits,
		MajorUnitsThreshold: cfg.Deposit.MajorUnitsThreshold,
	})
	engine := policy.NewEngine(policy.Config{
		NewClientPercentage:          cfg.Deposit.NewClientPercentage,
		RepeatCancellationPercentage: cfg.Deposit.RepeatCancellationPercentage,
		RepeatCancellationThreshold:  cfg.Deposit.RepeatCancellationThreshold,
		LowScorePercentage:           cfg.Deposit.LowScorePercentage,
		LowScoreThreshold:            cfg.Deposit.LowScoreThreshold,
		SingleCancellationPercentage: cfg.Deposit.SingleCancellationPercentage,
		StandardPercentage:           cfg.Deposit.StandardPercentage,
		WeekendPremiumPoints:         cfg.Deposit.WeekendPremiumPoints,
		WeekendFloorPercentage:       cfg.Deposit.WeekendFloorPercentage,
	})
	orchestrator := deposit.NewOrchestrator(normalizer, engine)

	// Сервисы
	reliabilitySvc := reliabilityService.NewService(reliabilityRepository, log)
	quotesSvc := quotesService.NewService(quoteRepository, log)

	// Use cases
	applyReliabilityEventUseCase := applyReliabilityEventUC.NewUseCase(
		reliabilityRepository,
		txMgr,
		metricsCollector,
		log,
	)
	quoteDepositUseCase := quoteDepositUC.NewUseCase(
		reliabilitySvc,
		sellerClient,
		orchestrator,
		quoteRepository,
		metricsCollector,
		weekendDays,
		log,
	)

	// Handlers
	applyReliabilityEvent := applyReliabilityEventHandler.NewHandler(applyReliabilityEventUseCase, log)
	getClientReliability := getClientReliabilityHandler.NewHandler(reliabilitySvc, log)
	createDepositQuote := createDepositQuoteHandler.NewHandler(quoteDepositUseCase, log)
	getDepositQuote := getDepositQuoteHandler.NewHandler(quotesSvc, log)
	getClientQuotes := getClientQuotesHandler.NewHandler(quotesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Надёжность клиентов ---
	api.HandleFunc("/clients/{clientId}/reliability-events", applyReliabilityEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/clients/{clientId}/reliability", getClientReliability.Handle).Methods(http.MethodGet)

	// --- Котировки депозита ---
	api.HandleFunc("/deposit-quotes", createDepositQuote.Handle).Methods(http.MethodPost)
	api.HandleFunc("/deposit-quotes/{quoteId}", getDepositQuote.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId}/deposit-quotes", getClientQuotes.Handle).Methods(http.MethodGet)

	// Consumer событий бронирований
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	var consumerWG sync.WaitGroup
	var consumer *events.Consumer

	if cfg.Kafka.Enabled {
		reader, err := events.NewReader(events.ReaderConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.Topic,
			GroupID:  cfg.Kafka.GroupID,
			MinBytes: cfg.Kafka.MinBytes,
			MaxBytes: cfg.Kafka.MaxBytes,
		})
		if err != nil {
			log.Fatal("Failed to create kafka reader: %v", err)
		}

		consumer = events.NewConsumer(reader, applyReliabilityEventUseCase, metricsCollector, log)
		consumerWG.Add(1)
		go func() {
			defer consumerWG.Done()
			if err := consumer.Run(consumerCtx); err != nil {
				log.Error("Consumer stopped with error: %v", err)
			}
		}()
		log.Info("Kafka consumer started (topic=%s, group=%s)", cfg.Kafka.Topic, cfg.Kafka.GroupID)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем consumer: текущее сообщение дообрабатывается, незакоммиченное придёт повторно
	if consumer != nil {
		stopConsumer()
		consumerWG.Wait()
		if err := consumer.Close(); err != nil {
			log.Error("Failed to close kafka reader: %v", err)
		}
		log.Info("Kafka consumer stopped")
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
