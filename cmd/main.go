package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/clockly/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/clockly/booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/clockly/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/clockly/booking-service/internal/api/handlers/get_booking"
	getProviderBookingsHandler "github.com/clockly/booking-service/internal/api/handlers/get_provider_bookings"
	listServicesHandler "github.com/clockly/booking-service/internal/api/handlers/list_services"
	registerProviderHandler "github.com/clockly/booking-service/internal/api/handlers/register_provider"
	rescheduleBookingHandler "github.com/clockly/booking-service/internal/api/handlers/reschedule_booking"
	verifyBookingHandler "github.com/clockly/booking-service/internal/api/handlers/verify_booking"
	"github.com/clockly/booking-service/internal/api/middleware"
	"github.com/clockly/booking-service/internal/config"
	availabilityRepo "github.com/clockly/booking-service/internal/infra/storage/availability"
	blackoutRepo "github.com/clockly/booking-service/internal/infra/storage/blackout"
	bookingRepo "github.com/clockly/booking-service/internal/infra/storage/booking"
	providerRepo "github.com/clockly/booking-service/internal/infra/storage/provider"
	tokenRepo "github.com/clockly/booking-service/internal/infra/storage/token"
	mailServiceClient "github.com/clockly/booking-service/internal/integrations/mailservice"
	bookingsService "github.com/clockly/booking-service/internal/service/bookings"
	cleanupService "github.com/clockly/booking-service/internal/service/cleanup"
	providersService "github.com/clockly/booking-service/internal/service/providers"
	createBookingUC "github.com/clockly/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/clockly/booking-service/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/clockly/booking-service/internal/usecase/reschedule_booking"
	verifyBookingUC "github.com/clockly/booking-service/internal/usecase/verify_booking"
	"github.com/clockly/booking-service/pkg/dbmetrics"
	"github.com/clockly/booking-service/pkg/logger"
	"github.com/clockly/booking-service/pkg/metrics"
	"github.com/clockly/booking-service/pkg/simpletxmanager"
	"github.com/clockly/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting clockly booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента почтового сервиса
	mailClient := mailServiceClient.NewClient(
		cfg.MailService.URL,
		time.Duration(cfg.MailService.Timeout)*time.Second,
		log,
	)
	log.Info("Mail service client initialized (url=%s, timeout=%ds)",
		cfg.MailService.URL, cfg.MailService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		blackoutRepository     *blackoutRepo.Repository
		providerRepository     *providerRepo.Repository
		tokenRepository        *tokenRepo.Repository
	)

	// Менеджер транзакций для usecases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		blackoutRepository = blackoutRepo.NewRepository(wrappedDB)
		providerRepository = providerRepo.NewRepository(wrappedDB)
		tokenRepository = tokenRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		blackoutRepository = blackoutRepo.NewRepository(db)
		providerRepository = providerRepo.NewRepository(db)
		tokenRepository = tokenRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &createBookingUC.RealTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	providerSvc := providersService.NewService(providerRepository, mailClient, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.New(
		providerRepository,
		availabilityRepository,
		blackoutRepository,
		bookingRepository,
		tokenRepository,
		txMgr,
		mailClient,
		&createBookingUC.UUIDTokenGenerator{},
		timeProvider,
		log,
		cfg.Booking.VerificationBaseURL,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.New(
		providerRepository,
		availabilityRepository,
		blackoutRepository,
		bookingRepository,
		&getAvailableSlotsUC.RealTimeProvider{},
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.New(
		providerRepository,
		availabilityRepository,
		blackoutRepository,
		bookingRepository,
		txMgr,
		mailClient,
		&rescheduleBookingUC.RealTimeProvider{},
		log,
	)

	verifyBookingUseCase := verifyBookingUC.New(
		tokenRepository,
		bookingRepository,
		txMgr,
		mailClient,
		&verifyBookingUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	verifyBooking := verifyBookingHandler.NewHandler(verifyBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(providerSvc, log)
	registerProvider := registerProviderHandler.NewHandler(providerSvc, log)

	// Запускаем фоновый воркер очистки и напоминаний
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()

	if cfg.Cleanup.Enabled {
		cleanupSvc := cleanupService.NewService(
			bookingRepository,
			tokenRepository,
			mailClient,
			&cleanupService.RealTimeProvider{},
			log,
			time.Duration(cfg.Cleanup.IntervalSeconds)*time.Second,
		)
		go cleanupSvc.Run(cleanupCtx)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список услуг провайдера
	api.HandleFunc("/providers/{providerSlug}/services",
		listServices.Handle).Methods(http.MethodGet)

	// Доступные слоты провайдера на дату
	api.HandleFunc("/providers/{providerSlug}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования: публичный поток даёт pending + ссылку
	// подтверждения, аутентифицированный провайдер - сразу confirmed
	api.Handle("/providers/{providerSlug}/bookings",
		middleware.OptionalAuth(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)

	// Погашение токена подтверждения
	api.HandleFunc("/bookings/verify/{token}",
		verifyBooking.Handle).Methods(http.MethodGet)

	// Внутренний эндпоинт провижининга провайдеров (вызывается
	// сервисом идентификации, наружу не маршрутизируется)
	api.HandleFunc("/internal/providers",
		registerProvider.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Provider-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на другой слот
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Бронирования аутентифицированного провайдера
	protected.HandleFunc("/providers/me/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	cancelCleanup()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
