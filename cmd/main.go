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
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_available_slots"
	getClientReservationsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_client_reservations"
	getProfessionalReservationsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_professional_reservations"
	getReservationHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_reservation"
	getWeeklyAvailabilityHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_weekly_availability"
	updateReservationStatusHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/update_reservation_status"
	updateWeeklyAvailabilityHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/update_weekly_availability"
	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBooking/internal/config"
	availabilityCache "github.com/m04kA/SMC-BeautyBooking/internal/infra/cache/availability"
	availabilityRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/availability"
	reservationRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/reservation"
	catalogServiceClient "github.com/m04kA/SMC-BeautyBooking/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBooking/internal/integrations/events"
	availabilityService "github.com/m04kA/SMC-BeautyBooking/internal/service/availability"
	reservationsService "github.com/m04kA/SMC-BeautyBooking/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
	"github.com/m04kA/SMC-BeautyBooking/pkg/metrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/txmanager"
)

// eventPublisher публикатор событий, который нужно закрыть при остановке
type eventPublisher interface {
	Publish(ctx context.Context, event events.ReservationEvent) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
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

	log.Info("Starting SMC-BeautyBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Часовой пояс салона: в нём читаются даты запросов и считается "сегодня"
	salonLocation, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone: %v", err)
	}
	log.Info("Booking timezone: %s", salonLocation)

	// Метрики (если включены); nil-коллектор безопасен для доменных счётчиков
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)

	// Кэш расписаний (если настроен redis)
	var (
		redisClient   *redis.Client
		scheduleCache availabilityService.ScheduleCache
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable, schedules will be read from database: %v", err)
		}
		cancelPing()

		scheduleCache = availabilityCache.NewCache(
			redisClient,
			time.Duration(cfg.Redis.TTL)*time.Second,
			metricsCollector,
		)
		log.Info("Schedule cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Интеграции
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
			log,
		)
		log.Info("Reservation events will be published to kafka topic %s", cfg.Kafka.Topic)
	}

	// Сервисы
	availabilitySvc := availabilityService.NewService(availabilityRepository, scheduleCache, txMgr, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, publisher, log)

	// Use cases: шаг сетки общий для выдачи слотов и для проверки при создании
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		availabilitySvc,
		catalogClient,
		metricsCollector,
		getAvailableSlotsUC.Options{
			StepMinutes:        cfg.Booking.SlotStepMinutes,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			Location:           salonLocation,
		},
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		availabilityRepository,
		catalogClient,
		txMgr,
		publisher,
		metricsCollector,
		createReservationUC.Options{
			StepMinutes:        cfg.Booking.SlotStepMinutes,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			Location:           salonLocation,
		},
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, salonLocation, log)
	getWeeklyAvailability := getWeeklyAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateWeeklyAvailability := updateWeeklyAvailabilityHandler.NewHandler(availabilitySvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, salonLocation, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	getProfessionalReservations := getProfessionalReservationsHandler.NewHandler(reservationsSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationsSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты мастера на дату для услуги
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание мастера
	api.HandleFunc("/professionals/{professionalId}/availability",
		getWeeklyAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	var createHandler http.Handler = http.HandlerFunc(createReservation.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		go limiter.Run(stopCh)
		createHandler = limiter.Middleware(createHandler)
		log.Info("Rate limit for reservation creation: rps=%.2f, burst=%d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	protected.Handle("/reservations", createHandler).Methods(http.MethodPost)

	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Кабинет мастера ---
	protected.HandleFunc("/professionals/{professionalId}/reservations",
		getProfessionalReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/availability",
		updateWeeklyAvailability.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

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

	// Фоновые задачи (статистика пула, очистка лимитера)
	close(stopCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
