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

	addHolidayHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/add_holiday"
	cancelBookingHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/create_booking"
	createOfflineBookingHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/create_offline_booking"
	deleteHolidayHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/delete_holiday"
	getAvailableSlotsHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/get_user_bookings"
	getVendorBookingsHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/get_vendor_bookings"
	setEarlyClosureHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/set_early_closure"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/middleware"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/config"
	bookingRepo "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/booking"
	vendorRepo "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/vendor"
	bookingsService "github.com/Sangharshdeveloper/saloon-booking-management/internal/service/bookings"
	scheduleService "github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule"
	createBookingUC "github.com/Sangharshdeveloper/saloon-booking-management/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/Sangharshdeveloper/saloon-booking-management/internal/usecase/get_available_slots"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/dbmetrics"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/logger"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/metrics"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/simpletxmanager"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/txmanager"
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

	log.Info("Starting saloon-booking-management...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		vendorRepository  *vendorRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		vendorRepository = vendorRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		vendorRepository = vendorRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &bookingsService.RealTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		timeProvider,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		vendorRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		vendorRepository,
		txMgr,
		&createBookingUC.RealTimeProvider{},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		vendorRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createOfflineBooking := createOfflineBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVendorBookings := getVendorBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	addHoliday := addHolidayHandler.NewHandler(scheduleSvc, log)
	deleteHoliday := deleteHolidayHandler.NewHandler(scheduleSvc, log)
	setEarlyClosure := setEarlyClosureHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов салона на дату
	api.HandleFunc("/vendors/{vendorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	// Создание онлайн-бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Офлайн-запись клиента салоном
	protected.HandleFunc("/vendors/bookings/offline", createOfflineBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPut)

	// Завершение бронирования салоном
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPut)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Бронирования салона с фильтрацией
	protected.HandleFunc("/vendors/{vendorId}/bookings", getVendorBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для салона и админа) ---
	// Объявление выходного дня
	protected.HandleFunc("/vendors/holidays", addHoliday.Handle).Methods(http.MethodPost)

	// Снятие выходного дня
	protected.HandleFunc("/vendors/holidays/{date}", deleteHoliday.Handle).Methods(http.MethodDelete)

	// Раннее закрытие на дату
	protected.HandleFunc("/vendors/early-closure", setEarlyClosure.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
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
