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
	"github.com/redis/go-redis/v9"

	availableAppointmentsHandler "github.com/hodaifayahia/AppointmentSystem-maine/internal/api/handlers/available_appointments"
	checkAvailabilityHandler "github.com/hodaifayahia/AppointmentSystem-maine/internal/api/handlers/check_availability"
	forceSlotsHandler "github.com/hodaifayahia/AppointmentSystem-maine/internal/api/handlers/force_slots"
	getAvailableSlotsHandler "github.com/hodaifayahia/AppointmentSystem-maine/internal/api/handlers/get_available_slots"
	"github.com/hodaifayahia/AppointmentSystem-maine/internal/api/middleware"
	"github.com/hodaifayahia/AppointmentSystem-maine/internal/config"
	appointmentRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/appointment"
	availableMonthRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/availablemonth"
	doctorRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/doctor"
	exclusionRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/exclusion"
	forcerRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/forcer"
	scheduleRepo "github.com/hodaifayahia/AppointmentSystem-maine/internal/infra/storage/schedule"
	scheduleService "github.com/hodaifayahia/AppointmentSystem-maine/internal/service/schedule"
	availableAppointmentsUC "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/available_appointments"
	checkAvailabilityUC "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/check_availability"
	forceSlotsUC "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/force_slots"
	getAvailableSlotsUC "github.com/hodaifayahia/AppointmentSystem-maine/internal/usecase/get_available_slots"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/dbmetrics"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/logger"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/metrics"
	"github.com/hodaifayahia/AppointmentSystem-maine/pkg/slotcache"
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

	log.Info("Starting AppointmentSystem availability service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Кэш слотов в Redis (опционален)
	var slotCache *slotcache.Cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer rdb.Close()

		slotCache = slotcache.New(rdb, time.Duration(cfg.Cache.SlotTTLSeconds)*time.Second)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Cache.SlotTTLSeconds)
	}

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	doctorRepository := doctorRepo.NewRepository(executor)
	scheduleRepository := scheduleRepo.NewRepository(executor)
	exclusionRepository := exclusionRepo.NewRepository(executor)
	availableMonthRepository := availableMonthRepo.NewRepository(executor)
	appointmentRepository := appointmentRepo.NewRepository(executor)
	forcerRepository := forcerRepo.NewRepository(executor)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		exclusionRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		doctorRepository,
		scheduleSvc,
		appointmentRepository,
		slotCacheOrNil(slotCache),
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.New(
		doctorRepository,
		scheduleSvc,
		exclusionRepository,
		availableMonthRepository,
		getAvailableSlotsUseCase,
		&checkAvailabilityUC.RealTimeProvider{},
		log,
	)

	forceSlotsUseCase := forceSlotsUC.New(
		doctorRepository,
		forcerRepository,
		scheduleRepository,
		scheduleSvc,
		exclusionRepository,
		appointmentRepository,
		&forceSlotsUC.RealTimeProvider{},
		log,
	)

	availableAppointmentsUseCase := availableAppointmentsUC.New(
		doctorRepository,
		scheduleSvc,
		exclusionRepository,
		availableMonthRepository,
		appointmentRepository,
		checkAvailabilityUseCase,
		&availableAppointmentsUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	forceSlots := forceSlotsHandler.NewHandler(forceSlotsUseCase, log)
	availableAppointments := availableAppointmentsHandler.NewHandler(availableAppointmentsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной request id
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Свободные слоты врача на дату
	api.HandleFunc("/doctors/{doctorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Поиск ближайшей доступной даты
	api.HandleFunc("/doctors/{doctorId}/check-availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Форсированные слоты вне обычной сетки
	api.HandleFunc("/doctors/{doctorId}/force-slots",
		forceSlots.Handle).Methods(http.MethodGet)

	// Освободившиеся из-за отмен слоты
	api.HandleFunc("/doctors/{doctorId}/available-appointments",
		availableAppointments.Handle).Methods(http.MethodGet)

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

// slotCacheOrNil возвращает nil-интерфейс для выключенного кэша
// Типизированный nil в интерфейсе ломал бы проверку uc.cache == nil
func slotCacheOrNil(c *slotcache.Cache) getAvailableSlotsUC.SlotCache {
	if c == nil {
		return nil
	}
	return c
}
