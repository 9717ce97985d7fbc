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

	cancelAppointmentHandler "github.com/punkajrapr/timegrid/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/punkajrapr/timegrid/internal/api/handlers/create_appointment"
	deleteVacanciesHandler "github.com/punkajrapr/timegrid/internal/api/handlers/delete_vacancies"
	getAppointmentHandler "github.com/punkajrapr/timegrid/internal/api/handlers/get_appointment"
	getAvailableTimesHandler "github.com/punkajrapr/timegrid/internal/api/handlers/get_available_times"
	getBusinessAppointmentsHandler "github.com/punkajrapr/timegrid/internal/api/handlers/get_business_appointments"
	getUserAppointmentsHandler "github.com/punkajrapr/timegrid/internal/api/handlers/get_user_appointments"
	getVacanciesHandler "github.com/punkajrapr/timegrid/internal/api/handlers/get_vacancies"
	updateAppointmentStatusHandler "github.com/punkajrapr/timegrid/internal/api/handlers/update_appointment_status"
	updateVacanciesHandler "github.com/punkajrapr/timegrid/internal/api/handlers/update_vacancies"
	"github.com/punkajrapr/timegrid/internal/api/middleware"
	"github.com/punkajrapr/timegrid/internal/config"
	appointmentRepo "github.com/punkajrapr/timegrid/internal/infra/storage/appointment"
	vacancySheetRepo "github.com/punkajrapr/timegrid/internal/infra/storage/vacancysheet"
	directoryServiceClient "github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
	appointmentsService "github.com/punkajrapr/timegrid/internal/service/appointments"
	vacanciesService "github.com/punkajrapr/timegrid/internal/service/vacancies"
	createAppointmentUC "github.com/punkajrapr/timegrid/internal/usecase/create_appointment"
	getAvailableTimesUC "github.com/punkajrapr/timegrid/internal/usecase/get_available_times"
	"github.com/punkajrapr/timegrid/internal/vacancy"
	"github.com/punkajrapr/timegrid/pkg/dbmetrics"
	"github.com/punkajrapr/timegrid/pkg/logger"
	"github.com/punkajrapr/timegrid/pkg/metrics"
	"github.com/punkajrapr/timegrid/pkg/simpletxmanager"
	"github.com/punkajrapr/timegrid/pkg/txmanager"
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

	log.Info("Starting timegrid scheduling service...")
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

	// Инициализируем интеграционного клиента
	directoryClient := directoryServiceClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (DirectoryService=%s timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout)

	// Кэш разобранных листов доступности (процессный, сверяется по updated_at)
	sheetCache := vacancy.NewCache()

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		vacancySheetRepository *vacancySheetRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		vacancySheetRepository = vacancySheetRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		vacancySheetRepository = vacancySheetRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		directoryClient,
		log,
	)
	vacancySvc := vacanciesService.NewService(
		vacancySheetRepository,
		directoryClient,
		sheetCache,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		vacancySheetRepository,
		directoryClient,
		sheetCache,
		txMgr,
		log,
	)

	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		appointmentRepository,
		vacancySheetRepository,
		directoryClient,
		sheetCache,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentSvc, log)
	getVacancies := getVacanciesHandler.NewHandler(vacancySvc, log)
	updateVacancies := updateVacanciesHandler.NewHandler(vacancySvc, log)
	deleteVacancies := deleteVacanciesHandler.NewHandler(vacancySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные времена начала записи на услугу
	api.HandleFunc("/vacancies/{businessId}/{serviceId}/{date}",
		getAvailableTimes.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/booking", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (владельцем бизнеса)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для владельцев) ---
	// Список записей бизнеса
	protected.HandleFunc("/businesses/{businessId}/appointments", getBusinessAppointments.Handle).Methods(http.MethodGet)

	// Лист доступности бизнеса
	protected.HandleFunc("/businesses/{businessId}/vacancies", getVacancies.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/vacancies", updateVacancies.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/vacancies", deleteVacancies.Handle).Methods(http.MethodDelete)

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
