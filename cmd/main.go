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

	availabilityHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/availability"
	bookingsHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/bookings"
	customersHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/customers"
	packagesHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/packages"
	reportsHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/reports"
	reviewsHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/reviews"
	staffHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/staff"
	teamsHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/teams"
	wizardHandler "github.com/m04kA/SMC-BackofficeService/internal/api/handlers/wizard"
	"github.com/m04kA/SMC-BackofficeService/internal/api/middleware"
	"github.com/m04kA/SMC-BackofficeService/internal/config"
	bookingRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/customer"
	reportsRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/reports"
	reviewRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/review"
	packageRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/servicepackage"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/internal/infra/wizardstore"
	bookingsService "github.com/m04kA/SMC-BackofficeService/internal/service/bookings"
	customersService "github.com/m04kA/SMC-BackofficeService/internal/service/customers"
	packagesService "github.com/m04kA/SMC-BackofficeService/internal/service/packages"
	reportsService "github.com/m04kA/SMC-BackofficeService/internal/service/reports"
	reviewsService "github.com/m04kA/SMC-BackofficeService/internal/service/reviews"
	staffService "github.com/m04kA/SMC-BackofficeService/internal/service/staff"
	teamsService "github.com/m04kA/SMC-BackofficeService/internal/service/teams"
	bookingWizardUC "github.com/m04kA/SMC-BackofficeService/internal/usecase/booking_wizard"
	checkAvailabilityUC "github.com/m04kA/SMC-BackofficeService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BackofficeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BackofficeService/pkg/logger"
	"github.com/m04kA/SMC-BackofficeService/pkg/metrics"
	"github.com/m04kA/SMC-BackofficeService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BackofficeService/pkg/txmanager"
)

// TxManager общий интерфейс менеджеров транзакций (с метриками и без)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting SMC-BackofficeService...")
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
		bookingRepository  *bookingRepo.Repository
		customerRepository *customerRepo.Repository
		packageRepository  *packageRepo.Repository
		staffRepository    *staffRepo.Repository
		teamRepository     *teamRepo.Repository
		reviewRepository   *reviewRepo.Repository
		reportsRepository  *reportsRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		packageRepository = packageRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		teamRepository = teamRepo.NewRepository(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		reportsRepository = reportsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		packageRepository = packageRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		teamRepository = teamRepo.NewRepository(db)
		reviewRepository = reviewRepo.NewRepository(db)
		reportsRepository = reportsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Хранилище сессий мастера бронирования с фоновой очисткой
	sessionStore := wizardstore.New(time.Duration(cfg.Wizard.SessionTTLMinutes) * time.Minute)
	sessionStore.StartJanitor(time.Duration(cfg.Wizard.CleanupIntervalMinutes) * time.Minute)
	defer sessionStore.Stop()
	log.Info("Wizard session store initialized (ttl=%dm, cleanup=%dm)",
		cfg.Wizard.SessionTTLMinutes, cfg.Wizard.CleanupIntervalMinutes)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	customerSvc := customersService.NewService(customerRepository, log)
	packageSvc := packagesService.NewService(packageRepository, txMgr, log)
	staffSvc := staffService.NewService(staffRepository, teamRepository, bookingRepository, reviewRepository, log)
	teamSvc := teamsService.NewService(teamRepository, staffRepository, log)
	reviewSvc := reviewsService.NewService(reviewRepository, bookingRepository, teamRepository, teamRepository, log)
	reportSvc := reportsService.NewService(reportsRepository, bookingRepository, teamRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		packageRepository,
		staffRepository,
		teamRepository,
		txMgr,
		log,
	)
	wizardUseCase := bookingWizardUC.NewUseCase(
		sessionStore,
		createBookingUseCase,
		customerRepository,
		packageRepository,
		staffRepository,
		teamRepository,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		staffRepository,
		teamRepository,
		log,
	)

	// Инициализируем handlers
	bookings := bookingsHandler.NewHandler(createBookingUseCase, bookingSvc, log)
	wizard := wizardHandler.NewHandler(wizardUseCase, log)
	staff := staffHandler.NewHandler(staffSvc, reviewSvc, log)
	teams := teamsHandler.NewHandler(teamSvc, reviewSvc, log)
	packages := packagesHandler.NewHandler(packageSvc, log)
	customers := customersHandler.NewHandler(customerSvc, log)
	availability := availabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	reports := reportsHandler.NewHandler(reportSvc, log)
	reviews := reviewsHandler.NewHandler(reviewSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все операции back-office требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	api.HandleFunc("/bookings", bookings.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/bookings", bookings.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/bookings/bulk", bookings.HandleBulk).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", bookings.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", bookings.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}/status", bookings.HandleUpdateStatus).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/cancel", bookings.HandleCancel).Methods(http.MethodPatch)

	// --- Мастер бронирования ---
	api.HandleFunc("/wizard", wizard.HandleStart).Methods(http.MethodPost)
	api.HandleFunc("/wizard/{sessionId}", wizard.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/wizard/{sessionId}", wizard.HandleCancel).Methods(http.MethodDelete)
	api.HandleFunc("/wizard/{sessionId}/step", wizard.HandleApplyStep).Methods(http.MethodPut)
	api.HandleFunc("/wizard/{sessionId}/next", wizard.HandleNext).Methods(http.MethodPost)
	api.HandleFunc("/wizard/{sessionId}/back", wizard.HandleBack).Methods(http.MethodPost)
	api.HandleFunc("/wizard/{sessionId}/pricing-mode", wizard.HandlePricingMode).Methods(http.MethodPost)
	api.HandleFunc("/wizard/{sessionId}/submit", wizard.HandleSubmit).Methods(http.MethodPost)

	// --- Сотрудники ---
	api.HandleFunc("/staff", staff.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/staff", staff.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}", staff.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}", staff.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/staff/{staffId}", staff.HandleDeactivate).Methods(http.MethodDelete)
	api.HandleFunc("/staff/{staffId}/bookings", staff.HandleBookings).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/stats", staff.HandleStats).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/reviews", staff.HandleReviews).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/memberships", teams.HandleStaffMemberships).Methods(http.MethodGet)

	// --- Команды ---
	api.HandleFunc("/teams", teams.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/teams", teams.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}", teams.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}", teams.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/teams/{teamId}", teams.HandleDeactivate).Methods(http.MethodDelete)
	api.HandleFunc("/teams/{teamId}/members", teams.HandleAddMember).Methods(http.MethodPost)
	api.HandleFunc("/teams/{teamId}/members", teams.HandleMembers).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}/members/remove", teams.HandleRemoveMember).Methods(http.MethodPost)
	api.HandleFunc("/teams/{teamId}/reviews", teams.HandleReviews).Methods(http.MethodGet)

	// --- Пакеты услуг ---
	api.HandleFunc("/packages", packages.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/packages", packages.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/packages/{packageId}", packages.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/packages/{packageId}", packages.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/packages/{packageId}", packages.HandleDeactivate).Methods(http.MethodDelete)
	api.HandleFunc("/packages/{packageId}/quote", packages.HandleQuote).Methods(http.MethodPost)

	// --- Клиенты ---
	api.HandleFunc("/customers", customers.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/customers", customers.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/customers/{customerId}", customers.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/customers/{customerId}", customers.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/customers/{customerId}", customers.HandleDelete).Methods(http.MethodDelete)

	// --- Занятость исполнителей ---
	api.HandleFunc("/availability", availability.Handle).Methods(http.MethodGet)

	// --- Отчёты ---
	api.HandleFunc("/reports/dashboard", reports.HandleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/reports/revenue", reports.HandleRevenue).Methods(http.MethodGet)
	api.HandleFunc("/reports/top-packages", reports.HandleTopPackages).Methods(http.MethodGet)
	api.HandleFunc("/reports/export", reports.HandleExport).Methods(http.MethodGet)

	// --- Отзывы ---
	api.HandleFunc("/reviews", reviews.HandleCreate).Methods(http.MethodPost)

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
