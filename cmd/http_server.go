package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lslops/checklist-management/internal"
	"github.com/lslops/checklist-management/internal/alert"
	alertpg "github.com/lslops/checklist-management/internal/alert/postgres"
	"github.com/lslops/checklist-management/internal/auth"
	authpg "github.com/lslops/checklist-management/internal/auth/postgres"
	"github.com/lslops/checklist-management/internal/checklist"
	checklistpg "github.com/lslops/checklist-management/internal/checklist/postgres"
	"github.com/lslops/checklist-management/internal/core/events"
	"github.com/lslops/checklist-management/internal/dashboard"
	dashboardpg "github.com/lslops/checklist-management/internal/dashboard/postgres"
	"github.com/lslops/checklist-management/internal/employee"
	employeepg "github.com/lslops/checklist-management/internal/employee/postgres"
	"github.com/lslops/checklist-management/internal/equipment"
	equipmentpg "github.com/lslops/checklist-management/internal/equipment/postgres"
	"github.com/lslops/checklist-management/internal/report"
	reportpg "github.com/lslops/checklist-management/internal/report/postgres"
	"github.com/lslops/checklist-management/internal/sector"
	sectorpg "github.com/lslops/checklist-management/internal/sector/postgres"
	"github.com/lslops/checklist-management/internal/template"
	templatepg "github.com/lslops/checklist-management/internal/template/postgres"
	"github.com/lslops/checklist-management/internal/transport"
	"github.com/lslops/checklist-management/internal/transport/rest"
	"github.com/lslops/checklist-management/internal/user"
	userpg "github.com/lslops/checklist-management/internal/user/postgres"
	"github.com/lslops/checklist-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *gorm.DB
	Router    *chi.Mux
	Logger    *slog.Logger
	Publisher *alert.QueuePublisher
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if deps.Publisher != nil {
			deps.Publisher.Close()
		}
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap sql db: %w", err)
	}

	base := transport.NewBaseHandler(log)

	// auth
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authSvc := auth.NewService(authpg.NewRepository(db), tokenGen)
	authHandler := auth.NewHandler(authSvc)
	gate := auth.NewRoleGate(log)

	// reference data
	userSvc := user.NewService(userpg.NewUserRepository(db), log, config.Security.BCryptCost)
	sectorSvc := sector.NewService(sectorpg.NewSectorRepository(db), log)
	equipmentSvc := equipment.NewService(equipmentpg.NewEquipmentRepository(db), log)
	templateRepo := templatepg.NewTemplateRepository(db)
	templateSvc := template.NewService(templateRepo, log)

	// events: non-compliance goes to the broker when one is configured,
	// otherwise the in-process bus delivers straight to the alert dispatcher
	bus := events.NewEventBus(log)
	var publisher checklist.EventPublisherAPI = bus
	var queuePublisher *alert.QueuePublisher
	if config.AMQP.Enabled() {
		queuePublisher = alert.NewQueuePublisher(config.AMQP.URL, config.AMQP.Queue, bus, log)
		publisher = queuePublisher
		log.Info("non-compliance events routed to broker", "queue", config.AMQP.Queue)
	} else if config.SMTP.Enabled() {
		dispatcher := alert.NewDispatcher(
			alertpg.NewAlertRepository(db),
			alertpg.NewRecipientRepository(db),
			alert.NewSMTPMailer(config.SMTP),
			log,
		)
		dispatcher.SubscribeTo(bus)
	} else {
		log.Warn("smtp not configured, non-compliance alerts disabled")
	}

	checklistSvc := checklist.NewService(
		checklistpg.NewChecklistRepository(db),
		templateRepo,
		publisher,
		config.Checklist,
		log,
	)
	employeeSvc := employee.NewService(employeepg.NewEmployeeRepository(db), checklistSvc, log)
	reportSvc := report.NewService(reportpg.NewReportRepository(db), checklistSvc, log)

	var cache *redis.Client
	if config.Redis.Enabled() {
		cache = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
	}
	dashboardSvc := dashboard.NewService(dashboardpg.NewDashboardRepository(db), cache, config.Redis.CacheTTL, log)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlDB, rest.Handlers{
		Auth:      authHandler,
		Users:     user.NewHandler(base, userSvc),
		Sectors:   sector.NewHandler(base, sectorSvc),
		Employees: employee.NewHandler(base, employeeSvc),
		Equipment: equipment.NewHandler(base, equipmentSvc),
		Templates: template.NewHandler(base, templateSvc),
		Checklist: checklist.NewHandler(base, checklistSvc),
		Reports:   report.NewHandler(base, reportSvc),
		Dashboard: dashboard.NewHandler(base, dashboardSvc),
	}, gate, log)

	return &Dependencies{
		Config:    config,
		DB:        db,
		Router:    router,
		Logger:    log,
		Publisher: queuePublisher,
	}, nil
}

// initDB opens the pooled connection and layers gorm on top of it, so the
// pool settings apply to everything sharing the handle.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	driver := "pgx"
	if cfg.Driver == "sqlite" {
		driver = "sqlite3"
	}

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var dialector gorm.Dialector
	if cfg.Driver == "sqlite" {
		dialector = gormsqlite.Dialector{Conn: dbConn.DB}
	} else {
		dialector = gormpostgres.New(gormpostgres.Config{Conn: dbConn.DB})
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to wrap db connection: %w", err)
	}

	return db, nil
}
