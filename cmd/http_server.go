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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/danindra/workforce-scheduling/internal"
	"github.com/danindra/workforce-scheduling/internal/analytics"
	analyticsPostgres "github.com/danindra/workforce-scheduling/internal/analytics/postgres"
	"github.com/danindra/workforce-scheduling/internal/auth"
	authPostgres "github.com/danindra/workforce-scheduling/internal/auth/postgres"
	"github.com/danindra/workforce-scheduling/internal/company"
	companyPostgres "github.com/danindra/workforce-scheduling/internal/company/postgres"
	"github.com/danindra/workforce-scheduling/internal/core/events"
	"github.com/danindra/workforce-scheduling/internal/department"
	departmentPostgres "github.com/danindra/workforce-scheduling/internal/department/postgres"
	"github.com/danindra/workforce-scheduling/internal/employee"
	employeePostgres "github.com/danindra/workforce-scheduling/internal/employee/postgres"
	"github.com/danindra/workforce-scheduling/internal/rbac"
	"github.com/danindra/workforce-scheduling/internal/role"
	rolePostgres "github.com/danindra/workforce-scheduling/internal/role/postgres"
	"github.com/danindra/workforce-scheduling/internal/schedule"
	schedulePostgres "github.com/danindra/workforce-scheduling/internal/schedule/postgres"
	"github.com/danindra/workforce-scheduling/internal/shiftswap"
	shiftswapPostgres "github.com/danindra/workforce-scheduling/internal/shiftswap/postgres"
	"github.com/danindra/workforce-scheduling/internal/timeoff"
	timeoffPostgres "github.com/danindra/workforce-scheduling/internal/timeoff/postgres"
	"github.com/danindra/workforce-scheduling/internal/transport/rest"
	"github.com/danindra/workforce-scheduling/internal/transport/swagger"
	"github.com/danindra/workforce-scheduling/pkg/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
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
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
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

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx: %w", err)
	}

	ctx := context.Background()

	// Spec validation fails fast on a broken OpenAPI document.
	if _, err := swagger.LoadSpec(ctx, "./api/openapi.yml"); err != nil {
		lg.Warn("openapi document failed validation", "error", err)
	}

	bus := events.NewEventBus(lg)

	registry := rbac.NewRegistry(lg)
	roleRepo := rolePostgres.NewRepository(gormDB)
	if err := registry.Reload(ctx, roleRepo); err != nil {
		return nil, fmt.Errorf("failed to load role registry: %w", err)
	}

	evaluator := rbac.NewEvaluator(registry)
	guard := rbac.NewGuard(evaluator, registry, lg)

	tokens := auth.NewJWTTokenGenerator(config.Security.AccessTokenSecret, config.Security.AccessTokenTTL)
	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, authRepo, tokens,
		config.Security.BCryptCost, config.Security.SessionTTL,
		config.Security.EnableDemoRoleSwitch, lg)

	companyService := company.NewService(companyPostgres.NewRepository(gormDB), lg)
	scheduleRepo := schedulePostgres.NewRepository(gormDB)
	scheduleService := schedule.NewService(scheduleRepo, bus, lg)

	handlers := rest.Handlers{
		Auth:     auth.NewHandler(authService, evaluator),
		Role:     role.NewHandler(role.NewService(roleRepo, registry, lg)),
		Employee: employee.NewHandler(employee.NewService(employeePostgres.NewRepository(gormDB), registry, config.Security.BCryptCost, lg)),
		Schedule: schedule.NewHandler(scheduleService),
		TimeOff:  timeoff.NewHandler(timeoff.NewService(timeoffPostgres.NewRepository(gormDB), bus, lg)),
		ShiftSwap: shiftswap.NewHandler(shiftswap.NewService(
			shiftswapPostgres.NewRepository(gormDB), scheduleRepo, companyService, bus, lg)),
		Department: department.NewHandler(department.NewService(departmentPostgres.NewRepository(gormDB), lg)),
		Company:    company.NewHandler(companyService),
		Analytics:  analytics.NewHandler(analytics.NewService(analyticsPostgres.NewRepository(db), lg)),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, handlers, guard,
		config.Server.AllowedOrigins, config.Security.EnableDemoRoleSwitch, lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// initDB opens the pgx stdlib connection pool used by both gorm and the
// reporting queries.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

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

	return dbConn, nil
}
