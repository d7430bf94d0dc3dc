package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/family-ledger/api"
	"github.com/frahmantamala/family-ledger/internal"
	"github.com/frahmantamala/family-ledger/internal/auth"
	authPostgres "github.com/frahmantamala/family-ledger/internal/auth/postgres"
	"github.com/frahmantamala/family-ledger/internal/broker"
	"github.com/frahmantamala/family-ledger/internal/category"
	categoryPostgres "github.com/frahmantamala/family-ledger/internal/category/postgres"
	"github.com/frahmantamala/family-ledger/internal/core/events"
	"github.com/frahmantamala/family-ledger/internal/family"
	familyPostgres "github.com/frahmantamala/family-ledger/internal/family/postgres"
	"github.com/frahmantamala/family-ledger/internal/summary"
	summaryPostgres "github.com/frahmantamala/family-ledger/internal/summary/postgres"
	"github.com/frahmantamala/family-ledger/internal/transaction"
	transactionPostgres "github.com/frahmantamala/family-ledger/internal/transaction/postgres"
	"github.com/frahmantamala/family-ledger/internal/transport"
	"github.com/frahmantamala/family-ledger/internal/transport/rest"
	"github.com/frahmantamala/family-ledger/internal/transport/swagger"
	"github.com/frahmantamala/family-ledger/internal/user"
	userPostgres "github.com/frahmantamala/family-ledger/internal/user/postgres"
	"github.com/frahmantamala/family-ledger/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
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
	Config   *internal.Config
	DB       *Database
	Router   *chi.Mux
	EventBus *events.EventBus
	Broker   *broker.Client
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		deps.Logger.Error("failed to set up routes", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "driver", deps.DB.Driver)

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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.close()
			os.Exit(1)
		}
	}

	deps.close()
	deps.Logger.Info("Server stopped")
}

func (d *Dependencies) close() {
	if d.EventBus != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.EventBus.Drain(ctx); err != nil {
			d.Logger.Warn("Event deliveries still running at shutdown", "error", err)
		}
		cancel()
	}
	if d.Broker != nil {
		if err := d.Broker.Close(); err != nil {
			d.Logger.Error("Broker close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func setupRoutes(deps *Dependencies) error {
	lg := deps.Logger
	cfg := deps.Config

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := swagger.Load(ctx, api.OpenAPISpec); err != nil {
		return err
	}

	gdb := deps.DB.Gorm
	sqlxDB := deps.DB.SQLX
	bus := deps.EventBus
	base := transport.NewBaseHandler(lg)

	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(gdb), bus, lg)
	transactionService := transaction.NewService(transactionPostgres.NewTransactionRepository(gdb), categoryService, bus, lg)
	summaryService := summary.NewService(summaryPostgres.NewSummaryRepository(sqlxDB), lg)
	familyService := family.NewService(familyPostgres.NewFamilyRepository(gdb), lg)
	userService := user.NewService(userPostgres.NewPostgresRepo(sqlxDB), lg)
	authService := auth.NewService(
		authPostgres.NewRepository(gdb),
		auth.NewJWTTokenGenerator(
			cfg.Security.AccessTokenSecret,
			cfg.Security.RefreshTokenSecret,
			cfg.Security.AccessTokenDuration,
			cfg.Security.RefreshTokenDuration,
		),
		auth.NewBcryptHasher(cfg.Security.BCryptCost),
		bus,
		lg,
	)

	checkers := map[string]rest.Checker{}
	if deps.Broker != nil {
		checkers["broker"] = deps.Broker.Ping
	}

	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Health:         rest.NewHealthHandler(deps.DB.SQL(), deps.DB.Driver, checkers),
		Auth:           auth.NewHandler(base, authService),
		User:           user.NewHandler(base, userService),
		Family:         family.NewHandler(base, familyService),
		Category:       category.NewHandler(base, categoryService),
		Transaction:    transaction.NewHandler(base, transactionService),
		Summary:        summary.NewHandler(base, summaryService),
		OpenAPISpec:    api.OpenAPISpec,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.WriteTimeout,
	}, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Configure(logger.Options{
		Level:  config.Observability.Logging.Level,
		Format: config.Observability.Logging.Format,
	})

	db, err := initDB(config.Database, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus, client, err := initEventBus(config.Broker, lg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Router:   chi.NewRouter(),
		EventBus: bus,
		Broker:   client,
	}, nil
}

// initEventBus builds the in-process bus with the audit log attached and,
// when enabled, a forwarder to the AMQP exchange.
func initEventBus(cfg internal.BrokerConfig, lg *slog.Logger) (*events.EventBus, *broker.Client, error) {
	bus := events.NewEventBus(lg)
	bus.SubscribeMany(events.LedgerEventTypes, events.AuditHandler(lg))

	if !cfg.Enabled {
		return bus, nil, nil
	}

	client, err := broker.NewClient(cfg.URL, cfg.Exchange)
	if err != nil {
		return nil, nil, err
	}
	broker.NewForwarder(client, lg).Register(bus)
	lg.Info("event forwarding enabled", "exchange", cfg.Exchange)
	return bus, client, nil
}
