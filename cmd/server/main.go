package main

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"snowlist/application"
	"snowlist/database"
	"snowlist/domain/contracts"
	"snowlist/infrastructure/config"
	"snowlist/infrastructure/repositories"
	"snowlist/infrastructure/rpcclient"
	"snowlist/interfaces/web/handlers"
	"snowlist/interfaces/web/presenters"
	templates "snowlist/interfaces/web/templates"
	"snowlist/logging"
)

func main() {
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	logger := initializeLogging(cfg)

	deps, cleanup := buildDependencies(cfg, logger)
	defer cleanup()

	// Mount-time reads: search, counts and the one-shot latest-update.
	deps.BrowseService.Start(appCtx)

	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger, appCancel)
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	DB     *database.Database // nil in rpc mode
	Logger *logging.Logger

	ResortRepo    contracts.ResortRepository
	BrowseService *application.BrowseService

	BrowseHandlers *handlers.BrowseHandlers
	APIHandlers    *handlers.APIHandlers
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"backend_mode", cfg.Backend.Mode,
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
	)

	return logger
}

// buildDependencies selects the backend implementation and wires the
// service and presentation layers. The returned cleanup closes the local
// database when one was opened.
func buildDependencies(cfg *config.AppConfig, logger *logging.Logger) (*Dependencies, func()) {
	var (
		db      *database.Database
		repo    contracts.ResortRepository
		cleanup = func() {}
	)

	switch cfg.Backend.Mode {
	case config.BackendModeRPC:
		if cfg.Backend.RPCBaseURL == "" {
			logger.Error("RPC_BASE_URL is required in rpc mode")
			os.Exit(1)
		}
		repo = rpcclient.New(cfg.Backend, logger)
	default:
		var err error
		db, err = database.New(*cfg.Database, logger)
		if err != nil {
			logger.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		cleanup = func() { db.Close() }
		repo = repositories.NewSqliteResortRepository(db)
	}

	browseService := application.NewBrowseService(repo, logger)
	presenter := presenters.NewResortPresenter()

	return &Dependencies{
		DB:             db,
		Logger:         logger,
		ResortRepo:     repo,
		BrowseService:  browseService,
		BrowseHandlers: handlers.NewBrowseHandlers(browseService, presenter),
		APIHandlers:    handlers.NewAPIHandlers(browseService, presenter),
	}, cleanup
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	mountStaticAssets(r)
	setupSystemRoutes(r, deps)

	// Browse page and HTMX partials
	r.Get("/", deps.BrowseHandlers.BrowsePage)
	r.Get("/resorts", deps.BrowseHandlers.ResortsTable)
	r.Get("/resorts/tiles", deps.BrowseHandlers.SummaryTiles)

	// JSON API
	r.Get("/api/resorts", deps.APIHandlers.ListResorts)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile stays open for the server lifetime

	httpLogger := httplog.NewLogger("snowlist", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func mountStaticAssets(r chi.Router) {
	sub, _ := fs.Sub(templates.FS, "assets")
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"status": "ok",
		}

		if deps.DB != nil {
			stats, err := deps.DB.Health()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			response["database"] = stats
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger, appCancel context.CancelFunc) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		appCancel()

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}
