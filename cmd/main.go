// Command medassist serves the prediction API and the browser forms. It
// refuses to start unless both model artifacts load.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/artifact"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/http/api"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/http/site"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/http/swagger"
	app "github.com/SiddharthSingh5771/MedAssist-AI/internal/app"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/config"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> .env -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithFile(cfg.LogFile)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := artifact.FromConfig(ctx, cfg)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to open artifact store", logger.Error(err))
	}

	// Both models are loaded once; a missing or mismatched artifact is fatal.
	models, err := app.LoadModels(ctx, store)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to load models", logger.Error(err))
	}
	for _, s := range schema.All() {
		hdr := models[s.Disease].Header
		loggerInstance.Info(ctx, "model loaded",
			logger.String("disease", string(s.Disease)),
			logger.String("kind", hdr.Kind),
			logger.String("schema", hdr.Schema),
			logger.String("location", store.Location(s.Artifact)))
	}

	svc := app.New(models,
		app.WithLogger(loggerInstance.Named("service")),
		app.WithTimeout(time.Duration(cfg.PredictionTimeoutMS)*time.Millisecond),
		app.WithMetrics(metrics.Default()),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, loggerInstance),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newHandler mounts the API, the forms and the docs on one mux.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, api.WithLogger(log.Named("api")))
	apiServer.Register(ctx, mux)

	site.New(svc, site.WithLogger(log.Named("site"))).Register(ctx, mux)

	return api.RequestIDMiddleware(api.CORS(cfg.AllowedOrigins)(mux))
}
