package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/DA-itd/constancias/internal/config"
	"github.com/DA-itd/constancias/internal/core"
	"github.com/DA-itd/constancias/internal/logging"
	"github.com/DA-itd/constancias/internal/refdata"
	"github.com/DA-itd/constancias/internal/registration"
	"github.com/DA-itd/constancias/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"database_url", cfg.Validator.DatabaseURL,
		"refdata_base_url", cfg.RefData.BaseURL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ingestor := core.NewIngestor(cfg.Validator.FolioAliases)
	ingestor.HeaderScanRows = cfg.Validator.HeaderScanRows
	validator := core.NewService(ingestor, core.NewDateFormatter())

	remote := refdata.NewClient(cfg.RefData.BaseURL, &http.Client{
		Timeout: cfg.RefData.FetchTimeout,
	})
	registrar := registration.NewService(remote, nil)

	if cfg.Validator.FetchOnStartup {
		loadInitialData(cfg, validator, registrar, remote)
	}

	server := web.NewServer(validator, registrar, remote, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// loadInitialData fetches the constancia workbook and the registration
// reference data. Failures are logged, not fatal: both can be loaded
// later through the API.
func loadInitialData(cfg *config.Config, validator *core.Service, registrar *registration.Service, remote *refdata.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	data, err := remote.DownloadWorkbook(ctx, cfg.Validator.DatabaseURL)
	if err != nil {
		slog.Warn("startup database fetch failed", "error", err)
	} else if report, err := validator.Load(data, "la URL configurada"); err != nil {
		slog.Warn("startup database load failed", "error", err)
	} else {
		slog.Info("database loaded",
			"records", validator.RecordCount(),
			"sheets_processed", report.ProcessedCount,
			"sheets_skipped", report.SkippedCount,
		)
	}

	if err := registrar.LoadReferenceData(ctx); err != nil {
		slog.Warn("startup reference data fetch failed", "error", err)
	} else {
		slog.Info("reference data loaded",
			"teachers", len(registrar.Teachers()),
			"departments", len(registrar.Departments()),
			"courses", len(registrar.Courses()),
		)
	}
}
