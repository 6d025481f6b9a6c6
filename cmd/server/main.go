package main

import (
	"log/slog"
	"os"

	"github.com/arcana-labs/reportwriter/internal/auth"
	"github.com/arcana-labs/reportwriter/internal/config"
	"github.com/arcana-labs/reportwriter/internal/server"
	"github.com/arcana-labs/reportwriter/internal/service"
	"github.com/arcana-labs/reportwriter/internal/storage"
	"github.com/arcana-labs/reportwriter/internal/storage/jsonfile"
	"github.com/arcana-labs/reportwriter/internal/storage/sqlite"
	"github.com/arcana-labs/reportwriter/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var store storage.Store
	switch cfg.StoreDriver {
	case "sqlite":
		store, err = sqlite.New(cfg.StorePath)
	default:
		store, err = jsonfile.New(cfg.StorePath)
	}
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.StoreDriver, "path", cfg.StorePath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	logger := slog.Default()
	reportSvc := service.NewReportService(store, logger)
	personSvc := service.NewPersonService(store, logger)
	authSvc := service.NewAuthService(authenticator, jwtManager, logger)
	adminSvc := service.NewAdminService(store, reportSvc, logger)

	srv := server.New(authSvc, personSvc, reportSvc, adminSvc, jwtManager)

	slog.Info("Report Writer API starting", "address", cfg.Addr)
	if err := srv.Router().Run(cfg.Addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
