package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	gormlogger "gorm.io/gorm/logger"

	"apiforge/internal/config"
	"apiforge/internal/database"
	"apiforge/internal/logger"
	"apiforge/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg := config.Load()
	logger.Setup(cfg)

	dbLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		dbLevel = gormlogger.Info
	}
	db, err := database.Init(database.Config{
		Path:     cfg.DBPath,
		LogLevel: dbLevel,
	})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	var dbClose func() error
	if sqlDB, err := db.DB(); err == nil {
		dbClose = sqlDB.Close
	}

	ring, err := services.OpenKeyring()
	if err != nil {
		slog.Warn("no OS keyring available, API keys come from the environment", "error", err)
		ring = nil
	}
	keyringService := services.NewKeyringService(ring)

	catalog, err := services.NewModelCatalogService()
	if err != nil {
		slog.Error("failed to load model catalog", "error", err)
		os.Exit(1)
	}

	caller, publisher, err := services.NewAgentBackends(context.Background(), cfg, keyringService, catalog)
	if err != nil {
		slog.Error("failed to configure agents", "error", err)
		os.Exit(1)
	}

	svc := services.NewServices(db, cfg, caller, publisher)
	app := NewApp(svc, keyringService, catalog, dbClose)

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "API Forge",
		Width:  1280,
		Height: 832,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "apiforge",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		slog.Error("wails exited with error", "error", err)
		os.Exit(1)
	}
}
