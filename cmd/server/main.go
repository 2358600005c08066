package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/machine-dashboard/backend/internal/api"
	"github.com/machine-dashboard/backend/internal/config"
	"github.com/machine-dashboard/backend/internal/dashboard"
	"github.com/machine-dashboard/backend/internal/logging"
	"github.com/machine-dashboard/backend/internal/models"
	"github.com/machine-dashboard/backend/internal/parser"
	"github.com/machine-dashboard/backend/internal/storage"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, config.FileName)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Configure(cfg.Advanced.LogLevel, nil)

	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatal().Err(err).Msg("failed to create directories")
	}

	theme := models.DefaultChartTheme()
	if cfg.Charts.ThemeFile != "" {
		theme, err = parser.ParseChartTheme(cfg.Charts.ThemeFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Charts.ThemeFile).Msg("failed to load chart theme")
		}
	}

	factory := storage.MemoryFactory()
	if cfg.Storage.Engine == storage.EngineDuckDB {
		factory = storage.DuckFactory(cfg.Storage.DataDirectory, storage.DuckOptions{
			Threads:     cfg.Storage.DuckDBThreads,
			MemoryLimit: cfg.Storage.DuckDBMemoryLimit,
		})
	}

	// The activity log must load before the server starts
	manager := storage.NewManager(cfg.Data.CSVPath, factory, cfg.Data.WatchForChanges)
	if err := manager.Load(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Data.CSVPath).Msg("failed to load activity log")
	}
	defer manager.Close()

	service := dashboard.NewService(manager, theme)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api.SetupMiddleware(e, cfg)
	handlers := api.NewHandlers(&api.Dependencies{
		Service:   service,
		PlotlyURL: cfg.Charts.PlotlyURL,
		PNGWidth:  cfg.Charts.PNGWidth,
		PNGHeight: cfg.Charts.PNGHeight,
		Version:   Version,
	})
	if err := api.RegisterRoutes(e, handlers); err != nil {
		log.Fatal().Err(err).Msg("failed to register routes")
	}

	// Configure server with settings from XML config
	read, write, idle := cfg.Timeouts()
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  read,
		WriteTimeout: write,
		IdleTimeout:  idle,
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Machine Activity Dashboard                      ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Store:      %-45s║\n", cfg.Storage.Engine)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  CSV:       %-46s║\n", cfg.Data.CSVPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	go func() {
		if err := e.StartServer(s); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
