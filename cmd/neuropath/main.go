package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"neuropath/internal/app"
	"neuropath/internal/config"
	"neuropath/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	offline := flag.Bool("offline", false, "use canned replies instead of the provider")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. 127.0.0.1:9464")
	flag.Parse()

	if *offline {
		os.Setenv("NEUROPATH_OFFLINE", "true")
	}
	if *metricsAddr != "" {
		os.Setenv("NEUROPATH_METRICS_ADDR", *metricsAddr)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	go func() {
		if err := a.Start(); err != nil {
			a.Logger().Error("metrics server error", "error", err)
		}
	}()

	model := tui.New(ctx, tui.Options{
		Session:  a.Session(),
		MaxBytes: cfg.Ingest.MaxBytes,
		Logger:   a.Logger(),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := program.Run()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if runErr != nil && ctx.Err() == nil {
		log.Fatalf("UI error: %v", runErr)
	}
}
