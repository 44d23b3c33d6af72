package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/0xPuncker/cron-dashboard/internal/api"
	"github.com/0xPuncker/cron-dashboard/internal/config"
	"github.com/0xPuncker/cron-dashboard/internal/poller"
	"github.com/0xPuncker/cron-dashboard/internal/schedule"
	"github.com/dimiro1/banner"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

const bannerText = `
{{ .Title "Cron Dashboard" "" 0 }} 
{{ .AnsiBackground.BrightBlue }}{{ .AnsiColor.White }}
{{ .AnsiReset }}
`

func main() {
	config.LoadEnvFiles()

	banner.Init(colorable.NewColorableStdout(), true, true, strings.NewReader(bannerText))

	configPath := flag.String("config", "config/config.json", "path to config file")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          false,
		DisableTimestamp:       false,
		TimestampFormat:        "2006-01-02T15:04:05-07:00",
		DisableLevelTruncation: false,
		PadLevelText:           false,
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	level, _ := logrus.ParseLevel(cfg.Log.Level)
	logger.SetLevel(level)

	logger.Debugf("Jobs file: %s", cfg.Jobs.File)

	defs, err := schedule.LoadDefinitions(cfg.Jobs.File)
	if err != nil {
		logger.Fatalf("Failed to load jobs: %v", err)
	}

	registry, err := schedule.NewRegistry(defs, logger, cfg.CacheTTL())
	if err != nil {
		logger.Fatalf("Failed to load job table: %v", err)
	}

	handler := api.NewHandler(registry, logger)
	server := api.NewServer(cfg, handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := poller.New(registry, cfg.Jobs.File, logger, cfg.ReloadInterval())
	p.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	logger.Infof("Server started on port %s - Press Ctrl+C to stop.", cfg.Server.Port)

	<-stop
	logger.Info("Shutting down server...")

	p.Stop()

	if err := api.Shutdown(server, 5*time.Second); err != nil {
		logger.Error(err)
	}

	logger.Info("Server stopped")
}
