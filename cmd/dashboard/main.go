package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/0xPuncker/cron-dashboard/internal/config"
	"github.com/0xPuncker/cron-dashboard/internal/dashboard"
	"github.com/0xPuncker/cron-dashboard/internal/feed"
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

	logger := logrus.New()
	logger.SetOutput(colorable.NewColorableStderr())
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05-07:00",
	})

	cfg, err := config.LoadDashboard()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	feedURL := flag.String("feed", cfg.FeedURL, "base URL of the job feed")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level")
	noColor := flag.Bool("no-color", cfg.NoColor, "disable colored output")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)

	out := colorable.NewColorableStdout()
	if !*noColor {
		banner.Init(out, true, true, strings.NewReader(bannerText))
	}

	client := feed.NewClient(logger, *feedURL)
	logger.Debugf("Feed URL: %s", client.URL())

	view := dashboard.NewView(client, dashboard.NewTerminalRenderer(out, !*noColor), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := view.Start(ctx); err != nil {
		logger.Fatalf("Failed to start dashboard: %v", err)
	}

	<-ctx.Done()
	view.Stop()
}
