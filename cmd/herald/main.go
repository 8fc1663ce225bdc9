// Command herald announces upcoming calendar events to a chat webhook.
//
// It runs one pipeline pass per invocation and exits; scheduling is left to
// cron or any other external invoker.
//
// Usage:
//
//	herald [-d YYYY-MM-DD] [-config path/to/herald.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abelbrown/herald/internal/app"
	"github.com/abelbrown/herald/internal/config"
	"github.com/abelbrown/herald/internal/logging"
)

const version = "1.0.0"

func main() {
	var (
		dateStr     string
		configPath  string
		showVersion bool
	)
	flag.StringVar(&dateStr, "date", "", "target date (YYYY-MM-DD, default today)")
	flag.StringVar(&dateStr, "d", "", "shorthand for -date")
	flag.StringVar(&configPath, "config", "", "config file (default herald.yaml next to the executable or in the working directory)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("herald %s\n", version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "herald: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogLevel)
	logging.Info("herald starting", "version", version)

	target := time.Now()
	if dateStr != "" {
		target, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "herald: invalid date %q (want YYYY-MM-DD)\n", dateStr)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := app.Run(ctx, cfg, target)
	if err != nil {
		logging.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("herald: %d event(s) delivered (%d/%d sources ok)\n",
		summary.Delivered, summary.Sources-summary.Failed, summary.Sources)
}
