package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxelnoise/internal/config"
)

func main() {
	var (
		cfgPath  string
		previews bool
	)
	flag.StringVar(&cfgPath, "config", "", "path to noise generator configuration file (JSON or YAML)")
	flag.BoolVar(&previews, "previews", false, "write PNG previews regardless of the configuration")
	flag.Parse()

	if _, err := writeConfigFromEnv(cfgPath); err != nil {
		log.Fatalf("sync config: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if previews {
		cfg.Output.Previews = true
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger := log.New(os.Stderr, "noisegen ", log.LstdFlags|log.Lmicroseconds)
	summary, err := run(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("generate region: %v", err)
	}
	summary.print(os.Stdout)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
			return
		}

		// Workers finish their current chunk before exiting; do not wait forever.
		time.AfterFunc(10*time.Second, func() {
			log.Printf("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
