package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/you/wifiattend/internal/app"
	"github.com/you/wifiattend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "config file (default config/config.yml or $ATTEND_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunRecordStore(ctx, cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
