package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/you/wifiattend/internal/app"
	"github.com/you/wifiattend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "config file (default config/config.yml or $ATTEND_CONFIG)")
	server := flag.String("server", "", "override the record store base URL")
	verbose := flag.Bool("verbose", false, "log every backend request")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: attendctl [-config FILE] [-server URL] [-verbose] COMMAND [ARGS]")
		fmt.Fprintln(os.Stderr, "       attendctl shell")
		fmt.Fprintln(os.Stderr, "       attendctl help")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetPrefix("attendctl: ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *server != "" {
		cfg.BaseURL = *server
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdin := bufio.NewReader(os.Stdin)
	container, err := app.NewContainer(ctx, cfg, app.Options{In: stdin, Verbose: *verbose})
	if err != nil {
		log.Fatalf("app: %v", err)
	}
	defer container.Close()

	cli := app.NewCLI(container, os.Stdout)
	args := flag.Args()
	if len(args) > 0 && args[0] == "shell" {
		if err := app.RunShell(ctx, cli, stdin, os.Stdout); err != nil && ctx.Err() == nil {
			log.Printf("shell: %v", err)
		}
		return
	}

	if err := cli.Run(ctx, args); err != nil {
		container.Close()
		os.Exit(1)
	}
}
