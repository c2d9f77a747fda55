package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fortivpn/infrastructure/PAL/client_configuration"
	"fortivpn/infrastructure/logging"
	"fortivpn/presentation"
	"fortivpn/presentation/elevation"
)

const packageName = "fortivpn"

func main() {
	if !elevation.IsElevated() {
		fmt.Printf("%s must be run with administrator privileges: %s\n", packageName, elevation.Hint())
		os.Exit(1)
	}

	logger := logging.NewLogLogger()

	cfg, err := client_configuration.NewManager().Configuration()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigChan
		logger.Printf("interrupt received, shutting down")
		cancel()
	}()

	if err := presentation.Connect(ctx, cfg, logger); err != nil {
		logger.Printf("connect failed: %v", err)
		os.Exit(1)
	}
}
