package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alicia-launcher/app"
	"alicia-launcher/internal/bridge"
	"alicia-launcher/internal/common"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	var launchURL string
	if len(os.Args) > 1 {
		launchURL = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewBridgeApplication(
		common.WithLogger(logger),
		common.WithLaunchURL(launchURL),
	)

	if err := application.Run(ctx); err != nil {
		logger.Error("bridge failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, bridge.UserMessage(err))
		logger.Sync()
		os.Exit(bridge.ExitCode(err))
	}
}
