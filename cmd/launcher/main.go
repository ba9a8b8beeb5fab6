package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alicia-launcher/app"
	"alicia-launcher/internal/common"
	"alicia-launcher/internal/launcher"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ENTER on the console ends the run like an interrupt does.
	go func() {
		if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err == nil {
			stop()
		}
	}()

	application := app.NewLauncherApplication(
		common.WithLogger(logger),
		common.WithArgs(os.Args[1:]),
	)

	if err := application.Run(ctx); err != nil {
		logger.Error("launcher failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, launcher.UserMessage(err))
		logger.Sync()
		os.Exit(1)
	}
}
