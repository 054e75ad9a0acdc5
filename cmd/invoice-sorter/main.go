package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/core"
	"github.com/szabol/invoice-sorter/internal/di"
	"github.com/szabol/invoice-sorter/internal/ports"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the sweep
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	runner ports.BatchRunner,
	source core.MailSource,
) error {
	defer logger.Sync()

	// A batch sweep runs to completion; SIGINT/SIGTERM stop it between
	// messages. An interrupted message is never marked complete because
	// marking is strictly the last pipeline step.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := runner.Run(ctx)
	if err != nil {
		logger.Error("Sweep failed", zap.Error(err))
		return err
	}

	fmt.Printf("\nMessages scanned : %d\n", stats.Scanned)
	fmt.Printf("Attachments seen : %d\n", stats.Attachments)
	fmt.Printf("Files saved      : %d\n", stats.Completed)
	fmt.Printf("Skipped          : %d\n", stats.Skipped)
	fmt.Printf("Flagged          : %d\n", stats.Flagged)

	// Close the source if the adapter holds a connection
	if closer, ok := source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close mail source", zap.Error(err))
		}
	}

	return nil
}
