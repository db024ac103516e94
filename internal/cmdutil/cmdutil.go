// Package cmdutil provides utilities for building CLI commands.
package cmdutil

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// DefaultTimeout is the standard timeout for API operations.
const DefaultTimeout = 30 * time.Second

// UploadTimeout is used for file uploads, which can run long on slow links.
const UploadTimeout = 10 * time.Minute

// ContextWithTimeout creates a context with timeout and signal handling.
// Returns the context and a cleanup function to call via defer.
func ContextWithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-signalChan:
			fmt.Fprintf(os.Stderr, "\nInterrupted, cancelling...\n")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(signalChan)
		cancel()
	}
}
