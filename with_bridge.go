package webviewbridge

import (
	"context"
	"fmt"
)

// WithBridge manages bridge lifecycle with automatic cleanup.
//
// This helper creates a bridge with the provided options, starts it, executes
// the callback function, and ensures proper cleanup via Close() when done.
//
// If the callback returns an error, it is returned to the caller.
// If Close() fails, a warning is logged but does not override the callback's error.
//
// Example usage:
//
//	err := webviewbridge.WithBridge(ctx, func(b webviewbridge.Bridge) error {
//	    _, err := b.SendRequest(ctx, webviewbridge.Request{Type: webviewbridge.PageLoaded}, 0)
//	    return err
//	},
//	    webviewbridge.WithLogger(log),
//	    webviewbridge.WithEnvironment(env),
//	)
func WithBridge(ctx context.Context, fn func(Bridge) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyOptions(opts)

	log := loggerOrNop(options.Logger)

	b := newBridgeImpl(options)

	defer func() {
		if closeErr := b.Close(); closeErr != nil {
			log.Warn("failed to close bridge", "error", closeErr)
		}
	}()

	if err := b.Start(ctx); err != nil {
		return fmt.Errorf("failed to start bridge: %w", err)
	}

	return fn(b)
}
