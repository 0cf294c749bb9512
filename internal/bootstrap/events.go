package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/config"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// InitializeEventSystem creates the in-memory bus and the resilient publisher
// in front of it. Services publish through the publisher; subscribers attach
// to the bus.
func InitializeEventSystem(ctx context.Context, cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}

	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}

	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	logger.FromContext(ctx).Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return bus, publisher, nil
}
