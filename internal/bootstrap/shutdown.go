package bootstrap

import (
	"context"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/discord"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// Stopper is an HTTP server that drains in-flight requests
type Stopper interface {
	Stop(ctx context.Context) error
}

// Halter stops a background component and waits for it
type Halter interface {
	Stop()
}

// ShutdownComponents holds everything that needs an orderly stop.
// Nil fields are skipped.
type ShutdownComponents struct {
	Stream             Halter
	Server             Stopper
	Scheduler          Halter
	WorkerPool         Halter
	Bot                *discord.Bot
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order. Open event streams
// are closed first so the server does not wait on them. The server stops
// taking requests and the scheduler stops enqueuing before the pool waits
// out in-flight jobs. The publisher flushes its retry queue last, while the
// Discord session is still open. Failures are logged and the sequence continues.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	if c.Stream != nil {
		c.Stream.Stop()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			log.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.ResilientPublisher != nil {
		log.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			log.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Bot != nil {
		c.Bot.Stop(ctx)
	}

	log.Info(LogMsgStopped)
}
