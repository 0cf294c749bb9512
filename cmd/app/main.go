package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/bootstrap"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/config"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/database"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/discord"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/scheduler"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/server"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/sse"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/worker"
)

// @title Progression Engine API
// @version 1.0
// @description Stat submissions, secondary XP economy, duels and global XP events.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Printf("Environment check: %v", err)
	}

	bootstrap.SetupLogger(cfg)
	for _, w := range warnings {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("Fatal startup error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	rules, err := bootstrap.LoadRules(ctx, cfg)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(ctx, cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(pool)
	svcs := bootstrap.InitializeServices(cfg, repos, rules, publisher)

	var bot *discord.Bot
	var announcer *discord.Announcer
	if cfg.DiscordEnabled() {
		bot, err = discord.New(discord.Config{Token: cfg.DiscordToken, ChannelID: cfg.DiscordAnnounceChannelID})
		if err != nil {
			return err
		}
		if err := bot.Start(ctx); err != nil {
			return err
		}
		announcer = bot.Announcer
	}

	stream := sse.NewHub()
	stream.Start()

	if err := bootstrap.RegisterEventHandlers(ctx, bus, svcs.EventLog, stream, announcer); err != nil {
		return err
	}

	workers := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workers.Start()
	sched := scheduler.New(workers)
	bootstrap.ScheduleJobs(ctx, cfg, sched, svcs)

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		MaxBodyBytes:   config.DefaultRequestBodyMaxSize,
	}, server.Deps{
		DB:          pool,
		Progression: svcs.Progression,
		Economy:     svcs.Economy,
		Duels:       svcs.Duels,
		XPEvents:    svcs.XPEvents,
		Stream:      stream,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Stream:             stream,
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         workers,
		Bot:                bot,
		ResilientPublisher: publisher,
	})

	return err
}
