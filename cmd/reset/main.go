package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/config"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/database"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// reset drops every table and re-applies the embedded migrations.
// Development databases only.
func main() {
	force := flag.Bool("force", false, "required outside the dev environment")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, logger.LogFormatText, cfg.ServiceName, cfg.Version, cfg.Environment, false))

	if cfg.Environment != "dev" && !*force {
		log.Fatalf("Refusing to reset database %q in environment %q without -force", cfg.DBName, cfg.Environment)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 2, time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	if err := database.Reset(ctx, pool); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}
	log.Printf("Database %s reset and migrated", cfg.DBName)
}
