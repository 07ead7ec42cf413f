// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

func main() {
	envFiles := pflag.StringSlice("env-file", nil, "dotenv files to load (default .env)")
	migrate := pflag.Bool("migrate", true, "run database migrations on startup")
	seed := pflag.Bool("seed", false, "seed demo orders (always on in development)")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load(*envFiles...)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Health check
	if err := db.Health(ctx); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Run database migrations
	if *migrate {
		migration := postgres.NewMigration(db.GetDB(), log)

		if err := migration.RunAutoMigrations(); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}

		if err := migration.CreateIndexes(); err != nil {
			log.Warnf("Index creation failed: %v", err)
		}

		if *seed || cfg.IsDevelopment() {
			if err := migration.SeedInitialData(time.Now().UTC().Year()); err != nil {
				log.Warnf("Data seeding failed: %v", err)
			}
			if _, err := migration.GetTableInfo(); err != nil {
				log.Warnf("Table info failed: %v", err)
			}
		}
	}

	log.Info("✅ All systems operational!")

	server := http.NewServer(cfg, log, db.GetDB(), redisClient.GetClient())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	g.Go(func() error {
		return server.Services().Search.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("👋 Shutting down gracefully...")

		// Give server 30 seconds to shutdown gracefully
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("Server stopped with error: %v", err)
		os.Exit(1)
	}

	log.Info("✅ Server shutdown completed")
}
