package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"swasthyam/config"
	"swasthyam/internal/db"
	"swasthyam/internal/repository"
	"swasthyam/internal/seed"
	"swasthyam/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalogRepo := repository.NewCatalogRepository(dbConn)
	forumRepo := repository.NewForumRepository(dbConn)

	if err := seed.Run(ctx, catalogRepo, forumRepo, log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("Seeding complete")
}
