package main

import (
	"time"

	"go.uber.org/zap"

	"swasthyam/config"
	"swasthyam/internal/db"
	"swasthyam/internal/handler"
	"swasthyam/internal/httpserver"
	"swasthyam/internal/mq"
	redisclient "swasthyam/internal/redis"
	"swasthyam/internal/repository"
	"swasthyam/internal/service/assistant"
	"swasthyam/internal/service/auth"
	"swasthyam/internal/service/dashboard"
	"swasthyam/internal/service/forum"
	"swasthyam/internal/service/tracker"
	"swasthyam/internal/util"
	"swasthyam/pkg/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ Publisher. An empty URL disables event publishing.
	var publisher *mq.Publisher
	if cfg.MQ.URL != "" {
		publisher, err = mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Fatal("MQ initialization failed", zap.Error(err))
		}
		defer publisher.Close()
	} else {
		log.Warn("MQ URL empty, event publishing disabled")
	}

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	profileRepo := repository.NewProfileRepository(dbConn)
	childRepo := repository.NewChildRepository(dbConn)
	catalogRepo := repository.NewCatalogRepository(dbConn)
	recordRepo := repository.NewRecordRepository(dbConn)
	growthRepo := repository.NewGrowthRepository(dbConn)
	medicationRepo := repository.NewMedicationRepository(dbConn)
	forumRepo := repository.NewForumRepository(dbConn)
	chatRepo := repository.NewChatRepository(dbConn)
	calcLogRepo := repository.NewCalcLogRepository(dbConn)

	// Init Services
	authService := auth.NewService(userRepo, cfg.JWT.Secret, cfg.Auth.BcryptCost, log)
	onceLock := util.NewOnceLock(rdb, 30*time.Second)

	var events tracker.EventPublisher
	if publisher != nil {
		events = publisher
	}
	trackerService := tracker.NewService(childRepo, catalogRepo, recordRepo, events, onceLock, log)

	assistantClient := assistant.NewClient(cfg.Assistant)
	assistantService := assistant.NewService(assistantClient, chatRepo, profileRepo, log)
	forumService := forum.NewService(forumRepo, log)
	dashboardService := dashboard.NewService(profileRepo, chatRepo, forumRepo, childRepo, log)

	// Init Handlers
	handlers := httpserver.Handlers{
		Auth:       handler.NewAuthHandler(authService, log),
		Profile:    handler.NewProfileHandler(profileRepo, log),
		Child:      handler.NewChildHandler(childRepo, trackerService, log),
		Tracker:    handler.NewTrackerHandler(trackerService, log),
		Growth:     handler.NewGrowthHandler(childRepo, growthRepo, log),
		Medication: handler.NewMedicationHandler(childRepo, medicationRepo, log),
		Forum:      handler.NewForumHandler(forumService, log),
		Calculator: handler.NewCalculatorHandler(calcLogRepo, assistantService, log),
		Chat:       handler.NewChatHandler(assistantService, userRepo, log),
		Dashboard:  handler.NewDashboardHandler(dashboardService, log),
		Catalog:    handler.NewCatalogHandler(catalogRepo, log),
	}

	// Router
	router := httpserver.NewRouter(handlers, cfg.JWT.Secret, dbConn, log)

	// Start API server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
