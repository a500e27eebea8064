package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	api "unihub-backend/internal/api/http"
	"unihub-backend/internal/audit"
	"unihub-backend/internal/config"
	"unihub-backend/internal/logger"
	"unihub-backend/internal/repository/postgres"
	"unihub-backend/internal/security"
	"unihub-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting UniHub backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenExpiry(), cfg.RefreshTokenExpiry())
	authMiddleware := api.NewAuthMiddleware(tokenManager)

	recorder := audit.NewRecorder()
	locker := service.NewCommunityLocker()

	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	authzSvc := service.NewAuthzService(store.CommunityRepository, store.MembershipRepository, recorder)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	communitySvc := service.NewCommunityService(
		store.CommunityRepository,
		store.MembershipRepository,
		store.UserRepository,
		authzSvc,
		emailSvc,
		locker,
	)
	membershipSvc := service.NewMembershipService(
		store.CommunityRepository,
		store.MembershipRepository,
		store.JoinRequestRepository,
		store.UserRepository,
		authzSvc,
		emailSvc,
		locker,
	)
	pinSvc := service.NewPinService(store.PinRepository, authzSvc, locker)
	eventSvc := service.NewEventService(store.EventRepository, authzSvc)

	handlers := &api.Handlers{
		Auth:       api.NewAuthHandler(authSvc),
		Community:  api.NewCommunityHandler(communitySvc, authzSvc),
		Membership: api.NewMembershipHandler(membershipSvc),
		Pin:        api.NewPinHandler(pinSvc),
		Event:      api.NewEventHandler(eventSvc),
	}

	router := api.NewRouter(handlers, authMiddleware)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
