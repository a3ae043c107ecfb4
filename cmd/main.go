package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/readsphere/readsphere-backend/internal/cache"
	"github.com/readsphere/readsphere-backend/internal/db"
	"github.com/readsphere/readsphere-backend/internal/handlers"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/middleware"
	"github.com/readsphere/readsphere-backend/internal/observability"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/server"
	"github.com/readsphere/readsphere-backend/internal/services"
	"github.com/readsphere/readsphere-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "readsphere-backend",
		Environment: logMode,
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	bookRepo := repos.NewBookRepo(thePG, log)
	catalogBookRepo := repos.NewCatalogBookRepo(thePG, log)
	userBookRepo := repos.NewUserBookRepo(thePG, log)
	noteRepo := repos.NewNoteRepo(thePG, log)
	tagRepo := repos.NewTagRepo(thePG, log)
	quoteRepo := repos.NewQuoteRepo(thePG, log)
	readingLogRepo := repos.NewReadingLogRepo(thePG, log)
	feedbackRepo := repos.NewFeedbackRepo(thePG, log)

	// Seed
	if err := db.NewSeeder(log, userRepo, catalogBookRepo).Run(context.Background()); err != nil {
		log.Warn("Seeding failed", "error", err)
	}

	// Redis cache
	catalogCache, err := cache.New(log)
	if err != nil {
		log.Warn("Could not init CatalogCache, continuing without it", "error", err)
		catalogCache = nil
	}
	defer catalogCache.Close()

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey)
	userService := services.NewUserService(thePG, log, userRepo)
	bookService := services.NewBookService(thePG, log, bookRepo, userRepo, readingLogRepo)
	catalogService := services.NewCatalogService(thePG, log, catalogBookRepo, catalogCache)
	userBookService := services.NewUserBookService(thePG, log, userBookRepo, catalogBookRepo, userRepo)
	noteService := services.NewNoteService(thePG, log, noteRepo, tagRepo, bookRepo, userBookRepo)
	quoteService := services.NewQuoteService(thePG, log, quoteRepo, bookRepo, userBookRepo)
	readingService := services.NewReadingService(thePG, log, readingLogRepo, bookRepo)
	recommendationService := services.NewRecommendationService(
		thePG,
		log,
		bookRepo,
		userBookRepo,
		catalogBookRepo,
		feedbackRepo,
		catalogService,
	)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthcheckHandler := handlers.NewHealthcheckHandler()
	userHandler := handlers.NewUserHandler(log, userService)
	bookHandler := handlers.NewBookHandler(log, bookService)
	catalogHandler := handlers.NewCatalogHandler(log, catalogService)
	userBookHandler := handlers.NewUserBookHandler(log, userBookService)
	noteHandler := handlers.NewNoteHandler(log, noteService)
	quoteHandler := handlers.NewQuoteHandler(log, quoteService)
	readingHandler := handlers.NewReadingHandler(log, readingService)
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		TracingEnabled:        observability.Enabled(),
		AuthMiddleware:        authMiddleware,
		HealthcheckHandler:    healthcheckHandler,
		UserHandler:           userHandler,
		BookHandler:           bookHandler,
		CatalogHandler:        catalogHandler,
		UserBookHandler:       userBookHandler,
		NoteHandler:           noteHandler,
		QuoteHandler:          quoteHandler,
		ReadingHandler:        readingHandler,
		RecommendationHandler: recommendationHandler,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
