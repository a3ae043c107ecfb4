package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/readsphere/readsphere-backend/internal/handlers"
	"github.com/readsphere/readsphere-backend/internal/middleware"
)

type RouterConfig struct {
	TracingEnabled        bool
	AuthMiddleware        *middleware.AuthMiddleware
	HealthcheckHandler    *handlers.HealthcheckHandler
	UserHandler           *handlers.UserHandler
	BookHandler           *handlers.BookHandler
	CatalogHandler        *handlers.CatalogHandler
	UserBookHandler       *handlers.UserBookHandler
	NoteHandler           *handlers.NoteHandler
	QuoteHandler          *handlers.QuoteHandler
	ReadingHandler        *handlers.ReadingHandler
	RecommendationHandler *handlers.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID())
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("readsphere-backend"))
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Users
	api.GET("/users/:id", cfg.UserHandler.Get)
	api.PUT("/users/:id/settings", cfg.UserHandler.UpdateSettings)
	api.PUT("/users/:id/profile", cfg.UserHandler.UpdateProfile)

	// Books (legacy personal library)
	api.GET("/books/user/:userId", cfg.BookHandler.ListByUser)
	api.GET("/books/user/:userId/search", cfg.BookHandler.Search)
	api.GET("/books/user/:userId/status", cfg.BookHandler.FilterByStatus)
	api.POST("/books/user/:userId", cfg.BookHandler.Add)
	api.GET("/books/:id", cfg.BookHandler.Get)
	api.PUT("/books/:id", cfg.BookHandler.Update)
	api.DELETE("/books/:id", cfg.BookHandler.Delete)
	api.PATCH("/books/:id/progress", cfg.BookHandler.UpdateProgress)

	// Catalog
	api.GET("/catalog", cfg.CatalogHandler.List)
	api.GET("/catalog/genres", cfg.CatalogHandler.Genres)
	api.GET("/catalog/search", cfg.CatalogHandler.Search)
	api.GET("/catalog/top-rated", cfg.CatalogHandler.TopRated)
	api.GET("/catalog/:id", cfg.CatalogHandler.Get)

	// Shelf
	api.GET("/user-books/user/:userId", cfg.UserBookHandler.ListByUser)
	api.POST("/user-books/user/:userId/add/:catalogBookId", cfg.UserBookHandler.Add)
	api.GET("/user-books/:id", cfg.UserBookHandler.Get)
	api.PUT("/user-books/:id", cfg.UserBookHandler.Update)
	api.DELETE("/user-books/:id", cfg.UserBookHandler.Delete)

	// Notes
	api.GET("/notes/book/:bookId", cfg.NoteHandler.ListByBook)
	api.POST("/notes/book/:bookId", cfg.NoteHandler.Add)
	api.GET("/notes/search", cfg.NoteHandler.Search)
	api.PUT("/notes/:id", cfg.NoteHandler.Update)
	api.DELETE("/notes/:id", cfg.NoteHandler.Delete)
	api.POST("/notes/:id/tags", cfg.NoteHandler.SetTags)

	// Quotes
	api.GET("/quotes/book/:bookId", cfg.QuoteHandler.ListByBook)
	api.POST("/quotes/book/:bookId", cfg.QuoteHandler.Add)
	api.GET("/quotes/search", cfg.QuoteHandler.Search)
	api.PUT("/quotes/:id", cfg.QuoteHandler.Update)
	api.DELETE("/quotes/:id", cfg.QuoteHandler.Delete)

	// Reading logs
	api.POST("/reading/logs/user/:userId", cfg.ReadingHandler.AddLog)
	api.GET("/reading/timeline", cfg.ReadingHandler.Timeline)

	// Recommendations
	api.GET("/recommendations/:userId", cfg.RecommendationHandler.GetForUser)
	api.GET("/recommendations/:userId/catalog", cfg.RecommendationHandler.GetFromCatalog)
	api.POST("/recommendations/:userId/:bookId/feedback", cfg.RecommendationHandler.SubmitFeedback)

	return router
}
