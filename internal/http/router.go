package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/library"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
)

// RouterConfig holds all dependencies of the HTTP layer.
type RouterConfig struct {
	Database    *database.Database
	AuthService *auth.Service
	TokenIssuer *auth.TokenIssuer
	Books       *books.Repository
	Reviews     *reviews.Repository
	Library     *library.Repository
	Version     string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService, cfg.TokenIssuer, cfg.Library, cfg.Reviews)
	booksController := NewBooksController(cfg.Books, cfg.Reviews)
	reviewsController := NewReviewsController(cfg.Reviews)
	libraryController := NewLibraryController(cfg.Library)
	usersController := NewUsersController(cfg.AuthService)

	// Public endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)

	// Endpoints requiring a valid bearer token
	authed := router.Group("/", auth.RequireAuth(cfg.TokenIssuer))
	authed.GET("/profile", authController.Profile)

	authed.GET("/books", booksController.Search)
	authed.GET("/books/:id", booksController.Get)
	authed.POST("/books", booksController.Create)
	authed.POST("/books/:id/review", reviewsController.Upsert)

	authed.GET("/library", libraryController.List)
	authed.POST("/library", libraryController.Add)
	authed.PATCH("/library/:id", libraryController.ChangeStatus)
	authed.DELETE("/library/:id", libraryController.Remove)

	// Admin-gated endpoints
	admin := authed.Group("/", auth.RequireAdmin())
	admin.PATCH("/books/:id", booksController.Update)
	admin.DELETE("/books/:id", booksController.Delete)
	admin.POST("/promote-to-admin", usersController.Promote)

	return router
}
