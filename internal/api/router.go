package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/content-engagement-api/internal/config"
	"github.com/content-engagement-api/internal/repository"
	"github.com/content-engagement-api/internal/service"
	"github.com/content-engagement-api/internal/session"
	"github.com/content-engagement-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, sessions session.Store, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	contentHandler := NewContentHandler(services, cfg, log)
	commentHandler := NewCommentHandler(services, sessions, log)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/v1")
	v1.Use(visitorMiddleware())
	{
		articles := v1.Group("/articles")
		{
			articles.GET("", contentHandler.ListArticles)
			articles.GET("/popular", contentHandler.ListPopular)
			articles.GET("/:slug", contentHandler.GetArticle)
			articles.POST("", contentHandler.CreateArticle)
			articles.PUT("/:id", contentHandler.UpdateArticle)
			articles.POST("/:id/like", contentHandler.LikeArticle)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:id", contentHandler.GetProfile)
			profiles.POST("", contentHandler.CreateProfile)
		}

		comments := v1.Group("/comments")
		{
			comments.POST("", commentHandler.CreateComment)
			comments.GET("", commentHandler.ListComments)
			comments.GET("/author", commentHandler.GetCommentAuthor)
			comments.PATCH("/:id/visibility", commentHandler.ModerateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "content-engagement-api",
	})
}

// visitorCookie carries the anonymous per-visitor session id.
const visitorCookie = "visitor_id"

// visitorMiddleware assigns a stable anonymous id to every visitor. The id
// is an explicit input to the engagement operations, never ambient state.
func visitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(visitorCookie, id, int((365 * 24 * time.Hour).Seconds()), "/", "", false, true)
		}
		c.Set("visitor_id", id)
		c.Next()
	}
}

// visitorID returns the visitor session id assigned by visitorMiddleware
func visitorID(c *gin.Context) string {
	return c.GetString("visitor_id")
}

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var verrs validation.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verrs})
	case errors.Is(err, service.ErrThreadMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrThreadMismatch.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
