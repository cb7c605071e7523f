package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk-api/internal/config"
	"github.com/newsdesk-api/internal/repository"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	adHandler := NewAdHandler(services, log)
	widgetHandler := NewWidgetHandler(services, log)
	feedHandler := NewFeedHandler(services, log)
	newsletterHandler := NewNewsletterHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// Public surface
	router.GET("/categories", articleHandler.ListCategories)
	router.GET("/search", articleHandler.Search)
	router.GET("/articles/:slug", articleHandler.GetArticle)
	router.GET("/comments/:slug", commentHandler.ListArticleComments)
	router.POST("/comments", commentHandler.SubmitComment)
	router.GET("/advertisements", adHandler.ListActive)
	router.POST("/advertisements/:id/click", adHandler.Click)
	router.GET("/widgets/weather", widgetHandler.Weather)
	router.GET("/widgets/stocks", widgetHandler.Stocks)
	router.POST("/newsletter", newsletterHandler.Subscribe)
	router.GET("/feed.xml", feedHandler.RSS)
	router.GET("/sitemap.xml", feedHandler.Sitemap)

	// Authenticated surface (any role)
	authed := router.Group("/", authMiddleware(services.Auth, log))
	{
		authed.POST("/articles", articleHandler.CreateArticle)
		authed.POST("/articles/advance", articleHandler.AdvanceArticle)

		// Admin surface; role checks live in the services so the
		// handlers stay thin.
		authed.POST("/articles/moderation", articleHandler.ModerateArticle)
		authed.GET("/moderation/comments", commentHandler.ListModerationQueue)
		authed.POST("/comments/moderation", commentHandler.ModerateComment)
		authed.GET("/metrics", metricsHandler(repos))
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "newsdesk-api",
	})
}

// metricsHandler returns row counts for the main tables
func metricsHandler(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		articlesCount, _ := repos.Article.Count(ctx)
		commentsCount, _ := repos.Comment.Count(ctx)
		usersCount, _ := repos.User.Count(ctx)
		subscribersCount, _ := repos.Subscriber.Count(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"articles":    articlesCount,
				"comments":    commentsCount,
				"users":       usersCount,
				"subscribers": subscribersCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
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
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-Token")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
