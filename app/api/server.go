package api

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, scraperAPIKey, adminPassword string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Scraper-Key, X-Admin-Password")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, scraperAPIKey, adminPassword)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, scraperAPIKey, adminPassword string) {
	// Public endpoints
	r.GET("/events", handler.ListEvents)
	r.GET("/events/:id", handler.GetEvent)
	r.GET("/activities", handler.ListActivities)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	// Scrape trigger (conditionally enabled with authentication)
	if scraperAPIKey != "" || adminPassword != "" {
		scrapeGroup := r.Group("/api/scrape")
		scrapeGroup.Use(scrapeAuthMiddleware(scraperAPIKey, adminPassword))
		{
			scrapeGroup.POST("", handler.TriggerScrape)
			scrapeGroup.GET("", handler.ListSources)
		}
		slog.Info("Scrape trigger endpoints enabled")
	} else {
		slog.Warn("Scrape trigger endpoints disabled (no SCRAPER_API_KEY or ADMIN_PASSWORD set)")
	}

	// Admin endpoints (conditionally enabled with authentication)
	if adminPassword != "" {
		admin := r.Group("/api/admin")
		admin.Use(adminAuthMiddleware(adminPassword))
		{
			admin.GET("/events", handler.AdminListEvents)
			admin.POST("/events", handler.AdminCreateEvent)
			admin.GET("/events/:id", handler.AdminGetEvent)
			admin.PATCH("/events/:id", handler.AdminPatchEvent)
			admin.DELETE("/events/:id", handler.AdminDeleteEvent)

			admin.GET("/activities", handler.AdminListActivities)
			admin.POST("/activities", handler.AdminCreateActivity)
			admin.PATCH("/activities/:id", handler.AdminUpdateActivity)
			admin.DELETE("/activities/:id", handler.AdminDeleteActivity)

			admin.GET("/scrapers", handler.AdminGetScraperLogs)
			admin.GET("/stats", handler.AdminGetStats)
		}
		slog.Info("Admin endpoints enabled")
	} else {
		slog.Warn("Admin endpoints disabled (ADMIN_PASSWORD not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"events":     "/events",
			"activities": "/activities",
			"health":     "/health",
			"stats":      "/stats",
		}

		if scraperAPIKey != "" || adminPassword != "" {
			endpoints["scrape"] = "/api/scrape (POST, requires X-Scraper-Key or X-Admin-Password header)"
		}
		if adminPassword != "" {
			endpoints["admin"] = "/api/admin (requires X-Admin-Password header)"
		}

		c.JSON(200, gin.H{
			"service":     "Nyack Events",
			"description": "Local events aggregator for Nyack, NY and surrounding river villages",
			"endpoints":   endpoints,
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// scrapeAuthMiddleware accepts either the scraper API key or the
// admin password. A header only counts when its credential is
// actually configured, so an empty header can never match an empty
// setting.
func scrapeAuthMiddleware(scraperAPIKey, adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if credentialMatches(c.GetHeader("X-Scraper-Key"), scraperAPIKey) ||
			credentialMatches(c.GetHeader("X-Admin-Password"), adminPassword) {
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Authentication required",
			"message": "Provide a valid X-Scraper-Key or X-Admin-Password header",
		})
		c.Abort()
	}
}

// adminAuthMiddleware guards the admin endpoints with the admin
// password alone.
func adminAuthMiddleware(adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if credentialMatches(c.GetHeader("X-Admin-Password"), adminPassword) {
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Authentication required",
			"message": "Provide a valid X-Admin-Password header",
		})
		c.Abort()
	}
}

func credentialMatches(provided, configured string) bool {
	if provided == "" || configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) == 1
}
