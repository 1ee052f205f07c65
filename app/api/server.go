package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// NewServer builds the gin engine with all routes configured. The cron
// endpoints are guarded by the shared secret; with no secret configured
// they are open (development mode).
func NewServer(handler *Handler, cronSecret string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", handler.GetRoot)
	r.GET("/health", handler.GetHealth)
	r.GET("/status", handler.GetStatus)
	r.GET("/preview-email", handler.GetPreviewEmail)

	cron := r.Group("/cron")
	cron.Use(authMiddleware(cronSecret))
	{
		cron.GET("/morning-digest", handler.RunMorningDigest)
		cron.GET("/evening-catchup", handler.RunEveningCatchup)
	}

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return r
}

// authMiddleware checks the shared cron secret, accepting either an
// Authorization: Bearer header or an X-API-Key header.
func authMiddleware(cronSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cronSecret == "" {
			c.Next()
			return
		}

		providedKey := c.GetHeader("X-API-Key")
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey != cronSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
