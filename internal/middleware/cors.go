package middleware

import (
	"net/http"

	"compass/internal/config"

	"github.com/gin-gonic/gin"
)

// CORS applies the headers from startup config and answers preflight
// requests with an empty 200.
func CORS(cfg config.Config) gin.HandlerFunc {
	origin := cfg.AllowOrigin
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
