package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
)

// RequestLoggingMiddleware writes one line per request after the handler
// chain finishes.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		url := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			url += "?" + q
		}

		logger.Infof("%s %s -> %d in %dms from %s",
			c.Request.Method, url, c.Writer.Status(),
			time.Since(start).Milliseconds(), c.ClientIP())

		for _, ginErr := range c.Errors {
			logger.Errorf("Handler error on %s %s: %v", c.Request.Method, url, ginErr.Err)
		}
	}
}
