package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zaqqye/evaluasi_backend/internal/logger"
)

// LoggingMiddleware logs one line per request. Query strings are left out
// because the websocket route carries the token there.
func LoggingMiddleware() gin.HandlerFunc {
	log := logger.Component("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		if status >= 500 {
			evt = log.Error()
		} else if status >= 400 {
			evt = log.Warn()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
