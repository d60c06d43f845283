package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"lawfirm-cms/metrics"
)

// Logger logs one line per request and feeds the HTTP metrics.
func Logger(log zerolog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)
		m.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(status), latency)

		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str("request_id", RequestIDFromContext(c)).
			Msg("request")
	}
}
