package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"locker-console/cmd/console/trace"
	"locker-console/internal/logger"
)

// RequestLogging 은 요청 처리 시간을 access log 로 남긴다.
// 5xx 는 error, 4xx 는 warn, 나머지는 info 레벨이다.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		fields := logger.Fields{
			"method":      method,
			"path":        path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  trace.RequestIDFromContext(c.Request.Context()),
		}
		if page := c.Param("page"); page != "" {
			fields["page"] = page
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.ErrorWithFields("console_request", fields)
		case status >= http.StatusBadRequest:
			logger.WarnWithFields("console_request", fields)
		default:
			logger.InfoWithFields("console_request", fields)
		}
	}
}
