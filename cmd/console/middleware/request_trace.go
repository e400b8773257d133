package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"locker-console/cmd/console/trace"
	"locker-console/internal/logger"
)

const maxBodyLog = 1024

// RequestTrace는 모든 inbound 요청에 Request ID를 보장하고 컨텍스트/헤더에 심는다.
// 백엔드 호출은 같은 Request ID 아래에서 span 1,2,3,... 을 받는다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		ctx, info := trace.Start(req.Context(), req.Header.Get(trace.HeaderRequestID))
		c.Request = req.WithContext(ctx)
		req = c.Request

		requestID := info.RequestID
		span := info.Span()
		req.Header.Set(trace.HeaderRequestID, requestID)
		req.Header.Set(trace.HeaderSpanID, span)
		c.Writer.Header().Set(trace.HeaderRequestID, requestID)
		c.Writer.Header().Set(trace.HeaderSpanID, span)

		queryParams := map[string][]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				queryParams[key] = values
			}
		}
		bodySnippet := readBodySnippet(c)

		c.Next()

		fields := logger.Fields{
			"method":       req.Method,
			"path":         req.URL.Path,
			"query_params": queryParams,
			"status":       c.Writer.Status(),
			"duration":     time.Since(start).String(),
			"request_id":   requestID,
			"span_id":      info.Span(),
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		logger.DebugWithFields("completed request", fields)
	}
}

// readBodySnippet은 바디 앞부분을 읽고 핸들러가 다시 읽을 수 있게 복원한다.
// 로그인 요청은 비밀번호가 있으므로 기록하지 않는다.
func readBodySnippet(c *gin.Context) string {
	req := c.Request
	if req.Body == nil || req.ContentLength == 0 {
		return ""
	}
	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return ""
	}
	if strings.HasSuffix(req.URL.Path, "/session") {
		return ""
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) > maxBodyLog {
		body = body[:maxBodyLog]
	}
	return string(body)
}
