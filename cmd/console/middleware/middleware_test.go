package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locker-console/cmd/console/trace"
)

type presence bool

func (p presence) Present() bool { return bool(p) }

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestTraceKeepsIncomingID(t *testing.T) {
	r := gin.New()
	r.Use(RequestTrace())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = trace.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(trace.HeaderRequestID, "abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc123", seen)
	assert.Equal(t, "abc123", w.Header().Get(trace.HeaderRequestID))
	assert.Equal(t, "0", w.Header().Get(trace.HeaderSpanID))
}

func TestRequestTraceGeneratesIDAndRestoresBody(t *testing.T) {
	r := gin.New()
	r.Use(RequestTrace())
	var body string
	r.POST("/console/pages/users/mutations", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		body = string(b)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/console/pages/users/mutations", strings.NewReader(`{"kind":"delete"}`)))

	assert.Equal(t, `{"kind":"delete"}`, body)
	assert.Len(t, w.Header().Get(trace.HeaderRequestID), 32)
}

func TestRequireSession(t *testing.T) {
	cases := []struct {
		name    string
		present bool
		status  int
	}{
		{"no session", false, http.StatusUnauthorized},
		{"session", true, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestLogging(), RequireSession(presence(tc.present)))
			r.GET("/console/pages", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/console/pages", nil))

			require.Equal(t, tc.status, w.Code)
			if !tc.present {
				assert.JSONEq(t, `{"error":"login_required","redirect":"/console/session"}`, w.Body.String())
			}
		})
	}
}
