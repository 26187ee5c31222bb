package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does/not/exist", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	ResumeSubmitted()
	MessageSubmitted(true)
	LoginAttempt(LoginFailed)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `recruit_http_requests_total{method="GET",path="/api/health",status="200"} 1`)
	assert.Contains(t, body, `recruit_http_requests_total{method="GET",path="unmatched",status="404"} 1`)
	assert.Contains(t, body, "recruit_resumes_submitted_total 1")
	assert.Contains(t, body, `recruit_messages_submitted_total{anonymous="true"} 1`)
	assert.Contains(t, body, `recruit_login_attempts_total{result="failed"} 1`)
}
