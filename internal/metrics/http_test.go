package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("paylink")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "paylink"))
	router.GET("/pay", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "https://gateway.example/checkout")
	})
	router.GET("/success", func(c *gin.Context) {
		c.String(http.StatusGone, "expired")
	})
	router.POST("/webhook", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	requests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/pay?amount=1000&time=1&sig=a&c=b", http.StatusFound},
		{http.MethodGet, "/pay?amount=2000&time=2&sig=c&c=d", http.StatusFound},
		{http.MethodGet, "/success?payment_id=p1", http.StatusGone},
		{http.MethodPost, "/webhook", http.StatusOK},
		{http.MethodGet, "/wp-admin/setup.php", http.StatusNotFound},
	}
	for _, r := range requests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(r.method, r.target, nil))
		require.Equal(t, r.status, w.Code, r.target)
	}

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `paylink_http_requests_total`,
		`method="GET".*path="/pay".*status_code="302"`, `2`)
	assertBizMetricLine(t, output, `paylink_http_requests_total`,
		`method="GET".*path="/success".*status_code="410"`, `1`)
	assertBizMetricLine(t, output, `paylink_http_requests_total`,
		`method="POST".*path="/webhook".*status_code="200"`, `1`)
	assertBizMetricLine(t, output, `paylink_http_requests_total`,
		`method="GET".*path="unmatched".*status_code="404"`, `1`)
	assertBizMetricLine(t, output, `paylink_http_request_duration_seconds_count`,
		`method="GET".*path="/pay".*status_code="302"`, `2`)
	assert.NotContains(t, output, "amount=")
	assert.NotContains(t, output, "wp-admin")
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/success", expected: "/success"},
		{name: "Root", input: "/", expected: "/"},
		{name: "Unmatched", input: "", expected: "unmatched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}
