package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine matches a metric line by name, a partial label pattern and
// value. The exporter injects otel scope labels, hence the regex.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, StatusSuccess, Outcome(nil))
	assert.Equal(t, StatusError, Outcome(errors.New("link expired")))
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("paylink_test")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "paylink_test")

	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("paylink")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "paylink")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "linksec", "pay_link_verify", StatusSuccess)
	bm.RecordOperation(ctx, "linksec", "pay_link_verify", StatusSuccess)
	bm.RecordOperation(ctx, "linksec", "pay_link_verify", StatusError)
	bm.RecordOperation(ctx, "auth", "session_login", StatusError)
	bm.RecordOperation(ctx, "terminal", "webhook_handle", StatusSuccess)

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `paylink_operations_total`,
		`domain="linksec".*operation="pay_link_verify".*status="success"`, `2`)
	assertBizMetricLine(t, output, `paylink_operations_total`,
		`domain="linksec".*operation="pay_link_verify".*status="error"`, `1`)
	assertBizMetricLine(t, output, `paylink_operations_total`,
		`domain="auth".*operation="session_login".*status="error"`, `1`)
	assertBizMetricLine(t, output, `paylink_operations_total`,
		`domain="terminal".*operation="webhook_handle".*status="success"`, `1`)
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("paylink")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "paylink")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordDuration(ctx, "terminal", "payment_start", 120*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "terminal", "payment_start", 80*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "terminal", "receipt_show", 2*time.Second, StatusError)

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `paylink_operation_duration_seconds_count`,
		`domain="terminal".*operation="payment_start".*status="success"`, `2`)
	assertBizMetricLine(t, output, `paylink_operation_duration_seconds_sum`,
		`domain="terminal".*operation="payment_start".*status="success"`, ``)
	assertBizMetricLine(t, output, `paylink_operation_duration_seconds_count`,
		`domain="terminal".*operation="receipt_show".*status="error"`, `1`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	assert.IsType(t, &NoOpBusinessMetrics{}, bm)

	assert.NotPanics(t, func() {
		bm.RecordOperation(context.Background(), "auth", "session_authenticate", StatusError)
		bm.RecordDuration(context.Background(), "auth", "session_authenticate", time.Millisecond, StatusError)
	})
}
