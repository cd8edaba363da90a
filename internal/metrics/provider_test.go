package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("paylink")

	require.NoError(t, err)
	assert.NotNil(t, provider.meterProvider)
	assert.NotNil(t, provider.exporter)
	assert.NotNil(t, provider.registry)
	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
}

func TestProvider_IsolatedRegistries(t *testing.T) {
	first, err := NewProvider("paylink")
	require.NoError(t, err)
	second, err := NewProvider("paylink")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(first.MeterProvider(), "paylink")
	require.NoError(t, err)
	bm.RecordOperation(context.Background(), "auth", "session_login", StatusSuccess)

	assert.Contains(t, scrape(t, first), "paylink_operations_total")
	assert.NotContains(t, scrape(t, second), "paylink_operations_total")
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_Shutdown", func(t *testing.T) {
		provider, err := NewProvider("paylink")
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("Success_ZeroProvider", func(t *testing.T) {
		provider := &Provider{}

		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
