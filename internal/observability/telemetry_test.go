package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/mmo-dungeon/internal/config"
)

func TestInitTelemetryDisabled(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTelemetryEnabled(t *testing.T) {
	cfg := config.TelemetryConfig{Enabled: true, ServiceName: "dungeon-test", Endpoint: "127.0.0.1:4318"}

	shutdown, err := InitTelemetry(context.Background(), cfg)
	require.NoError(t, err, "Экспортер создаётся без подключения к коллектору")
	// Трасс нет, поэтому завершение не обращается к коллектору
	assert.NoError(t, shutdown(context.Background()))
}
