package observability

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dungeon",
		Name:      "test_total",
		Help:      "test counter",
	})
	reg.MustRegister(counter)
	counter.Add(3)

	ms, err := StartMetricsServer("127.0.0.1:0", reg)
	require.NoError(t, err)

	resp, err := http.Get("http://" + ms.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "dungeon_test_total 3")

	assert.NoError(t, ms.Stop(context.Background()))
}
