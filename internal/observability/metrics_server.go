package observability

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/logging"
)

// MetricsServer HTTP-эндпоинт Prometheus /metrics
type MetricsServer struct {
	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

// StartMetricsServer слушает addr (например ":2112") и отдаёт метрики gatherer.
// Метод неблокирующий: сервер работает в отдельной горутине.
func StartMetricsServer(addr string, gatherer prometheus.Gatherer) (*MetricsServer, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIO, "listen %s", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	ms := &MetricsServer{
		server:   &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		listener: lis,
		done:     make(chan struct{}),
	}

	go func() {
		defer close(ms.done)
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", lis.Addr())
		if err := ms.server.Serve(lis); err != nil && err != http.ErrServerClosed {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return ms, nil
}

// Addr фактический адрес сервера
func (m *MetricsServer) Addr() string {
	return m.listener.Addr().String()
}

// Stop останавливает сервер и ждёт завершения горутины
func (m *MetricsServer) Stop(ctx context.Context) error {
	err := m.server.Shutdown(ctx)
	<-m.done
	return err
}
