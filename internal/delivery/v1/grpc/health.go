package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/marketplace/pkg/logger"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const checkTimeout = 3 * time.Second

// DependencyCheck — проверка одной внешней зависимости (БД, Redis).
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthWatcher периодически проверяет зависимости и выставляет общий статус сервиса.
type HealthWatcher struct {
	server   *health.Server
	checks   []DependencyCheck
	interval time.Duration
	logger   logger.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewHealthWatcher(server *health.Server, interval time.Duration, logger logger.Logger, checks ...DependencyCheck) *HealthWatcher {
	return &HealthWatcher{
		server:   server,
		checks:   checks,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (h *HealthWatcher) Start() {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		h.evaluate()

		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-h.stopCh:
				return
			case <-ticker.C:
				h.evaluate()
			}
		}
	}()
}

// Stop останавливает проверки и переводит сервис в NOT_SERVING.
func (h *HealthWatcher) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		h.wg.Wait()
		h.server.Shutdown()
	})
}

// evaluate выполняет все проверки. Достаточно одной неудачной, чтобы сервис стал NOT_SERVING.
func (h *HealthWatcher) evaluate() healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING

	for _, c := range h.checks {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		err := c.Check(ctx)
		cancel()

		if err != nil {
			h.logger.Warnf("health check %s failed: %v", c.Name, err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.server.SetServingStatus("", status)
	return status
}
