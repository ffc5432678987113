package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/DRSN-tech/marketplace/internal/cfg"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type GRPCServer struct {
	server *grpc.Server
	health *HealthWatcher
	cfg    *cfg.GRPCConfig
	logger logger.Logger
}

func NewGRPCServer(cfg *cfg.GRPCConfig, logger logger.Logger) *GRPCServer {
	return &GRPCServer{
		server: grpc.NewServer(grpc.ChainUnaryInterceptor(unaryErrorInterceptor(logger))),
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterServices регистрирует стандартные сервисы health и reflection.
// Статус health обновляется по результатам проверок зависимостей.
func (s *GRPCServer) RegisterServices(checks ...DependencyCheck) {
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(s.server, healthSrv)
	reflection.Register(s.server)

	s.health = NewHealthWatcher(healthSrv, s.cfg.HealthCheckInterval, s.logger, checks...)
}

func (s *GRPCServer) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lis, err := net.Listen(s.cfg.NetworkMode, addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if s.health != nil {
		s.health.Start()
	}

	return s.server.Serve(lis)
}

func (s *GRPCServer) Stop(ctx context.Context) error {
	if s.health != nil {
		s.health.Stop()
	}

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof("gRPC server stopped gracefully")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		s.logger.Warnf("gRPC server forced to stop after timeout")
		return ctx.Err()
	}
}
