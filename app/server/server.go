package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/wheelhouse/partshop/app/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 30 * time.Second

// Server runs the HTTP API next to a gRPC server that exposes the standard
// health protocol.
type Server struct {
	logger   *log.Logger
	http     *http.Server
	grpc     *grpc.Server
	health   *health.Server
	grpcAddr string
}

func New(cfg *config.Config, handler http.Handler, logger *log.Logger) *Server {
	grpcServer, healthServer := newGRPCServer(logger)
	return &Server{
		logger: logger,
		http: &http.Server{
			Addr:         ":" + cfg.HttpServer.Port,
			Handler:      handler,
			ReadTimeout:  cfg.HttpServer.TimeoutRead,
			WriteTimeout: cfg.HttpServer.TimeoutWrite,
			IdleTimeout:  cfg.HttpServer.TimeoutIdle,
		},
		grpc:     grpcServer,
		health:   healthServer,
		grpcAddr: ":" + cfg.GrpcServer.Port,
	}
}

func newGRPCServer(logger *log.Logger) (*grpc.Server, *health.Server) {
	s := grpc.NewServer()

	healthServer := health.NewServer()
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	logger.Println("INFO: gRPC health check service registered.")

	reflection.Register(s)
	logger.Println("INFO: gRPC reflection service registered.")
	return s, healthServer
}

// Run serves until ctx is cancelled or one of the servers fails, then shuts
// both down.
func (s *Server) Run(ctx context.Context) error {
	httpListener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen http on %s: %w", s.http.Addr, err)
	}
	grpcListener, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		httpListener.Close()
		return fmt.Errorf("listen grpc on %s: %w", s.grpcAddr, err)
	}

	errCh := make(chan error, 2)
	go func() {
		s.logger.Printf("INFO: HTTP server listening on %s", httpListener.Addr())
		if err := s.http.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		s.logger.Printf("INFO: gRPC server listening on %s", grpcListener.Addr())
		if err := s.grpc.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Println("INFO: shutdown requested")
	case runErr = <-errCh:
		s.logger.Printf("ERROR: %v", runErr)
	}

	s.shutdown()
	return runErr
}

func (s *Server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.health.Shutdown()

	stoppedGrpc := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Printf("WARN: HTTP server graceful shutdown failed: %v", err)
	} else {
		s.logger.Println("INFO: HTTP server gracefully shut down.")
	}

	select {
	case <-stoppedGrpc:
		s.logger.Println("INFO: gRPC server gracefully shut down.")
	case <-ctx.Done():
		s.logger.Printf("WARN: gRPC server graceful shutdown timed out: %v", ctx.Err())
		s.grpc.Stop()
	}
}
