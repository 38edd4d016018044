package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogKeeper/internal/config"
	httpv1 "github.com/Egor213/LogKeeper/internal/controller/http/v1"
	"github.com/Egor213/LogKeeper/internal/metrics"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/Egor213/LogKeeper/pkg/grpcserver"
	"github.com/Egor213/LogKeeper/pkg/httpserver"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Run serves the HTTP API, the metrics endpoint and gRPC health checks until
// an interrupt or a server failure.
func Run(cfg *config.Config) error {
	ctx := context.Background()

	// Storage
	repositories, closeStorage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	defer closeStorage()

	// Broker
	producer, closeProducer := NewProducer(cfg)
	defer closeProducer()

	// Services
	services, err := NewServices(cfg, repositories, metrics.New(), producer)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	// HTTP API
	log.Infof("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	apiHandler.HideBanner = true
	apiHandler.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: metrics.Namespace,
		Subsystem: "http",
	}))
	httpv1.ConfigureRouter(apiHandler, services)
	apiServer := httpserver.New(apiHandler, httpserver.Port(cfg.HTTP.Port))

	// gRPC health
	log.Infof("Starting gRPC server...")
	log.Debugf("Server port: %s", cfg.GRPC.Port)
	healthServer := health.NewServer()
	grpcServer, err := grpcserver.New(func(s *grpc.Server) {
		healthpb.RegisterHealthServer(s, healthServer)
	}, grpcserver.WithPort(cfg.GRPC.Port))
	if err != nil {
		_ = apiServer.Shutdown()
		return errorsUtils.WrapPathErr(err)
	}
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metricsHandler.HideBanner = true
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err = <-apiServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err = <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err = <-grpcServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	healthServer.Shutdown()
	if err := apiServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	grpcServer.Shutdown()

	return err
}
