package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BizPulse/internal/service/cache"
	pkgch "BizPulse/pkg/clickhouse"
	"BizPulse/pkg/config"
	xhttp "BizPulse/pkg/http"
	pkgkafka "BizPulse/pkg/kafka"
	applogger "BizPulse/pkg/logger"
	pkgmysql "BizPulse/pkg/mysql"
)

// App encapsulates the application lifecycle: one HTTP server plus the
// infrastructure clients it owns.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server

	mysqlClient *pkgmysql.Client
	chClient    *pkgch.Client      // nil when audit mirroring is off
	producer    *pkgkafka.Producer // nil when kafka is off
	reportCache cache.BytesCache
}

// New creates an App owning the given infrastructure clients.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	mysqlClient *pkgmysql.Client,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	reportCache cache.BytesCache,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		handler:     handler,
		mysqlClient: mysqlClient,
		chClient:    chClient,
		producer:    producer,
		reportCache: reportCache,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORSOrigins(a.cfg.Server.CORSOrigins),
		xhttp.WithLogger(a.logger),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.reportCache != nil {
		if err := a.reportCache.Close(); err != nil {
			a.logger.Warn("report cache close error", applogger.Error(err))
		}
	}
	if a.mysqlClient != nil {
		if err := a.mysqlClient.Close(); err != nil {
			a.logger.Warn("mysql close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
