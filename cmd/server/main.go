package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omnicart/crmbridge/internal/api"
	"github.com/omnicart/crmbridge/internal/config"
	"github.com/omnicart/crmbridge/internal/crm/retailcrm"
	"github.com/omnicart/crmbridge/internal/crm/transport"
	"github.com/omnicart/crmbridge/internal/logging"
	"github.com/omnicart/crmbridge/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.AppEnv)
	telemetry.Init()

	var doer transport.Doer = transport.NewClient(cfg.CRMTimeout())
	if cfg.CRMMaxRetries > 0 {
		doer = transport.NewRetry(doer, uint(cfg.CRMMaxRetries)+1)
	}

	svc := retailcrm.New(retailcrm.Config{
		BaseURL:    cfg.CRMBaseURL,
		PathPrefix: cfg.CRMAPIPrefix,
		APIKey:     cfg.CRMAPIKey,
	}, doer, logger)

	srvAPI := api.NewServer(svc, logger, cfg.RateLimitPerIP)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srvAPI.Router(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	// metrics on a separate listener, never exposed with the API
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics server: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShut)
	_ = metricsSrv.Shutdown(ctxShut)
	logger.Info().Msg("stopped")
}
