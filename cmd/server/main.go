package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orcaobra/internal/config"
	"orcaobra/internal/infra"
	"orcaobra/internal/router"
	"orcaobra/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// JSON logs in production, console output elsewhere
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	erpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("erp"))

	svc, err := router.NovosServicos(cfg, db, rdb, erpCB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire services")
	}

	// Background work: recalculation/email pool and the ERP sync ticker.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerHandlers := &worker.WorkerHandlers{
		Recalculo: worker.NewRecalculoWorker(svc.Recalculo, svc.Dispatcher),
		Email:     worker.NewEmailWorker(infra.NewMailer(cfg)),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)
	worker.StartSincronizacaoERP(ctx, worker.SincronizacaoCronConfig{
		Sincronizador: svc.Sincronizacao,
		CB:            erpCB,
		RDB:           rdb,
		Intervalo:     cfg.ERPSyncInterval,
	})

	r := router.New(cfg, db, rdb, erpCB, svc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("orcaobra listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
