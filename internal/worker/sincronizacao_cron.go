package worker

// sincronizacao_cron.go periodically pulls AR/AP entries from the ERP.
// Ticks are skipped while the ERP circuit breaker is open.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orcaobra/internal/dto"
	"orcaobra/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueSincronizacao = "jobs:sincronizacao"

	// MaxTentativasSincronizacao consecutive failed ticks send a DLQ entry.
	MaxTentativasSincronizacao = 5
)

// Sincronizador runs one ERP sync. service.SincronizacaoService implements it.
type Sincronizador interface {
	Sincronizar(ctx context.Context) (*dto.SincronizacaoResponse, error)
}

// SincronizacaoCronConfig holds all dependencies for the sync goroutine.
type SincronizacaoCronConfig struct {
	Sincronizador Sincronizador
	CB            *infra.CircuitBreaker
	RDB           *redis.Client
	Intervalo     time.Duration
}

type sincronizacaoCron struct {
	sinc    Sincronizador
	cb      *infra.CircuitBreaker
	paraDLQ dlqFunc
	falhas  int
}

// StartSincronizacaoERP runs a sync immediately and then every Intervalo
// until ctx is cancelled.
func StartSincronizacaoERP(ctx context.Context, cfg SincronizacaoCronConfig) {
	c := &sincronizacaoCron{
		sinc: cfg.Sincronizador,
		cb:   cfg.CB,
		paraDLQ: func(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
			SendToDLQ(ctx, cfg.RDB, queue, jobType, payload, reason, attempts)
		},
	}
	intervalo := cfg.Intervalo
	if intervalo <= 0 {
		intervalo = 15 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(intervalo)
		defer ticker.Stop()

		log.Info().Dur("intervalo", intervalo).Msg("sincronizacao_cron: started")
		c.tick(ctx)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sincronizacao_cron: shutting down")
				return
			case <-ticker.C:
				c.tick(ctx)
			}
		}
	}()
}

func (c *sincronizacaoCron) tick(ctx context.Context) {
	if c.cb != nil && c.cb.State() == infra.CBOpen {
		log.Debug().Msg("sincronizacao_cron: circuit breaker is open, skipping tick")
		return
	}

	res, err := c.sinc.Sincronizar(ctx)
	if err == nil {
		c.falhas = 0
		if res.Receber+res.Pagar > 0 {
			log.Info().
				Int("receber", res.Receber).
				Int("pagar", res.Pagar).
				Msg("sincronizacao_cron: tick ok")
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	c.falhas++
	if c.falhas < MaxTentativasSincronizacao {
		log.Warn().Err(err).Int("falhas", c.falhas).Msg("sincronizacao_cron: sync failed")
		return
	}

	log.Error().Err(err).Int("falhas", c.falhas).Msg("sincronizacao_cron: max attempts exceeded, moving to DLQ")
	payload := []byte(fmt.Sprintf(`{"falhas":%d}`, c.falhas))
	c.paraDLQ(ctx, QueueSincronizacao, "sincronizacao", payload,
		fmt.Sprintf("max attempts (%d) exceeded: %s", MaxTentativasSincronizacao, err), c.falhas)
	c.falhas = 0
}
