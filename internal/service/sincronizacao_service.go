package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"orcaobra/internal/dto"
	"orcaobra/internal/infra"
	"orcaobra/internal/model"
	"orcaobra/internal/repository"

	"github.com/rs/zerolog/log"
)

// FonteERP lists receivables/payables from the ERP. infra.ERPClient
// implements it.
type FonteERP interface {
	ListarLancamentos(ctx context.Context, tipo string, desde time.Time) ([]infra.LancamentoERP, error)
}

type SincronizacaoService interface {
	// Sincronizar pulls AR and AP changed since the last successful run,
	// upserts them and invalidates the cached DRE of every touched year.
	Sincronizar(ctx context.Context) (*dto.SincronizacaoResponse, error)
}

type sincronizacaoService struct {
	fonte       FonteERP
	cb          *infra.CircuitBreaker
	lancamentos repository.LancamentoRepository
	dre         DREService
	agora       func() time.Time

	mu     sync.Mutex
	ultima time.Time
}

func NewSincronizacaoService(
	fonte FonteERP,
	cb *infra.CircuitBreaker,
	lancamentos repository.LancamentoRepository,
	dre DREService,
) SincronizacaoService {
	return &sincronizacaoService{
		fonte:       fonte,
		cb:          cb,
		lancamentos: lancamentos,
		dre:         dre,
		agora:       time.Now,
	}
}

func (s *sincronizacaoService) Sincronizar(ctx context.Context) (*dto.SincronizacaoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inicio := s.agora()
	// The ERP filters by day; step back one so same-day edits are not lost.
	var desde time.Time
	if !s.ultima.IsZero() {
		desde = s.ultima.AddDate(0, 0, -1)
	}

	receber, err := s.buscar(ctx, model.TipoReceber, desde, inicio)
	if err != nil {
		return nil, err
	}
	pagar, err := s.buscar(ctx, model.TipoPagar, desde, inicio)
	if err != nil {
		return nil, err
	}

	todos := append(receber, pagar...)
	anteriores, err := s.lancamentos.Upsert(ctx, todos)
	if err != nil {
		return nil, fmt.Errorf("gravar lançamentos: %w", err)
	}

	// An edited emission date moves the entry out of its old year too.
	anos := anosAfetados(todos, anteriores)
	if err := s.dre.InvalidarAnos(ctx, anos); err != nil {
		log.Warn().Err(err).Ints("anos", anos).Msg("sincronizacao: falha ao invalidar cache do DRE")
	}
	s.ultima = inicio

	log.Info().
		Int("receber", len(receber)).
		Int("pagar", len(pagar)).
		Ints("anos", anos).
		Msg("sincronizacao: lançamentos do ERP gravados")

	return &dto.SincronizacaoResponse{
		Receber:      len(receber),
		Pagar:        len(pagar),
		AnosAfetados: anos,
	}, nil
}

func (s *sincronizacaoService) buscar(ctx context.Context, tipo string, desde, agora time.Time) ([]model.LancamentoFinanceiro, error) {
	var brutos []infra.LancamentoERP
	err := s.cb.Execute(ctx, func(ctx context.Context) error {
		var err error
		brutos, err = s.fonte.ListarLancamentos(ctx, tipo, desde)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listar %s no ERP: %w", tipo, err)
	}

	out := make([]model.LancamentoFinanceiro, 0, len(brutos))
	for i := range brutos {
		if brutos[i].Codigo == "" {
			continue
		}
		out = append(out, brutos[i].ParaModelo(tipo, agora))
	}
	return out, nil
}

func anosAfetados(lancamentos []model.LancamentoFinanceiro, anteriores []int) []int {
	vistos := make(map[int]bool)
	for _, a := range anteriores {
		vistos[a] = true
	}
	for _, l := range lancamentos {
		if l.DataEmissao != nil {
			vistos[l.DataEmissao.Year()] = true
		}
	}
	anos := make([]int, 0, len(vistos))
	for a := range vistos {
		anos = append(anos, a)
	}
	sort.Ints(anos)
	return anos
}
