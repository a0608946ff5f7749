package service

import (
	"context"
	"fmt"
	"time"

	"orcaobra/internal/calculo"
	"orcaobra/internal/dto"
	"orcaobra/internal/model"
	"orcaobra/internal/repository"
)

type FinanceiroService interface {
	// Aging buckets the open entries of tipo (AR|AP) by days past due.
	Aging(ctx context.Context, tipo string) (*dto.AgingResponse, error)
}

type financeiroService struct {
	lancamentos repository.LancamentoRepository
	agora       func() time.Time
}

func NewFinanceiroService(lancamentos repository.LancamentoRepository) FinanceiroService {
	return &financeiroService{lancamentos: lancamentos, agora: time.Now}
}

func (s *financeiroService) Aging(ctx context.Context, tipo string) (*dto.AgingResponse, error) {
	if tipo != model.TipoReceber && tipo != model.TipoPagar {
		return nil, fmt.Errorf("%w: tipo deve ser AR ou AP", ErrEntradaInvalida)
	}

	abertos, err := s.lancamentos.ListAbertos(ctx, tipo)
	if err != nil {
		return nil, err
	}
	itens := make([]calculo.ItemAging, 0, len(abertos))
	for _, l := range abertos {
		if l.DataVencimento == nil {
			continue
		}
		itens = append(itens, calculo.ItemAging{Vencimento: *l.DataVencimento, Valor: l.Valor})
	}

	hoje := s.agora()
	return &dto.AgingResponse{
		Tipo:     tipo,
		DataBase: hoje.Format("2006-01-02"),
		Aging:    calculo.ClassificarAging(itens, hoje),
	}, nil
}
