package service

import (
	"context"
	"io"

	"orcaobra/internal/calculo"
	"orcaobra/internal/infra"
	"orcaobra/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type HistogramaService interface {
	Calcular(ctx context.Context, revisaoID uuid.UUID) (*calculo.Histograma, error)
	CSV(ctx context.Context, revisaoID uuid.UUID, w io.Writer) error
}

type histogramaService struct {
	revisoes repository.RevisaoRepository
	repo     repository.HistogramaRepository
	maoObra  repository.MaoObraRepository
}

func NewHistogramaService(
	revisoes repository.RevisaoRepository,
	repo repository.HistogramaRepository,
	maoObra repository.MaoObraRepository,
) HistogramaService {
	return &histogramaService{revisoes: revisoes, repo: repo, maoObra: maoObra}
}

func (s *histogramaService) Calcular(ctx context.Context, revisaoID uuid.UUID) (*calculo.Histograma, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}
	entradas, err := s.repo.List(ctx, revisaoID)
	if err != nil {
		return nil, err
	}
	custos, err := s.maoObra.ListCustos(ctx, revisaoID)
	if err != nil {
		return nil, err
	}

	h := calculo.CalcularHistograma(entradas, custos)
	if len(h.FuncoesSemCusto) > 0 {
		log.Warn().
			Str("revisao_id", revisaoID.String()).
			Int("funcoes", len(h.FuncoesSemCusto)).
			Msg("histograma: funções sem custo de mão de obra, recalcule os custos")
	}
	return h, nil
}

func (s *histogramaService) CSV(ctx context.Context, revisaoID uuid.UUID, w io.Writer) error {
	h, err := s.Calcular(ctx, revisaoID)
	if err != nil {
		return err
	}
	return infra.EscreverHistogramaCSV(w, h)
}
