package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orcaobra/internal/calculo"
	"orcaobra/internal/dto"
	"orcaobra/internal/model"
	"orcaobra/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type MaoObraService interface {
	// Recalcular derives the hourly cost of every active role and replaces
	// the revision's snapshots as a whole.
	Recalcular(ctx context.Context, revisaoID uuid.UUID) (*dto.RecalculoMaoObraResponse, error)
	ListarCustos(ctx context.Context, revisaoID uuid.UUID) ([]dto.CustoMaoObraResponse, error)
}

type maoObraService struct {
	revisoes repository.RevisaoRepository
	repo     repository.MaoObraRepository
}

func NewMaoObraService(revisoes repository.RevisaoRepository, repo repository.MaoObraRepository) MaoObraService {
	return &maoObraService{revisoes: revisoes, repo: repo}
}

func (s *maoObraService) Recalcular(ctx context.Context, revisaoID uuid.UUID) (*dto.RecalculoMaoObraResponse, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}

	funcoes, err := s.repo.ListFuncoes(ctx, revisaoID)
	if err != nil {
		return nil, err
	}
	params, err := s.repo.FindParametros(ctx, revisaoID)
	if err != nil {
		return nil, err
	}

	custos, err := calculo.CalcularCustosMaoObra(funcoes, params)
	if err != nil {
		return nil, err
	}
	for i := range custos {
		custos[i].RevisaoID = revisaoID
	}

	if err := s.repo.SubstituirCustos(ctx, revisaoID, custos); err != nil {
		return nil, fmt.Errorf("substituir custos de mão de obra: %w", err)
	}

	log.Info().
		Str("revisao_id", revisaoID.String()).
		Int("funcoes", len(funcoes)).
		Int("custos", len(custos)).
		Msg("mao_obra: custos recalculados")

	return &dto.RecalculoMaoObraResponse{
		RevisaoID: revisaoID.String(),
		Custos:    custosToResponse(custos),
	}, nil
}

func (s *maoObraService) ListarCustos(ctx context.Context, revisaoID uuid.UUID) ([]dto.CustoMaoObraResponse, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}
	custos, err := s.repo.ListCustos(ctx, revisaoID)
	if err != nil {
		return nil, err
	}
	return custosToResponse(custos), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// garantirRevisao maps a missing revision to ErrRevisaoNaoEncontrada.
func garantirRevisao(ctx context.Context, revisoes repository.RevisaoRepository, id uuid.UUID) error {
	_, err := buscarRevisao(ctx, revisoes, id)
	return err
}

func buscarRevisao(ctx context.Context, revisoes repository.RevisaoRepository, id uuid.UUID) (*model.Revisao, error) {
	rev, err := revisoes.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRevisaoNaoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func custosToResponse(custos []model.CustoMaoObra) []dto.CustoMaoObraResponse {
	out := make([]dto.CustoMaoObraResponse, 0, len(custos))
	for _, c := range custos {
		memoria := c.MemoriaJSON.Data()
		resp := dto.CustoMaoObraResponse{
			ID:              c.ID.String(),
			FuncaoID:        c.FuncaoID.String(),
			Funcao:          memoria.Funcao,
			CustoHoraNormal: c.CustoHoraNormal,
			CustoHoraHE50:   c.CustoHoraHE50,
			CustoHoraHE100:  c.CustoHoraHE100,
			Memoria:         memoria,
		}
		if !c.CreatedAt.IsZero() {
			resp.CreatedAt = c.CreatedAt.Format(time.RFC3339)
		}
		out = append(out, resp)
	}
	return out
}
