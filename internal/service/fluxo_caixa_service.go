package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orcaobra/internal/calculo"
	"orcaobra/internal/dto"
	"orcaobra/internal/model"
	"orcaobra/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FluxoCaixaService interface {
	// Gerar replaces the whole cashflow schedule of the revision.
	Gerar(ctx context.Context, revisaoID uuid.UUID, req dto.GerarFluxoCaixaRequest) (*dto.FluxoCaixaResponse, error)
	Listar(ctx context.Context, revisaoID uuid.UUID) (*dto.FluxoCaixaResponse, error)
}

type fluxoCaixaService struct {
	revisoes repository.RevisaoRepository
	resumos  repository.ResumoRepository
	repo     repository.FluxoCaixaRepository
	agora    func() time.Time
}

func NewFluxoCaixaService(
	revisoes repository.RevisaoRepository,
	resumos repository.ResumoRepository,
	repo repository.FluxoCaixaRepository,
) FluxoCaixaService {
	return &fluxoCaixaService{revisoes: revisoes, resumos: resumos, repo: repo, agora: time.Now}
}

func (s *fluxoCaixaService) Gerar(ctx context.Context, revisaoID uuid.UUID, req dto.GerarFluxoCaixaRequest) (*dto.FluxoCaixaResponse, error) {
	rev, err := buscarRevisao(ctx, s.revisoes, revisaoID)
	if err != nil {
		return nil, err
	}

	resumo, err := s.resumos.FindByRevisao(ctx, revisaoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResumoNaoCalculado
	}
	if err != nil {
		return nil, err
	}

	prazo := req.PrazoMeses
	if prazo == 0 {
		prazo = rev.PrazoMeses
	}

	inicio := s.agora()
	switch {
	case req.Inicio != nil && strings.TrimSpace(*req.Inicio) != "":
		inicio, err = parseMes(*req.Inicio)
		if err != nil {
			return nil, err
		}
	case rev.DataInicio != nil:
		inicio = *rev.DataInicio
	}

	entradas, err := calculo.DistribuirFluxoCaixa(resumo, prazo, inicio)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Substituir(ctx, revisaoID, entradas); err != nil {
		return nil, fmt.Errorf("substituir fluxo de caixa: %w", err)
	}

	log.Info().
		Str("revisao_id", revisaoID.String()).
		Int("prazo_meses", prazo).
		Str("inicio", calculo.InicioDoMes(inicio).Format("2006-01")).
		Int("entradas", len(entradas)).
		Msg("fluxo_caixa: cronograma gerado")

	return fluxoToResponse(revisaoID, entradas), nil
}

func (s *fluxoCaixaService) Listar(ctx context.Context, revisaoID uuid.UUID) (*dto.FluxoCaixaResponse, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}
	entradas, err := s.repo.List(ctx, revisaoID)
	if err != nil {
		return nil, err
	}
	return fluxoToResponse(revisaoID, entradas), nil
}

// parseMes accepts YYYY-MM or YYYY-MM-DD.
func parseMes(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: inicio %q deve ser YYYY-MM ou YYYY-MM-DD", ErrEntradaInvalida, s)
}

func fluxoToResponse(revisaoID uuid.UUID, entradas []model.FluxoCaixaEntrada) *dto.FluxoCaixaResponse {
	resp := &dto.FluxoCaixaResponse{
		RevisaoID:          revisaoID.String(),
		Entradas:           make([]dto.FluxoCaixaEntradaResponse, 0, len(entradas)),
		TotaisPorCategoria: calculo.TotalPorCategoria(entradas),
		Total:              decimal.Zero,
	}
	for _, e := range entradas {
		resp.Entradas = append(resp.Entradas, dto.FluxoCaixaEntradaResponse{
			Mes:       e.Mes.Format("2006-01-02"),
			Categoria: e.Categoria,
			Valor:     e.Valor,
		})
		resp.Total = resp.Total.Add(e.Valor)
	}
	return resp
}
