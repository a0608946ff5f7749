package service

import (
	"context"
	"fmt"

	"orcaobra/internal/dto"
	"orcaobra/internal/repository"
	"orcaobra/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecalculoEnqueuer pushes recalculation jobs. *worker.Dispatcher implements it.
type RecalculoEnqueuer interface {
	EnqueueRecalculo(ctx context.Context, payload worker.RecalculoJobPayload) error
}

type RecalculoService interface {
	// Agendar validates the revision and enqueues a full recalculation.
	Agendar(ctx context.Context, revisaoID uuid.UUID, req dto.RecalcularRequest) (*dto.RecalculoAgendadoResponse, error)
	// Executar runs labor cost, budget summary and cashflow in that order.
	// When gerarPDF is set the summary PDF is stored and its path returned.
	Executar(ctx context.Context, revisaoID uuid.UUID, gerarPDF bool) (string, error)
}

type recalculoService struct {
	revisoes   repository.RevisaoRepository
	dispatcher RecalculoEnqueuer
	maoObra    MaoObraService
	orcamento  OrcamentoService
	fluxo      FluxoCaixaService
	pdfPath    string
}

func NewRecalculoService(
	revisoes repository.RevisaoRepository,
	dispatcher RecalculoEnqueuer,
	maoObra MaoObraService,
	orcamento OrcamentoService,
	fluxo FluxoCaixaService,
	pdfPath string,
) RecalculoService {
	return &recalculoService{
		revisoes:   revisoes,
		dispatcher: dispatcher,
		maoObra:    maoObra,
		orcamento:  orcamento,
		fluxo:      fluxo,
		pdfPath:    pdfPath,
	}
}

func (s *recalculoService) Agendar(ctx context.Context, revisaoID uuid.UUID, req dto.RecalcularRequest) (*dto.RecalculoAgendadoResponse, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}

	payload := worker.RecalculoJobPayload{RevisaoID: revisaoID.String()}
	if req.Email != nil {
		payload.Email = *req.Email
	}
	if err := s.dispatcher.EnqueueRecalculo(ctx, payload); err != nil {
		return nil, fmt.Errorf("enfileirar recálculo: %w", err)
	}

	log.Info().
		Str("revisao_id", revisaoID.String()).
		Bool("email", payload.Email != "").
		Msg("recalculo: job enfileirado")

	return &dto.RecalculoAgendadoResponse{RevisaoID: revisaoID.String(), Status: "agendado"}, nil
}

func (s *recalculoService) Executar(ctx context.Context, revisaoID uuid.UUID, gerarPDF bool) (string, error) {
	if _, err := s.maoObra.Recalcular(ctx, revisaoID); err != nil {
		return "", fmt.Errorf("mão de obra: %w", err)
	}
	if _, err := s.orcamento.RecalcularResumo(ctx, revisaoID); err != nil {
		return "", fmt.Errorf("resumo: %w", err)
	}
	if _, err := s.fluxo.Gerar(ctx, revisaoID, dto.GerarFluxoCaixaRequest{}); err != nil {
		return "", fmt.Errorf("fluxo de caixa: %w", err)
	}
	if !gerarPDF {
		return "", nil
	}
	path, err := s.orcamento.GerarResumoPDF(ctx, revisaoID, s.pdfPath)
	if err != nil {
		return "", fmt.Errorf("pdf do resumo: %w", err)
	}
	return path, nil
}
