package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"orcaobra/internal/calculo"
	"orcaobra/internal/dto"
	"orcaobra/internal/infra"
	"orcaobra/internal/model"
	"orcaobra/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrcamentoService interface {
	CriarItem(ctx context.Context, revisaoID uuid.UUID, req dto.ItemCustoRequest) (*dto.ItemCustoResponse, error)
	ListarItens(ctx context.Context, revisaoID uuid.UUID) ([]dto.ItemCustoResponse, error)
	RemoverItem(ctx context.Context, revisaoID, itemID uuid.UUID) error

	// RecalcularResumo rolls the line items up into the priced summary and
	// upserts it by revision.
	RecalcularResumo(ctx context.Context, revisaoID uuid.UUID) (*dto.ResumoResponse, error)
	ObterResumo(ctx context.Context, revisaoID uuid.UUID) (*dto.ResumoResponse, error)
	ResumoPDF(ctx context.Context, revisaoID uuid.UUID, w io.Writer) error
	// GerarResumoPDF stores the PDF under storagePath and returns its path.
	GerarResumoPDF(ctx context.Context, revisaoID uuid.UUID, storagePath string) (string, error)
}

type orcamentoService struct {
	revisoes repository.RevisaoRepository
	itens    repository.ItemCustoRepository
	regras   repository.RegraRepository
	resumos  repository.ResumoRepository
	agora    func() time.Time
}

func NewOrcamentoService(
	revisoes repository.RevisaoRepository,
	itens repository.ItemCustoRepository,
	regras repository.RegraRepository,
	resumos repository.ResumoRepository,
) OrcamentoService {
	return &orcamentoService{
		revisoes: revisoes,
		itens:    itens,
		regras:   regras,
		resumos:  resumos,
		agora:    time.Now,
	}
}

// ── Itens de custo ────────────────────────────────────────────────────────────

func (s *orcamentoService) CriarItem(ctx context.Context, revisaoID uuid.UUID, req dto.ItemCustoRequest) (*dto.ItemCustoResponse, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}

	item := &model.ItemCusto{
		RevisaoID:     revisaoID,
		Categoria:     req.Categoria,
		Descricao:     req.Descricao,
		Unidade:       req.Unidade,
		Quantidade:    req.Quantidade,
		PrecoUnitario: req.PrecoUnitario,
		Duracao:       req.Duracao,
		Total:         calculo.TotalItem(req.Quantidade, req.PrecoUnitario, req.Duracao),
	}
	if item.Unidade == "" {
		item.Unidade = "un"
	}
	if req.WBSID != nil {
		wbs, err := uuid.Parse(*req.WBSID)
		if err != nil {
			return nil, fmt.Errorf("%w: wbs_id: %v", ErrEntradaInvalida, err)
		}
		item.WBSID = &wbs
	}

	if err := s.itens.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := itemToResponse(item)
	return &resp, nil
}

func (s *orcamentoService) ListarItens(ctx context.Context, revisaoID uuid.UUID) ([]dto.ItemCustoResponse, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}
	itens, err := s.itens.List(ctx, revisaoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemCustoResponse, 0, len(itens))
	for i := range itens {
		out = append(out, itemToResponse(&itens[i]))
	}
	return out, nil
}

func (s *orcamentoService) RemoverItem(ctx context.Context, revisaoID, itemID uuid.UUID) error {
	err := s.itens.Delete(ctx, revisaoID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNaoEncontrado
	}
	return err
}

// ── Resumo ────────────────────────────────────────────────────────────────────

func (s *orcamentoService) RecalcularResumo(ctx context.Context, revisaoID uuid.UUID) (*dto.ResumoResponse, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}

	totais, err := s.itens.TotaisPorCategoria(ctx, revisaoID)
	if err != nil {
		return nil, err
	}
	markup, err := s.regras.FindMarkup(ctx, revisaoID)
	if err != nil {
		return nil, err
	}
	impostos, err := s.regras.ListImpostos(ctx, revisaoID)
	if err != nil {
		return nil, err
	}

	res, err := calculo.CalcularResumo(revisaoID, totais, markup, impostos)
	if err != nil {
		return nil, err
	}
	res.Resumo.CalculadoEm = s.agora()

	if err := s.resumos.Salvar(ctx, &res.Resumo); err != nil {
		return nil, fmt.Errorf("salvar resumo: %w", err)
	}

	log.Info().
		Str("revisao_id", revisaoID.String()).
		Str("subtotal_custo", res.Resumo.SubtotalCusto.StringFixed(2)).
		Str("preco_venda", res.Resumo.PrecoVenda.StringFixed(2)).
		Msg("orcamento: resumo recalculado")

	resp := resumoToResponse(&res.Resumo)
	vb := res.VendaBruta
	resp.VendaBruta = &vb
	resp.ImpostosDetalhe = res.Impostos
	return &resp, nil
}

func (s *orcamentoService) ObterResumo(ctx context.Context, revisaoID uuid.UUID) (*dto.ResumoResponse, error) {
	r, err := s.buscarResumo(ctx, revisaoID)
	if err != nil {
		return nil, err
	}
	resp := resumoToResponse(r)
	return &resp, nil
}

func (s *orcamentoService) ResumoPDF(ctx context.Context, revisaoID uuid.UUID, w io.Writer) error {
	rev, err := buscarRevisao(ctx, s.revisoes, revisaoID)
	if err != nil {
		return err
	}
	r, err := s.buscarResumo(ctx, revisaoID)
	if err != nil {
		return err
	}
	return infra.EscreverResumoPDF(w, rev, r)
}

func (s *orcamentoService) GerarResumoPDF(ctx context.Context, revisaoID uuid.UUID, storagePath string) (string, error) {
	rev, err := buscarRevisao(ctx, s.revisoes, revisaoID)
	if err != nil {
		return "", err
	}
	r, err := s.buscarResumo(ctx, revisaoID)
	if err != nil {
		return "", err
	}
	return infra.GerarResumoPDF(rev, r, storagePath)
}

func (s *orcamentoService) buscarResumo(ctx context.Context, revisaoID uuid.UUID) (*model.ResumoOrcamento, error) {
	if err := garantirRevisao(ctx, s.revisoes, revisaoID); err != nil {
		return nil, err
	}
	r, err := s.resumos.FindByRevisao(ctx, revisaoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResumoNaoCalculado
	}
	return r, err
}

// ── helpers ───────────────────────────────────────────────────────────────────

func itemToResponse(it *model.ItemCusto) dto.ItemCustoResponse {
	resp := dto.ItemCustoResponse{
		ID:            it.ID.String(),
		RevisaoID:     it.RevisaoID.String(),
		Categoria:     it.Categoria,
		Descricao:     it.Descricao,
		Unidade:       it.Unidade,
		Quantidade:    it.Quantidade,
		PrecoUnitario: it.PrecoUnitario,
		Duracao:       it.Duracao,
		Total:         it.Total,
	}
	if it.WBSID != nil {
		s := it.WBSID.String()
		resp.WBSID = &s
	}
	return resp
}

func resumoToResponse(r *model.ResumoOrcamento) dto.ResumoResponse {
	totais := make(map[string]decimal.Decimal, len(model.CategoriasCusto))
	for _, cat := range model.CategoriasCusto {
		totais[cat] = r.TotalCategoria(cat)
	}
	return dto.ResumoResponse{
		RevisaoID:          r.RevisaoID.String(),
		TotaisPorCategoria: totais,
		SubtotalCusto:      r.SubtotalCusto,
		MarkupPct:          r.MarkupPct,
		ValorMarkup:        r.ValorMarkup,
		TotalImpostos:      r.TotalImpostos,
		PrecoVenda:         r.PrecoVenda,
		MargemRS:           r.MargemRS,
		MargemPct:          r.MargemPct,
		CalculadoEm:        r.CalculadoEm.Format(time.RFC3339),
	}
}
