package dto

import (
	"orcaobra/internal/calculo"

	"github.com/shopspring/decimal"
)

// ─── Itens de custo ──────────────────────────────────────────────────────────

type ItemCustoRequest struct {
	Categoria     string          `json:"categoria"      validate:"required,oneof=MATERIAIS MAO_DE_OBRA MOBILIZACAO MANUTENCAO_CANTEIRO LOCACAO_EQUIPAMENTOS ENGENHARIA"`
	Descricao     string          `json:"descricao"      validate:"required,max=300"`
	Unidade       string          `json:"unidade"        validate:"omitempty,max=10"`
	Quantidade    decimal.Decimal `json:"quantidade"     validate:"gt=0"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" validate:"min=0"`
	// Duracao in months for time-based items; omitted or 0 = not time-based
	Duracao decimal.Decimal `json:"duracao" validate:"min=0"`
	WBSID   *string         `json:"wbs_id"  validate:"omitempty,uuid"`
}

type ItemCustoResponse struct {
	ID            string          `json:"id"`
	RevisaoID     string          `json:"revisao_id"`
	WBSID         *string         `json:"wbs_id"`
	Categoria     string          `json:"categoria"`
	Descricao     string          `json:"descricao"`
	Unidade       string          `json:"unidade"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Duracao       decimal.Decimal `json:"duracao"`
	Total         decimal.Decimal `json:"total"`
}

// ─── Resumo ──────────────────────────────────────────────────────────────────

type ResumoResponse struct {
	RevisaoID          string                     `json:"revisao_id"`
	TotaisPorCategoria map[string]decimal.Decimal `json:"totais_por_categoria"`
	SubtotalCusto      decimal.Decimal            `json:"subtotal_custo"`
	MarkupPct          decimal.Decimal            `json:"markup_pct"`
	ValorMarkup        decimal.Decimal            `json:"valor_markup"`
	TotalImpostos      decimal.Decimal            `json:"total_impostos"`
	PrecoVenda         decimal.Decimal            `json:"preco_venda"`
	MargemRS           decimal.Decimal            `json:"margem_rs"`
	MargemPct          decimal.Decimal            `json:"margem_pct"`
	CalculadoEm        string                     `json:"calculado_em"`
	// Only present right after a recalculation
	VendaBruta      *decimal.Decimal           `json:"venda_bruta,omitempty"`
	ImpostosDetalhe []calculo.ImpostoCalculado `json:"impostos_detalhe,omitempty"`
}
