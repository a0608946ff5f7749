package dto

import "github.com/shopspring/decimal"

type GerarFluxoCaixaRequest struct {
	// PrazoMeses overrides the revision's prazo; omitted = use the revision's
	PrazoMeses int `json:"prazo_meses" validate:"omitempty,min=1,max=240"`
	// Inicio is YYYY-MM or YYYY-MM-DD; omitted = revision data_inicio or current month
	Inicio *string `json:"inicio"`
}

type FluxoCaixaEntradaResponse struct {
	Mes       string          `json:"mes"` // YYYY-MM-DD, first day of month
	Categoria string          `json:"categoria"`
	Valor     decimal.Decimal `json:"valor"`
}

type FluxoCaixaResponse struct {
	RevisaoID          string                      `json:"revisao_id"`
	Entradas           []FluxoCaixaEntradaResponse `json:"entradas"`
	TotaisPorCategoria map[string]decimal.Decimal  `json:"totais_por_categoria"`
	Total              decimal.Decimal             `json:"total"`
}
