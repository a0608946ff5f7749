package dto

import (
	"orcaobra/internal/model"

	"github.com/shopspring/decimal"
)

// CustoMaoObraResponse is one role's hourly cost snapshot with its audit memo.
type CustoMaoObraResponse struct {
	ID              string               `json:"id"`
	FuncaoID        string               `json:"funcao_id"`
	Funcao          string               `json:"funcao"`
	CustoHoraNormal decimal.Decimal      `json:"custo_hora_normal"`
	CustoHoraHE50   decimal.Decimal      `json:"custo_hora_he50"`
	CustoHoraHE100  decimal.Decimal      `json:"custo_hora_he100"`
	Memoria         model.MemoriaCalculo `json:"memoria"`
	CreatedAt       string               `json:"created_at"`
}

type RecalculoMaoObraResponse struct {
	RevisaoID string                 `json:"revisao_id"`
	Custos    []CustoMaoObraResponse `json:"custos"`
}
