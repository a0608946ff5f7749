package dto

import "orcaobra/internal/calculo"

// ─── Mapeamento de categorias ────────────────────────────────────────────────

type MapeamentoRequest struct {
	CodigoCategoria     string  `json:"codigo_categoria"      validate:"required,max=30"`
	Tipo                string  `json:"tipo"                  validate:"required,oneof=AR AP"`
	Descricao           *string `json:"descricao"`
	CategoriaContabilID *string `json:"categoria_contabil_id" validate:"omitempty,uuid"`
	ContaDREOverride    *string `json:"conta_dre_override"    validate:"omitempty,max=120"`
	// Ativo defaults to true when omitted
	Ativo *bool `json:"ativo"`
}

type MapeamentoResponse struct {
	ID                  string  `json:"id"`
	CodigoCategoria     string  `json:"codigo_categoria"`
	Tipo                string  `json:"tipo"`
	Descricao           *string `json:"descricao"`
	CategoriaContabilID *string `json:"categoria_contabil_id"`
	ContaDREOverride    *string `json:"conta_dre_override"`
	Ativo               bool    `json:"ativo"`
}

// ─── Aging ───────────────────────────────────────────────────────────────────

type AgingFilter struct {
	Tipo string `form:"tipo" validate:"required,oneof=AR AP"`
}

type AgingResponse struct {
	Tipo     string `json:"tipo"`
	DataBase string `json:"data_base"` // YYYY-MM-DD
	calculo.Aging
}

// ─── Sincronização ERP ───────────────────────────────────────────────────────

type SincronizacaoResponse struct {
	Receber      int   `json:"receber"`
	Pagar        int   `json:"pagar"`
	AnosAfetados []int `json:"anos_afetados"`
}
