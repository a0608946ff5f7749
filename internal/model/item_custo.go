package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoriaCusto groups cost line items for the budget summary.
const (
	CategoriaMateriais           = "MATERIAIS"
	CategoriaMaoDeObra           = "MAO_DE_OBRA"
	CategoriaMobilizacao         = "MOBILIZACAO"
	CategoriaManutencaoCanteiro  = "MANUTENCAO_CANTEIRO"
	CategoriaLocacaoEquipamentos = "LOCACAO_EQUIPAMENTOS"
	CategoriaEngenharia          = "ENGENHARIA"
)

// CategoriasCusto lists every cost category in report order.
var CategoriasCusto = []string{
	CategoriaMateriais,
	CategoriaMaoDeObra,
	CategoriaMobilizacao,
	CategoriaManutencaoCanteiro,
	CategoriaLocacaoEquipamentos,
	CategoriaEngenharia,
}

// ItemCusto is one cost line item of a revision (material, equipment rental,
// mobilization, site maintenance, engineering or labor allocation).
// Total = Quantidade × PrecoUnitario × Duracao, derived on write.
type ItemCusto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_itens_revisao_categoria"`
	WBSID         *uuid.UUID      `gorm:"type:uuid;column:wbs_id"`
	Categoria     string          `gorm:"type:varchar(30);not null;index:idx_itens_revisao_categoria"`
	Descricao     string          `gorm:"not null"`
	Unidade       string          `gorm:"type:varchar(10);not null;default:'un'"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// Duracao is the number of months for rentals and site maintenance; 0 = not time-based
	Duracao   decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ItemCusto) TableName() string { return "itens_custo" }
