package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResumoOrcamento is the derived price summary of a revision (one-to-one).
// PrecoVenda = SubtotalCusto + ValorMarkup + TotalImpostos.
type ResumoOrcamento struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID                uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	TotalMateriais           decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalMaoDeObra           decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalMobilizacao         decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalManutencaoCanteiro  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalLocacaoEquipamentos decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalEngenharia          decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	SubtotalCusto            decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MarkupPct                decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	ValorMarkup              decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalImpostos            decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PrecoVenda               decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MargemRS                 decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0;column:margem_rs"`
	MargemPct                decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	CalculadoEm              time.Time
	UpdatedAt                time.Time
}

func (ResumoOrcamento) TableName() string { return "resumos_orcamento" }

// TotalCategoria returns the stored total of one cost category.
func (r *ResumoOrcamento) TotalCategoria(categoria string) decimal.Decimal {
	switch categoria {
	case CategoriaMateriais:
		return r.TotalMateriais
	case CategoriaMaoDeObra:
		return r.TotalMaoDeObra
	case CategoriaMobilizacao:
		return r.TotalMobilizacao
	case CategoriaManutencaoCanteiro:
		return r.TotalManutencaoCanteiro
	case CategoriaLocacaoEquipamentos:
		return r.TotalLocacaoEquipamentos
	case CategoriaEngenharia:
		return r.TotalEngenharia
	default:
		return decimal.Zero
	}
}
