package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FluxoCaixaEntrada is the disbursement of one cost category in one month.
// Rows are generated in bulk and replaced as a whole per revision.
type FluxoCaixaEntrada struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Mes       time.Time       `gorm:"type:date;not null"` // first day of month
	Categoria string          `gorm:"type:varchar(30);not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt time.Time
}

func (FluxoCaixaEntrada) TableName() string { return "fluxo_caixa" }

// HistogramaEntrada holds the planned man-hours of one role in one month.
type HistogramaEntrada struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	FuncaoID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Mes       time.Time       `gorm:"type:date;not null"`
	HHNormais decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;column:hh_normais"`
	HH50      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;column:hh_50"`
	HH100     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;column:hh_100"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Funcao *FuncaoMaoObra `gorm:"foreignKey:FuncaoID"`
}

func (HistogramaEntrada) TableName() string { return "histograma_mao_obra" }
