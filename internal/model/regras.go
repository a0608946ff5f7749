package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tax rule enums.
const (
	TipoImpostoPercent = "PERCENT"
	TipoImpostoFixed   = "FIXED"

	BaseImpostoVenda = "SALE"
	BaseImpostoCusto = "COST"

	AplicaEmTodos     = "ALL"
	AplicaEmMateriais = "MATERIALS"
	AplicaEmServicos  = "SERVICES"
)

// RegraMarkup is the single markup applied to a revision's cost subtotal.
type RegraMarkup struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	MarkupPct decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RegraMarkup) TableName() string { return "regras_markup" }

// RegraImposto is one tax applied on top of the budget. Rules are additive and
// independent: none is computed over another rule's amount.
type RegraImposto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nome      string          `gorm:"not null"`
	Tipo      string          `gorm:"type:varchar(10);not null"` // PERCENT | FIXED
	Valor     decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Base      string          `gorm:"type:varchar(10);not null;default:'SALE'"` // SALE | COST
	AplicaEm  string          `gorm:"type:varchar(10);not null;default:'ALL'"`  // ALL | MATERIALS | SERVICES
	Ativo     bool            `gorm:"not null"`
	Ordem     int             `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RegraImposto) TableName() string { return "regras_impostos" }
