package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Ledger entry kinds and statuses as imported from the ERP.
const (
	TipoReceber = "AR"
	TipoPagar   = "AP"

	StatusAberto    = "ABERTO"
	StatusPago      = "PAGO"
	StatusCancelado = "CANCELADO"
)

// LancamentoFinanceiro is an accounts receivable/payable entry synced from the ERP.
// CategoriasRateio keeps the raw JSON as delivered upstream; it may be an array
// of {codigo_categoria, valor} or that same array double-encoded as a string.
type LancamentoFinanceiro struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo             string    `gorm:"type:varchar(2);not null;uniqueIndex:idx_lancamento_erp"`
	CodigoERP        string    `gorm:"type:varchar(60);not null;uniqueIndex:idx_lancamento_erp;column:codigo_erp"`
	Descricao        string
	DataEmissao      *time.Time      `gorm:"type:date;index"`
	DataVencimento   *time.Time      `gorm:"type:date"`
	Valor            decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status           string          `gorm:"type:varchar(20);not null;default:'ABERTO'"`
	Categoria        *string         `gorm:"type:varchar(30)"`
	CategoriasRateio datatypes.JSON  `gorm:"type:jsonb"`
	SincronizadoEm   time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (LancamentoFinanceiro) TableName() string { return "lancamentos_financeiros" }

// RateioItem is one split of a ledger entry across categories.
type RateioItem struct {
	CodigoCategoria string          `json:"codigo_categoria"`
	Valor           decimal.Decimal `json:"valor"`
}
