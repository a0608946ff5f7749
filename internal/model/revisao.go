package model

import (
	"time"

	"github.com/google/uuid"
)

// Revisao is one priced revision of a budget (orcamento).
// Every derived record (snapshots, summary, cashflow) is scoped to a revision.
// Status: "rascunho" | "aprovada" | "arquivada"
type Revisao struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrcamentoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Numero      int       `gorm:"not null"`
	PrazoMeses  int       `gorm:"not null;default:1"`
	// DataInicio is the first month of the cashflow schedule; nil = current month
	DataInicio *time.Time `gorm:"type:date"`
	Status     string     `gorm:"type:varchar(20);not null;default:'rascunho'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Revisao) TableName() string { return "orcamento_revisoes" }
