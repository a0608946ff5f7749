package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Modalidade of employment for a labor role.
const (
	ModalidadeCLT    = "CLT"
	ModalidadePacote = "PACOTE"
)

// FuncaoMaoObra is a labor role priced inside a budget revision.
type FuncaoMaoObra struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Funcao             string          `gorm:"not null"`
	SalarioBase        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CargaHorariaMensal decimal.Decimal `gorm:"type:decimal(7,2);not null;default:220"`
	Modalidade         string          `gorm:"type:varchar(10);not null;default:'CLT'"`
	Ativo              bool            `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (FuncaoMaoObra) TableName() string { return "funcoes_mao_obra" }

// ParametrosMaoObra holds the percentage knobs of a revision.
// At most one row per revision (unique index on revisao_id).
type ParametrosMaoObra struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	EncargosPct         decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	HE50Pct             decimal.Decimal `gorm:"type:decimal(7,4);not null;default:50;column:he50_pct"`
	HE100Pct            decimal.Decimal `gorm:"type:decimal(7,4);not null;default:100;column:he100_pct"`
	PericulosidadePct   decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	InsalubridadePct    decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	AdicionalNoturnoPct decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	ImprodutividadePct  decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (ParametrosMaoObra) TableName() string { return "parametros_mao_obra" }

// MemoriaCalculo is the audit trail of one labor cost derivation.
// Extras is open-ended: callers may attach context (who recalculated, source screen).
type MemoriaCalculo struct {
	Funcao              string            `json:"funcao"`
	Modalidade          string            `json:"modalidade"`
	SalarioBase         decimal.Decimal   `json:"salario_base"`
	CargaHorariaMensal  decimal.Decimal   `json:"carga_horaria_mensal"`
	EncargosPct         decimal.Decimal   `json:"encargos_pct"`
	HE50Pct             decimal.Decimal   `json:"he50_pct"`
	HE100Pct            decimal.Decimal   `json:"he100_pct"`
	PericulosidadePct   decimal.Decimal   `json:"periculosidade_pct"`
	InsalubridadePct    decimal.Decimal   `json:"insalubridade_pct"`
	AdicionalNoturnoPct decimal.Decimal   `json:"adicional_noturno_pct"`
	ImprodutividadePct  decimal.Decimal   `json:"improdutividade_pct"`
	SalarioComEncargos  decimal.Decimal   `json:"salario_com_encargos"`
	Extras              map[string]string `json:"extras,omitempty"`
}

// CustoMaoObra is the derived hourly cost of one role in one revision.
// Snapshots are replaced as a whole whenever roles or parameters change.
type CustoMaoObra struct {
	ID              uuid.UUID                          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RevisaoID       uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:idx_custo_revisao_funcao"`
	FuncaoID        uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:idx_custo_revisao_funcao"`
	CustoHoraNormal decimal.Decimal                    `gorm:"type:decimal(14,2);not null"`
	CustoHoraHE50   decimal.Decimal                    `gorm:"type:decimal(14,2);not null;column:custo_hora_he50"`
	CustoHoraHE100  decimal.Decimal                    `gorm:"type:decimal(14,2);not null;column:custo_hora_he100"`
	MemoriaJSON     datatypes.JSONType[MemoriaCalculo] `gorm:"type:jsonb;column:memoria_json"`
	CreatedAt       time.Time
}

func (CustoMaoObra) TableName() string { return "custos_mao_obra" }
