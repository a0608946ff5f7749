package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoriaContabil is an accounting category linked to one DRE line account.
type CategoriaContabil struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	ContaDRE  string    `gorm:"not null;column:conta_dre"`
	Ativo     bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CategoriaContabil) TableName() string { return "categorias_contabeis" }

// CategoriaMapeamento maps an ERP category code to a DRE account, either
// through ContaDREOverride or through the linked CategoriaContabil.
// The override wins when both are set.
type CategoriaMapeamento struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoCategoria     string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_mapeamento_codigo_tipo"`
	Tipo                string    `gorm:"type:varchar(2);not null;uniqueIndex:idx_mapeamento_codigo_tipo"` // AR | AP
	Descricao           *string
	CategoriaContabilID *uuid.UUID `gorm:"type:uuid"`
	ContaDREOverride    *string    `gorm:"column:conta_dre_override"`
	Ativo               bool       `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	CategoriaContabil *CategoriaContabil `gorm:"foreignKey:CategoriaContabilID"`
}

func (CategoriaMapeamento) TableName() string { return "categorias_mapeamento" }
