package repository

import (
	"context"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistogramaRepository interface {
	// List returns the planned hours of a revision with the role preloaded.
	List(ctx context.Context, revisaoID uuid.UUID) ([]model.HistogramaEntrada, error)
}

type histogramaRepo struct{ db *gorm.DB }

func NewHistogramaRepository(db *gorm.DB) HistogramaRepository { return &histogramaRepo{db: db} }

func (r *histogramaRepo) List(ctx context.Context, revisaoID uuid.UUID) ([]model.HistogramaEntrada, error) {
	var entradas []model.HistogramaEntrada
	err := r.db.WithContext(ctx).
		Preload("Funcao").
		Where("revisao_id = ?", revisaoID).
		Order("mes ASC").
		Find(&entradas).Error
	return entradas, err
}
