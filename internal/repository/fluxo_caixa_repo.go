package repository

import (
	"context"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FluxoCaixaRepository interface {
	// Substituir replaces the whole schedule of a revision.
	Substituir(ctx context.Context, revisaoID uuid.UUID, entradas []model.FluxoCaixaEntrada) error
	List(ctx context.Context, revisaoID uuid.UUID) ([]model.FluxoCaixaEntrada, error)
}

type fluxoCaixaRepo struct{ db *gorm.DB }

func NewFluxoCaixaRepository(db *gorm.DB) FluxoCaixaRepository { return &fluxoCaixaRepo{db: db} }

func (r *fluxoCaixaRepo) Substituir(ctx context.Context, revisaoID uuid.UUID, entradas []model.FluxoCaixaEntrada) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("revisao_id = ?", revisaoID).Delete(&model.FluxoCaixaEntrada{}).Error; err != nil {
			return err
		}
		if len(entradas) == 0 {
			return nil
		}
		return tx.CreateInBatches(&entradas, 200).Error
	})
}

func (r *fluxoCaixaRepo) List(ctx context.Context, revisaoID uuid.UUID) ([]model.FluxoCaixaEntrada, error) {
	var entradas []model.FluxoCaixaEntrada
	err := r.db.WithContext(ctx).
		Where("revisao_id = ?", revisaoID).
		Order("mes ASC, categoria ASC").
		Find(&entradas).Error
	return entradas, err
}
