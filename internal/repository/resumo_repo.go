package repository

import (
	"context"
	"errors"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResumoRepository interface {
	FindByRevisao(ctx context.Context, revisaoID uuid.UUID) (*model.ResumoOrcamento, error)
	// Salvar upserts by revisao_id: the existing row keeps its id and is
	// overwritten, otherwise a new row is inserted.
	Salvar(ctx context.Context, r *model.ResumoOrcamento) error
}

type resumoRepo struct{ db *gorm.DB }

func NewResumoRepository(db *gorm.DB) ResumoRepository { return &resumoRepo{db: db} }

func (r *resumoRepo) FindByRevisao(ctx context.Context, revisaoID uuid.UUID) (*model.ResumoOrcamento, error) {
	var res model.ResumoOrcamento
	err := r.db.WithContext(ctx).Where("revisao_id = ?", revisaoID).First(&res).Error
	return &res, err
}

func (r *resumoRepo) Salvar(ctx context.Context, resumo *model.ResumoOrcamento) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var atual model.ResumoOrcamento
		err := tx.Select("id").Where("revisao_id = ?", resumo.RevisaoID).First(&atual).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(resumo).Error
		case err != nil:
			return err
		}
		resumo.ID = atual.ID
		return tx.Save(resumo).Error
	})
}
