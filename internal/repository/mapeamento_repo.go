package repository

import (
	"context"
	"errors"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MapeamentoRepository interface {
	// List returns every mapping (active or not) with its accounting category.
	List(ctx context.Context) ([]model.CategoriaMapeamento, error)
	// Upsert writes by (codigo_categoria, tipo).
	Upsert(ctx context.Context, m *model.CategoriaMapeamento) error
	FindCategoriaContabil(ctx context.Context, id uuid.UUID) (*model.CategoriaContabil, error)
}

type mapeamentoRepo struct{ db *gorm.DB }

func NewMapeamentoRepository(db *gorm.DB) MapeamentoRepository { return &mapeamentoRepo{db: db} }

func (r *mapeamentoRepo) List(ctx context.Context) ([]model.CategoriaMapeamento, error) {
	var mapeamentos []model.CategoriaMapeamento
	err := r.db.WithContext(ctx).
		Preload("CategoriaContabil").
		Order("tipo ASC, codigo_categoria ASC").
		Find(&mapeamentos).Error
	return mapeamentos, err
}

func (r *mapeamentoRepo) Upsert(ctx context.Context, m *model.CategoriaMapeamento) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var atual model.CategoriaMapeamento
		err := tx.Select("id", "created_at").
			Where("codigo_categoria = ? AND tipo = ?", m.CodigoCategoria, m.Tipo).
			First(&atual).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Omit("CategoriaContabil").Create(m).Error
		case err != nil:
			return err
		}
		m.ID = atual.ID
		m.CreatedAt = atual.CreatedAt
		return tx.Omit("CategoriaContabil").Save(m).Error
	})
}

func (r *mapeamentoRepo) FindCategoriaContabil(ctx context.Context, id uuid.UUID) (*model.CategoriaContabil, error) {
	var c model.CategoriaContabil
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}
