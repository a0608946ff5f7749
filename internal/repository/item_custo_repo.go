package repository

import (
	"context"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemCustoRepository interface {
	Create(ctx context.Context, item *model.ItemCusto) error
	List(ctx context.Context, revisaoID uuid.UUID) ([]model.ItemCusto, error)
	// Delete returns gorm.ErrRecordNotFound when the item does not belong to the revision.
	Delete(ctx context.Context, revisaoID, itemID uuid.UUID) error
	TotaisPorCategoria(ctx context.Context, revisaoID uuid.UUID) (map[string]decimal.Decimal, error)
}

type itemCustoRepo struct{ db *gorm.DB }

func NewItemCustoRepository(db *gorm.DB) ItemCustoRepository { return &itemCustoRepo{db: db} }

func (r *itemCustoRepo) Create(ctx context.Context, item *model.ItemCusto) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemCustoRepo) List(ctx context.Context, revisaoID uuid.UUID) ([]model.ItemCusto, error) {
	var itens []model.ItemCusto
	err := r.db.WithContext(ctx).
		Where("revisao_id = ?", revisaoID).
		Order("categoria ASC, created_at ASC").
		Find(&itens).Error
	return itens, err
}

func (r *itemCustoRepo) Delete(ctx context.Context, revisaoID, itemID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND revisao_id = ?", itemID, revisaoID).
		Delete(&model.ItemCusto{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemCustoRepo) TotaisPorCategoria(ctx context.Context, revisaoID uuid.UUID) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Categoria string
		Total     decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.ItemCusto{}).
		Select("categoria, COALESCE(SUM(total), 0) AS total").
		Where("revisao_id = ?", revisaoID).
		Group("categoria").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totais := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totais[row.Categoria] = row.Total
	}
	return totais, nil
}
