package repository

import (
	"context"
	"errors"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaoObraRepository interface {
	ListFuncoes(ctx context.Context, revisaoID uuid.UUID) ([]model.FuncaoMaoObra, error)
	// FindParametros returns nil, nil when the revision has no parameters yet.
	FindParametros(ctx context.Context, revisaoID uuid.UUID) (*model.ParametrosMaoObra, error)
	ListCustos(ctx context.Context, revisaoID uuid.UUID) ([]model.CustoMaoObra, error)
	// SubstituirCustos deletes every snapshot of the revision and inserts
	// custos in the same transaction.
	SubstituirCustos(ctx context.Context, revisaoID uuid.UUID, custos []model.CustoMaoObra) error
}

type maoObraRepo struct{ db *gorm.DB }

func NewMaoObraRepository(db *gorm.DB) MaoObraRepository { return &maoObraRepo{db: db} }

func (r *maoObraRepo) ListFuncoes(ctx context.Context, revisaoID uuid.UUID) ([]model.FuncaoMaoObra, error) {
	var funcoes []model.FuncaoMaoObra
	err := r.db.WithContext(ctx).
		Where("revisao_id = ?", revisaoID).
		Order("funcao ASC").
		Find(&funcoes).Error
	return funcoes, err
}

func (r *maoObraRepo) FindParametros(ctx context.Context, revisaoID uuid.UUID) (*model.ParametrosMaoObra, error) {
	var p model.ParametrosMaoObra
	err := r.db.WithContext(ctx).Where("revisao_id = ?", revisaoID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *maoObraRepo) ListCustos(ctx context.Context, revisaoID uuid.UUID) ([]model.CustoMaoObra, error) {
	var custos []model.CustoMaoObra
	err := r.db.WithContext(ctx).Where("revisao_id = ?", revisaoID).Find(&custos).Error
	return custos, err
}

func (r *maoObraRepo) SubstituirCustos(ctx context.Context, revisaoID uuid.UUID, custos []model.CustoMaoObra) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("revisao_id = ?", revisaoID).Delete(&model.CustoMaoObra{}).Error; err != nil {
			return err
		}
		if len(custos) == 0 {
			return nil
		}
		return tx.Create(&custos).Error
	})
}
