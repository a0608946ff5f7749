package repository

import (
	"context"
	"errors"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegraRepository interface {
	// FindMarkup returns nil, nil when no markup rule exists for the revision.
	FindMarkup(ctx context.Context, revisaoID uuid.UUID) (*model.RegraMarkup, error)
	ListImpostos(ctx context.Context, revisaoID uuid.UUID) ([]model.RegraImposto, error)
}

type regraRepo struct{ db *gorm.DB }

func NewRegraRepository(db *gorm.DB) RegraRepository { return &regraRepo{db: db} }

func (r *regraRepo) FindMarkup(ctx context.Context, revisaoID uuid.UUID) (*model.RegraMarkup, error) {
	var m model.RegraMarkup
	err := r.db.WithContext(ctx).Where("revisao_id = ?", revisaoID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *regraRepo) ListImpostos(ctx context.Context, revisaoID uuid.UUID) ([]model.RegraImposto, error) {
	var regras []model.RegraImposto
	err := r.db.WithContext(ctx).
		Where("revisao_id = ?", revisaoID).
		Order("ordem ASC, nome ASC").
		Find(&regras).Error
	return regras, err
}
