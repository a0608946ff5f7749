package repository

import (
	"context"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RevisaoRepository reads budget revisions. Revisions are authored elsewhere;
// this service only scopes its derived rows to them.
type RevisaoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Revisao, error)
}

type revisaoRepo struct{ db *gorm.DB }

func NewRevisaoRepository(db *gorm.DB) RevisaoRepository { return &revisaoRepo{db: db} }

func (r *revisaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Revisao, error) {
	var rev model.Revisao
	err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error
	return &rev, err
}
