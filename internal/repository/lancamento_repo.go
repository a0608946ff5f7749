package repository

import (
	"context"
	"errors"
	"time"

	"orcaobra/internal/model"

	"gorm.io/gorm"
)

type LancamentoRepository interface {
	// Upsert writes entries by their natural key (tipo, codigo_erp).
	// The last write wins; the row id is kept stable across syncs.
	// It returns the emission years the overwritten rows held before the write.
	Upsert(ctx context.Context, lancamentos []model.LancamentoFinanceiro) ([]int, error)
	// ListPorAno returns entries of one kind issued within the calendar year.
	ListPorAno(ctx context.Context, tipo string, ano int) ([]model.LancamentoFinanceiro, error)
	// ListAbertos returns entries neither paid nor cancelled that have a due date.
	ListAbertos(ctx context.Context, tipo string) ([]model.LancamentoFinanceiro, error)
}

type lancamentoRepo struct{ db *gorm.DB }

func NewLancamentoRepository(db *gorm.DB) LancamentoRepository { return &lancamentoRepo{db: db} }

func (r *lancamentoRepo) Upsert(ctx context.Context, lancamentos []model.LancamentoFinanceiro) ([]int, error) {
	if len(lancamentos) == 0 {
		return nil, nil
	}
	var anteriores []int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		anteriores = anteriores[:0]
		for i := range lancamentos {
			l := &lancamentos[i]

			var atual model.LancamentoFinanceiro
			err := tx.Select("id", "created_at", "data_emissao").
				Where("tipo = ? AND codigo_erp = ?", l.Tipo, l.CodigoERP).
				First(&atual).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(l).Error; err != nil {
					return err
				}
				continue
			case err != nil:
				return err
			}

			if atual.DataEmissao != nil {
				anteriores = append(anteriores, atual.DataEmissao.Year())
			}
			l.ID = atual.ID
			l.CreatedAt = atual.CreatedAt
			if err := tx.Save(l).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return anteriores, nil
}

func (r *lancamentoRepo) ListPorAno(ctx context.Context, tipo string, ano int) ([]model.LancamentoFinanceiro, error) {
	inicio := time.Date(ano, time.January, 1, 0, 0, 0, 0, time.UTC)
	fim := inicio.AddDate(1, 0, 0)

	var lancamentos []model.LancamentoFinanceiro
	err := r.db.WithContext(ctx).
		Where("tipo = ? AND data_emissao >= ? AND data_emissao < ?", tipo, inicio, fim).
		Order("data_emissao ASC, codigo_erp ASC").
		Find(&lancamentos).Error
	return lancamentos, err
}

func (r *lancamentoRepo) ListAbertos(ctx context.Context, tipo string) ([]model.LancamentoFinanceiro, error) {
	var lancamentos []model.LancamentoFinanceiro
	err := r.db.WithContext(ctx).
		Where("tipo = ? AND status NOT IN ? AND data_vencimento IS NOT NULL",
			tipo, []string{model.StatusPago, model.StatusCancelado}).
		Order("data_vencimento ASC").
		Find(&lancamentos).Error
	return lancamentos, err
}
