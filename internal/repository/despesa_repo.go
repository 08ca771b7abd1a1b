package repository

import (
	"context"
	"time"

	"github.com/nplaytv001-byte/vendas-ovos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DespesaRepository interface {
	Create(ctx context.Context, d *model.Despesa) error
	List(ctx context.Context, de, ate *time.Time) ([]model.Despesa, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SumPeriodo(ctx context.Context, de, ate *time.Time) (decimal.Decimal, error)
}

type despesaRepo struct{ db *gorm.DB }

func NewDespesaRepository(db *gorm.DB) DespesaRepository { return &despesaRepo{db: db} }

func (r *despesaRepo) Create(ctx context.Context, d *model.Despesa) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *despesaRepo) List(ctx context.Context, de, ate *time.Time) ([]model.Despesa, error) {
	q := r.db.WithContext(ctx)
	if de != nil {
		q = q.Where("data >= ?", *de)
	}
	if ate != nil {
		q = q.Where("data <= ?", *ate)
	}
	var despesas []model.Despesa
	err := q.Order("data DESC").Find(&despesas).Error
	return despesas, err
}

func (r *despesaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Despesa{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *despesaRepo) SumPeriodo(ctx context.Context, de, ate *time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&model.Despesa{})
	if de != nil {
		q = q.Where("data >= ?", *de)
	}
	if ate != nil {
		q = q.Where("data <= ?", *ate)
	}
	var row struct{ Total decimal.Decimal }
	err := q.Select("COALESCE(SUM(valor), 0) AS total").Scan(&row).Error
	return row.Total, err
}
