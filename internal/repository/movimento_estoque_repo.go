package repository

import (
	"context"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/model"

	"gorm.io/gorm"
)

type MovimentoEstoqueRepository interface {
	// CreateTx writes a movement row inside the caller's transaction.
	CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	List(ctx context.Context, filter dto.MovimentoFilter) ([]model.MovimentoEstoque, error)
}

type movimentoEstoqueRepo struct{ db *gorm.DB }

func NewMovimentoEstoqueRepository(db *gorm.DB) MovimentoEstoqueRepository {
	return &movimentoEstoqueRepo{db: db}
}

func (r *movimentoEstoqueRepo) CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *movimentoEstoqueRepo) List(ctx context.Context, filter dto.MovimentoFilter) ([]model.MovimentoEstoque, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimentoEstoque{})
	if filter.Produto != "" {
		q = q.Where("produto = ?", filter.Produto)
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 100
	}
	var movs []model.MovimentoEstoque
	err := q.Order("created_at DESC").Limit(limit).Find(&movs).Error
	return movs, err
}
