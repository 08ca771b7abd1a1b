package repository

import (
	"context"

	"github.com/nplaytv001-byte/vendas-ovos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EstoqueRepository is the data access contract for the on-hand counters.
//
// Debits go through DebitarSeDisponivelTx, a constrained UPDATE
// (qtd = qtd - ? WHERE produto = ? AND qtd >= ?) verified by RowsAffected,
// so the check and the decrement are one statement and concurrent sales
// cannot oversell.
type EstoqueRepository interface {
	FindByProduto(ctx context.Context, produto string) (*model.ItemEstoque, error)
	List(ctx context.Context) ([]model.ItemEstoque, error)
	// Seed inserts the fixed catalog with qtd = 0, skipping existing rows.
	Seed(ctx context.Context, produtos []string) error

	// Used inside transactions — callers must pass the tx instance.
	CreditarTx(tx *gorm.DB, produto string, qtd int) error
	DebitarSeDisponivelTx(tx *gorm.DB, produto string, qtd int) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type estoqueRepo struct{ db *gorm.DB }

func NewEstoqueRepository(db *gorm.DB) EstoqueRepository { return &estoqueRepo{db: db} }

func (r *estoqueRepo) FindByProduto(ctx context.Context, produto string) (*model.ItemEstoque, error) {
	var item model.ItemEstoque
	err := r.db.WithContext(ctx).Where("produto = ?", produto).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *estoqueRepo) List(ctx context.Context) ([]model.ItemEstoque, error) {
	var itens []model.ItemEstoque
	err := r.db.WithContext(ctx).Order("produto ASC").Find(&itens).Error
	return itens, err
}

func (r *estoqueRepo) Seed(ctx context.Context, produtos []string) error {
	itens := make([]model.ItemEstoque, 0, len(produtos))
	for _, p := range produtos {
		itens = append(itens, model.ItemEstoque{Produto: p})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&itens).Error
}

func (r *estoqueRepo) CreditarTx(tx *gorm.DB, produto string, qtd int) error {
	res := tx.Model(&model.ItemEstoque{}).Where("produto = ?", produto).
		Update("qtd", gorm.Expr("qtd + ?", qtd))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DebitarSeDisponivelTx returns false (and no error) when the product exists
// but does not have qtd units on hand — the caller decides how to report it.
func (r *estoqueRepo) DebitarSeDisponivelTx(tx *gorm.DB, produto string, qtd int) (bool, error) {
	res := tx.Model(&model.ItemEstoque{}).
		Where("produto = ? AND qtd >= ?", produto, qtd).
		Update("qtd", gorm.Expr("qtd - ?", qtd))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *estoqueRepo) DB() *gorm.DB { return r.db }
