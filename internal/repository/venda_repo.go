package repository

import (
	"context"
	"time"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendaTotais aggregates the whole ledger for the dashboard.
type VendaTotais struct {
	Faturamento decimal.Decimal
	Pendente    decimal.Decimal
	Vendas      int64
}

// DiaAgg is one per-day aggregation row.
type DiaAgg struct {
	Data     time.Time
	Total    decimal.Decimal
	Pendente decimal.Decimal
	Vendas   int64
}

type VendaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
	CountByCliente(ctx context.Context, clienteID uuid.UUID) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	UpdateValoresTx(tx *gorm.DB, id uuid.UUID, valorUnitario, total, pendente decimal.Decimal) error
	ReplacePagamentosTx(tx *gorm.DB, vendaID uuid.UUID, pagamentos []model.VendaPagamento) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// Report reads
	Totais(ctx context.Context) (*VendaTotais, error)
	SumPorDia(ctx context.Context, de, ate *time.Time) ([]DiaAgg, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venda) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).
		Preload("Pagamentos").
		Preload("Cliente").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venda{})

	if filter.Data != "" {
		q = q.Where("data = ?", filter.Data)
	}
	switch filter.Situacao {
	case "abertas":
		q = q.Where("pendente > 0")
	case "quitadas":
		q = q.Where("pendente = 0")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Pagamentos").Preload("Cliente").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).
		Find(&vendas).Error
	return vendas, total, err
}

func (r *vendaRepo) CountByCliente(ctx context.Context, clienteID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Where("cliente_id = ?", clienteID).Count(&total).Error
	return total, err
}

func (r *vendaRepo) UpdateValoresTx(tx *gorm.DB, id uuid.UUID, valorUnitario, total, pendente decimal.Decimal) error {
	res := tx.Model(&model.Venda{}).Where("id = ?", id).Updates(map[string]interface{}{
		"valor_unitario": valorUnitario,
		"total":          total,
		"pendente":       pendente,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *vendaRepo) ReplacePagamentosTx(tx *gorm.DB, vendaID uuid.UUID, pagamentos []model.VendaPagamento) error {
	if err := tx.Where("venda_id = ?", vendaID).Delete(&model.VendaPagamento{}).Error; err != nil {
		return err
	}
	if len(pagamentos) == 0 {
		return nil
	}
	return tx.Create(&pagamentos).Error
}

func (r *vendaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("venda_id = ?", id).Delete(&model.VendaPagamento{}).Error; err != nil {
		return err
	}
	res := tx.Delete(&model.Venda{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *vendaRepo) Totais(ctx context.Context) (*VendaTotais, error) {
	var t VendaTotais
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Select("COALESCE(SUM(total), 0) AS faturamento, COALESCE(SUM(pendente), 0) AS pendente, COUNT(*) AS vendas").
		Scan(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *vendaRepo) SumPorDia(ctx context.Context, de, ate *time.Time) ([]DiaAgg, error) {
	q := r.db.WithContext(ctx).Model(&model.Venda{}).
		Select("data, COALESCE(SUM(total), 0) AS total, COALESCE(SUM(pendente), 0) AS pendente, COUNT(*) AS vendas").
		Group("data").Order("data ASC")
	if de != nil {
		q = q.Where("data >= ?", *de)
	}
	if ate != nil {
		q = q.Where("data <= ?", *ate)
	}
	var dias []DiaAgg
	err := q.Scan(&dias).Error
	return dias, err
}

func (r *vendaRepo) DB() *gorm.DB { return r.db }
