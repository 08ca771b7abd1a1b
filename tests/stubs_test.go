package tests

import (
	"context"
	"sort"
	"time"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/model"
	"github.com/nplaytv001-byte/vendas-ovos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs shared by the service tests. Services run with
// a nil *gorm.DB (runTx calls fn(nil)), so the Tx methods ignore their tx
// argument. Find methods return copies, like a real driver would.

// ── stubClienteRepo ───────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) FindByNome(_ context.Context, nome string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Nome == nome {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *stubClienteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.clientes)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	if _, ok := r.clientes[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── stubEstoqueRepo ───────────────────────────────────────────────────────────

type stubEstoqueRepo struct {
	itens map[string]*model.ItemEstoque
}

func newStubEstoqueRepo() *stubEstoqueRepo {
	return &stubEstoqueRepo{itens: make(map[string]*model.ItemEstoque)}
}

func (r *stubEstoqueRepo) setSaldo(produto string, qtd int) {
	r.itens[produto] = &model.ItemEstoque{Produto: produto, Qtd: qtd}
}

func (r *stubEstoqueRepo) saldo(produto string) int {
	if item, ok := r.itens[produto]; ok {
		return item.Qtd
	}
	return 0
}

func (r *stubEstoqueRepo) FindByProduto(_ context.Context, produto string) (*model.ItemEstoque, error) {
	item, ok := r.itens[produto]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *stubEstoqueRepo) List(_ context.Context) ([]model.ItemEstoque, error) {
	out := make([]model.ItemEstoque, 0, len(r.itens))
	for _, item := range r.itens {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Produto < out[j].Produto })
	return out, nil
}

func (r *stubEstoqueRepo) Seed(_ context.Context, produtos []string) error {
	for _, p := range produtos {
		if _, ok := r.itens[p]; !ok {
			r.itens[p] = &model.ItemEstoque{Produto: p}
		}
	}
	return nil
}

func (r *stubEstoqueRepo) CreditarTx(_ *gorm.DB, produto string, qtd int) error {
	item, ok := r.itens[produto]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Qtd += qtd
	return nil
}

func (r *stubEstoqueRepo) DebitarSeDisponivelTx(_ *gorm.DB, produto string, qtd int) (bool, error) {
	item, ok := r.itens[produto]
	if !ok || item.Qtd < qtd {
		return false, nil
	}
	item.Qtd -= qtd
	return true, nil
}

func (r *stubEstoqueRepo) DB() *gorm.DB { return nil }

var _ repository.EstoqueRepository = (*stubEstoqueRepo)(nil)

// ── stubVendaRepo ─────────────────────────────────────────────────────────────

type stubVendaRepo struct {
	vendas map[uuid.UUID]*model.Venda
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[uuid.UUID]*model.Venda)}
}

func copiaVenda(v *model.Venda) *model.Venda {
	cp := *v
	cp.Pagamentos = append([]model.VendaPagamento(nil), v.Pagamentos...)
	return &cp
}

func (r *stubVendaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	for i := range v.Pagamentos {
		v.Pagamentos[i].VendaID = v.ID
	}
	r.vendas[v.ID] = copiaVenda(v)
	return nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copiaVenda(v), nil
}

func (r *stubVendaRepo) List(_ context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	out := make([]model.Venda, 0, len(r.vendas))
	for _, v := range r.vendas {
		switch filter.Situacao {
		case "abertas":
			if v.Pendente.IsZero() {
				continue
			}
		case "quitadas":
			if !v.Pendente.IsZero() {
				continue
			}
		}
		out = append(out, *copiaVenda(v))
	}
	return out, int64(len(out)), nil
}

func (r *stubVendaRepo) CountByCliente(_ context.Context, clienteID uuid.UUID) (int64, error) {
	var total int64
	for _, v := range r.vendas {
		if v.ClienteID == clienteID {
			total++
		}
	}
	return total, nil
}

func (r *stubVendaRepo) UpdateValoresTx(_ *gorm.DB, id uuid.UUID, valorUnitario, total, pendente decimal.Decimal) error {
	v, ok := r.vendas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.ValorUnitario = valorUnitario
	v.Total = total
	v.Pendente = pendente
	return nil
}

func (r *stubVendaRepo) ReplacePagamentosTx(_ *gorm.DB, vendaID uuid.UUID, pagamentos []model.VendaPagamento) error {
	v, ok := r.vendas[vendaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Pagamentos = append([]model.VendaPagamento(nil), pagamentos...)
	return nil
}

func (r *stubVendaRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.vendas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.vendas, id)
	return nil
}

func (r *stubVendaRepo) Totais(_ context.Context) (*repository.VendaTotais, error) {
	t := &repository.VendaTotais{Faturamento: decimal.Zero, Pendente: decimal.Zero}
	for _, v := range r.vendas {
		t.Faturamento = t.Faturamento.Add(v.Total)
		t.Pendente = t.Pendente.Add(v.Pendente)
		t.Vendas++
	}
	return t, nil
}

func (r *stubVendaRepo) SumPorDia(_ context.Context, _, _ *time.Time) ([]repository.DiaAgg, error) {
	porDia := make(map[time.Time]*repository.DiaAgg)
	for _, v := range r.vendas {
		agg, ok := porDia[v.Data]
		if !ok {
			agg = &repository.DiaAgg{Data: v.Data, Total: decimal.Zero, Pendente: decimal.Zero}
			porDia[v.Data] = agg
		}
		agg.Total = agg.Total.Add(v.Total)
		agg.Pendente = agg.Pendente.Add(v.Pendente)
		agg.Vendas++
	}
	out := make([]repository.DiaAgg, 0, len(porDia))
	for _, agg := range porDia {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Data.Before(out[j].Data) })
	return out, nil
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

// ── stubMovimentoRepo ─────────────────────────────────────────────────────────

type stubMovimentoRepo struct {
	movimentos []model.MovimentoEstoque
}

func (r *stubMovimentoRepo) CreateTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubMovimentoRepo) List(_ context.Context, filter dto.MovimentoFilter) ([]model.MovimentoEstoque, error) {
	out := make([]model.MovimentoEstoque, 0, len(r.movimentos))
	for _, m := range r.movimentos {
		if filter.Produto != "" && m.Produto != filter.Produto {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

var _ repository.MovimentoEstoqueRepository = (*stubMovimentoRepo)(nil)

// ── stubDespesaRepo ───────────────────────────────────────────────────────────

type stubDespesaRepo struct {
	despesas map[uuid.UUID]*model.Despesa
}

func newStubDespesaRepo() *stubDespesaRepo {
	return &stubDespesaRepo{despesas: make(map[uuid.UUID]*model.Despesa)}
}

func (r *stubDespesaRepo) Create(_ context.Context, d *model.Despesa) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.despesas[d.ID] = &cp
	return nil
}

func (r *stubDespesaRepo) List(_ context.Context, de, ate *time.Time) ([]model.Despesa, error) {
	out := make([]model.Despesa, 0, len(r.despesas))
	for _, d := range r.despesas {
		if de != nil && d.Data.Before(*de) {
			continue
		}
		if ate != nil && d.Data.After(*ate) {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDespesaRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.despesas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.despesas, id)
	return nil
}

func (r *stubDespesaRepo) SumPeriodo(_ context.Context, de, ate *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	despesas, _ := r.List(context.Background(), de, ate)
	for _, d := range despesas {
		total = total.Add(d.Valor)
	}
	return total, nil
}

var _ repository.DespesaRepository = (*stubDespesaRepo)(nil)
