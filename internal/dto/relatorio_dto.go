package dto

import "github.com/shopspring/decimal"

// ResumoResponse mirrors the dashboard metrics: revenue, receivables,
// sale/customer counts and the net balance after expenses.
type ResumoResponse struct {
	FaturamentoTotal decimal.Decimal `json:"faturamento_total"`
	ContasAReceber   decimal.Decimal `json:"contas_a_receber"`
	VendasRealizadas int64           `json:"vendas_realizadas"`
	Clientes         int64           `json:"clientes"`
	TotalDespesas    decimal.Decimal `json:"total_despesas"`
	Saldo            decimal.Decimal `json:"saldo"`
}

// RelatorioDiarioFilter bounds the per-day report to a date range (inclusive).
type RelatorioDiarioFilter struct {
	De  string `form:"de"  validate:"omitempty,datetime=2006-01-02"`
	Ate string `form:"ate" validate:"omitempty,datetime=2006-01-02"`
}

// DiaResumo is one row of the per-day sales report.
type DiaResumo struct {
	Data          string          `json:"data"`
	TotalVendido  decimal.Decimal `json:"total_vendido"`
	TotalRecebido decimal.Decimal `json:"total_recebido"`
	Pendente      decimal.Decimal `json:"pendente"`
	Vendas        int64           `json:"vendas"`
}

type RelatorioDiarioResponse struct {
	Dias []DiaResumo `json:"dias"`
}
