package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VendaFilter is bound from query string of GET /v1/vendas.
type VendaFilter struct {
	Data     string `form:"data"`                    // YYYY-MM-DD; empty = all dates
	Situacao string `form:"situacao,default=all"`    // abertas | quitadas | all
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PagamentoRequest is one payment on a sale. Canal matches the channels the
// business actually takes: pix, cash, card.
type PagamentoRequest struct {
	Canal string          `json:"canal" validate:"required,oneof=pix dinheiro cartao"`
	Valor decimal.Decimal `json:"valor" validate:"required"`
}

type RegistrarVendaRequest struct {
	ClienteID     string             `json:"cliente_id"     validate:"required,uuid"`
	Produto       string             `json:"produto"        validate:"required"`
	Qtd           int                `json:"qtd"            validate:"required,min=1"`
	ValorUnitario decimal.Decimal    `json:"valor_unitario" validate:"min=0"`
	Pagamentos    []PagamentoRequest `json:"pagamentos"     validate:"omitempty,dive"`
}

type RegistrarPagamentoRequest struct {
	Canal string          `json:"canal" validate:"required,oneof=pix dinheiro cartao"`
	Valor decimal.Decimal `json:"valor" validate:"required"`
}

// CorrigirVendaRequest edits price and/or payments of an existing sale.
// Both fields are optional; omitted fields keep their current value.
// Quantity and product are deliberately not amendable — a wrong quantity
// is fixed by reversing and re-registering the sale.
type CorrigirVendaRequest struct {
	ValorUnitario *decimal.Decimal    `json:"valor_unitario" validate:"omitempty"`
	Pagamentos    *[]PagamentoRequest `json:"pagamentos"     validate:"omitempty,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VendaResponse struct {
	ID            string             `json:"id"`
	ClienteID     string             `json:"cliente_id"`
	Cliente       string             `json:"cliente,omitempty"`
	Produto       string             `json:"produto"`
	Data          string             `json:"data"`
	Qtd           int                `json:"qtd"`
	ValorUnitario decimal.Decimal    `json:"valor_unitario"`
	Total         decimal.Decimal    `json:"total"`
	Pago          decimal.Decimal    `json:"pago"`
	Pendente      decimal.Decimal    `json:"pendente"`
	Quitada       bool               `json:"quitada"`
	Pagamentos    []PagamentoRequest `json:"pagamentos"`
	CreatedAt     string             `json:"created_at"`
}
