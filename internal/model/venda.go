package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venda is one sale: a customer buying Qtd trays of one product at
// ValorUnitario, with zero or more payments recorded against it.
//
// Monetary invariants, maintained by service.VendaService:
//   - Total    = ValorUnitario × Qtd (always recomputed, never edited directly)
//   - Pendente = max(0, Total − Σ Pagamentos) — overpayment clamps to zero
//
// A venda with Pendente == 0 is settled ("quitada"); reversal deletes the
// record after crediting stock back (the movimentos_estoque log keeps the
// audit trail).
type Venda struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Produto       string    `gorm:"not null;index"`
	Data          time.Time `gorm:"type:date;not null;index"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Qtd           int             `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Pendente      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Cliente    *Cliente         `gorm:"foreignKey:ClienteID"`
	Pagamentos []VendaPagamento `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE"`
}

func (Venda) TableName() string { return "vendas" }

// TotalPago sums every payment bucket on the sale.
func (v *Venda) TotalPago() decimal.Decimal {
	pago := decimal.Zero
	for _, p := range v.Pagamentos {
		pago = pago.Add(p.Valor)
	}
	return pago
}

// Quitada reports whether the sale is fully settled.
func (v *Venda) Quitada() bool { return v.Pendente.IsZero() }

// VendaPagamento is one accumulated payment bucket per channel
// (pix | dinheiro | cartao). A channel appears at most once per sale;
// further payments on the same channel add to Valor.
type VendaPagamento struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID uuid.UUID       `gorm:"type:uuid;not null;index:idx_venda_canal,unique"`
	Canal   string          `gorm:"not null;index:idx_venda_canal,unique"`
	Valor   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (VendaPagamento) TableName() string { return "venda_pagamentos" }
