package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimentoEstoque registra cada mudança de saldo de um produto.
// Criado automaticamente em entradas, vendas e estornos — nunca editado.
type MovimentoEstoque struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Produto       string    `gorm:"not null;index"`
	Tipo          string    `gorm:"not null"` // "entrada" | "venda" | "estorno"
	Qtd           int       `gorm:"not null"` // positive = entrada, negative = saída
	SaldoAnterior int       `gorm:"not null"`
	SaldoNovo     int       `gorm:"not null"`
	Motivo        string
	VendaID       *uuid.UUID `gorm:"type:uuid"` // set on venda/estorno movements
	CreatedAt     time.Time
}

func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
