package model

import "time"

// ItemEstoque is the on-hand counter for one tray variety (cor × tamanho,
// e.g. "Branco Extra"). Produto is the natural key — the business sells a
// fixed catalog of eight varieties, identified by label everywhere.
//
// Qtd is guarded by a CHECK (qtd >= 0) applied in infra.NewDatabase; sale
// debits go through a constrained UPDATE so the counter can never go
// negative under concurrent writers.
type ItemEstoque struct {
	Produto   string `gorm:"primaryKey"`
	Qtd       int    `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (ItemEstoque) TableName() string { return "estoque" }
