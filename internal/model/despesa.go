package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Despesa is an operating expense (feed, fuel, packaging). It only feeds
// the financial report — no invariants beyond Valor > 0 at the edge.
type Despesa struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Data      time.Time       `gorm:"type:date;not null;index"`
	Descricao string          `gorm:"not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
}

func (Despesa) TableName() string { return "despesas" }
