package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a delivery customer of the egg business.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Telefone  string
	Endereco  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization for Portuguese names.
func (Cliente) TableName() string { return "clientes" }
