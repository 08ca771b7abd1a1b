package dto

import "github.com/shopspring/decimal"

type DespesaRequest struct {
	Data      string          `json:"data"      validate:"required,datetime=2006-01-02"`
	Descricao string          `json:"descricao" validate:"required,min=2"`
	Valor     decimal.Decimal `json:"valor"     validate:"required"`
}

type DespesaResponse struct {
	ID        string          `json:"id"`
	Data      string          `json:"data"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
}

// DespesaFilter bounds the listing to a date range (inclusive).
type DespesaFilter struct {
	De  string `form:"de"  validate:"omitempty,datetime=2006-01-02"`
	Ate string `form:"ate" validate:"omitempty,datetime=2006-01-02"`
}
