package dto

// EntradaEstoqueRequest registers a stock receipt for one tray variety.
type EntradaEstoqueRequest struct {
	Produto string `json:"produto" validate:"required"`
	Qtd     int    `json:"qtd"     validate:"required,min=1"`
	Motivo  string `json:"motivo"`
}

type ItemEstoqueResponse struct {
	Produto string `json:"produto"`
	Qtd     int    `json:"qtd"`
}

// MovimentoFilter is bound from query string of GET /v1/estoque/movimentos.
type MovimentoFilter struct {
	Produto string `form:"produto"`
	Limit   int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimentoEstoqueResponse struct {
	ID            string  `json:"id"`
	Produto       string  `json:"produto"`
	Tipo          string  `json:"tipo"`
	Qtd           int     `json:"qtd"`
	SaldoAnterior int     `json:"saldo_anterior"`
	SaldoNovo     int     `json:"saldo_novo"`
	Motivo        string  `json:"motivo"`
	VendaID       *string `json:"venda_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
