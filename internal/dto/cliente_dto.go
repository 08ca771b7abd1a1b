package dto

// ClienteRequest is the body for POST /v1/clientes and PUT /v1/clientes/:id.
type ClienteRequest struct {
	Nome     string `json:"nome"     validate:"required,min=2"`
	Telefone string `json:"telefone" validate:"omitempty,min=8"`
	Endereco string `json:"endereco"`
}

type ClienteResponse struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Telefone  string `json:"telefone"`
	Endereco  string `json:"endereco"`
	CreatedAt string `json:"created_at"`
}
