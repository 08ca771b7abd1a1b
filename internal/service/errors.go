package service

import (
	"errors"
	"fmt"
)

// Operator-recoverable errors. Every rejected ledger operation surfaces one
// of these; handlers translate them to the matching HTTP status. None are
// fatal to the process and no partial effect is ever left behind — each
// operation runs as a single transaction.
var (
	ErrClienteNaoEncontrado = errors.New("cliente não encontrado")
	ErrProdutoNaoEncontrado = errors.New("produto não encontrado")
	ErrVendaNaoEncontrada   = errors.New("venda não encontrada")
	ErrDespesaNaoEncontrada = errors.New("despesa não encontrada")
	ErrValorInvalido        = errors.New("valor inválido")

	// ErrClienteComVendas blocks deletion of a customer with sale history.
	ErrClienteComVendas = errors.New("cliente possui vendas registradas e não pode ser excluído")
)

// EstoqueInsuficienteError rejects a sale that asks for more trays than the
// product has on hand. The message always reports the available quantity so
// the operator can adjust the order.
type EstoqueInsuficienteError struct {
	Produto    string
	Disponivel int
	Solicitado int
}

func (e *EstoqueInsuficienteError) Error() string {
	return fmt.Sprintf("estoque insuficiente de %s: disponível %d, solicitado %d",
		e.Produto, e.Disponivel, e.Solicitado)
}
