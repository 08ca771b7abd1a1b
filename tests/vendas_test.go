package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/model"
	"github.com/nplaytv001-byte/vendas-ovos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test fixture ──────────────────────────────────────────────────────────────

type vendaFixture struct {
	svc         service.VendaService
	vendaRepo   *stubVendaRepo
	clienteRepo *stubClienteRepo
	estoqueRepo *stubEstoqueRepo
	movRepo     *stubMovimentoRepo
	cliente     *model.Cliente
}

func newVendaFixture(t *testing.T) *vendaFixture {
	t.Helper()

	clienteRepo := newStubClienteRepo()
	cliente := &model.Cliente{Nome: "Ana Silva", Telefone: "11999990000", Endereco: "Rua A, 10"}
	require.NoError(t, clienteRepo.Create(context.Background(), cliente))

	estoqueRepo := newStubEstoqueRepo()
	estoqueRepo.setSaldo("Branco Extra", 10)
	estoqueRepo.setSaldo("Vermelho Jumbo", 6)

	vendaRepo := newStubVendaRepo()
	movRepo := &stubMovimentoRepo{}

	svc := service.NewVendaService(vendaRepo, clienteRepo, estoqueRepo, movRepo, nil)
	return &vendaFixture{
		svc:         svc,
		vendaRepo:   vendaRepo,
		clienteRepo: clienteRepo,
		estoqueRepo: estoqueRepo,
		movRepo:     movRepo,
		cliente:     cliente,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

// ── RegistrarVenda ────────────────────────────────────────────────────────────

func TestRegistrarVendaQuitadaDebitaEstoque(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           4,
		ValorUnitario: dec("15.00"),
		Pagamentos:    []dto.PagamentoRequest{{Canal: "pix", Valor: dec("60.00")}},
	})
	require.NoError(t, err)

	assertDecimal(t, "60.00", resp.Total)
	assertDecimal(t, "0", resp.Pendente)
	assert.True(t, resp.Quitada)
	assert.Equal(t, 6, f.estoqueRepo.saldo("Branco Extra"))

	// Movement log recorded the debit
	require.Len(t, f.movRepo.movimentos, 1)
	mov := f.movRepo.movimentos[0]
	assert.Equal(t, "venda", mov.Tipo)
	assert.Equal(t, -4, mov.Qtd)
	assert.Equal(t, 10, mov.SaldoAnterior)
	assert.Equal(t, 6, mov.SaldoNovo)
}

func TestRegistrarVendaParcialEDepoisPagamento(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           4,
		ValorUnitario: dec("15.00"),
		Pagamentos:    []dto.PagamentoRequest{{Canal: "pix", Valor: dec("20.00")}},
	})
	require.NoError(t, err)
	assertDecimal(t, "40.00", resp.Pendente)
	assert.False(t, resp.Quitada)

	vendaID := uuid.MustParse(resp.ID)
	resp, err = f.svc.RegistrarPagamento(context.Background(), vendaID, dto.RegistrarPagamentoRequest{
		Canal: "dinheiro",
		Valor: dec("40.00"),
	})
	require.NoError(t, err)
	assertDecimal(t, "0", resp.Pendente)
	assert.True(t, resp.Quitada)
	assertDecimal(t, "60.00", resp.Pago)

	// One bucket per channel
	require.Len(t, resp.Pagamentos, 2)
}

func TestRegistrarVendaSemPagamentoFicaAberta(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           2,
		ValorUnitario: dec("14.50"),
	})
	require.NoError(t, err)
	assertDecimal(t, "29.00", resp.Total)
	assertDecimal(t, "29.00", resp.Pendente)
	assert.False(t, resp.Quitada)
}

func TestRegistrarVendaEstoqueInsuficiente(t *testing.T) {
	f := newVendaFixture(t)

	_, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Vermelho Jumbo",
		Qtd:           12,
		ValorUnitario: dec("18.00"),
	})
	var estoqueErr *service.EstoqueInsuficienteError
	require.ErrorAs(t, err, &estoqueErr)
	assert.Equal(t, 6, estoqueErr.Disponivel)
	assert.Equal(t, 12, estoqueErr.Solicitado)
	assert.Contains(t, err.Error(), "disponível 6")

	// Stock untouched, nothing persisted
	assert.Equal(t, 6, f.estoqueRepo.saldo("Vermelho Jumbo"))
	assert.Empty(t, f.vendaRepo.vendas)
	assert.Empty(t, f.movRepo.movimentos)
}

func TestRegistrarVendaReferenciasInvalidas(t *testing.T) {
	f := newVendaFixture(t)

	_, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     uuid.NewString(),
		Produto:       "Branco Extra",
		Qtd:           1,
		ValorUnitario: dec("15.00"),
	})
	assert.ErrorIs(t, err, service.ErrClienteNaoEncontrado)

	_, err = f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Azul Gigante",
		Qtd:           1,
		ValorUnitario: dec("15.00"),
	})
	assert.ErrorIs(t, err, service.ErrProdutoNaoEncontrado)
}

func TestRegistrarVendaValoresInvalidos(t *testing.T) {
	f := newVendaFixture(t)

	casos := []dto.RegistrarVendaRequest{
		{ClienteID: f.cliente.ID.String(), Produto: "Branco Extra", Qtd: 0, ValorUnitario: dec("15.00")},
		{ClienteID: f.cliente.ID.String(), Produto: "Branco Extra", Qtd: -3, ValorUnitario: dec("15.00")},
		{ClienteID: f.cliente.ID.String(), Produto: "Branco Extra", Qtd: 1, ValorUnitario: dec("-1.00")},
		{ClienteID: f.cliente.ID.String(), Produto: "Branco Extra", Qtd: 1, ValorUnitario: dec("15.00"),
			Pagamentos: []dto.PagamentoRequest{{Canal: "pix", Valor: dec("0")}}},
	}
	for _, req := range casos {
		_, err := f.svc.RegistrarVenda(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrValorInvalido)
	}
	assert.Equal(t, 10, f.estoqueRepo.saldo("Branco Extra"))
}

// ── Overpayment clamp ─────────────────────────────────────────────────────────

func TestPagamentoExcedenteClampaPendenteEmZero(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           2,
		ValorUnitario: dec("15.00"),
		Pagamentos:    []dto.PagamentoRequest{{Canal: "pix", Valor: dec("50.00")}},
	})
	require.NoError(t, err)
	assertDecimal(t, "30.00", resp.Total)
	assertDecimal(t, "0", resp.Pendente)
	// The bucket keeps the full amount even past settlement
	assertDecimal(t, "50.00", resp.Pago)
}

func TestRegistrarPagamentoAcumulaNoMesmoCanal(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           4,
		ValorUnitario: dec("15.00"),
		Pagamentos:    []dto.PagamentoRequest{{Canal: "pix", Valor: dec("10.00")}},
	})
	require.NoError(t, err)
	vendaID := uuid.MustParse(resp.ID)

	resp, err = f.svc.RegistrarPagamento(context.Background(), vendaID, dto.RegistrarPagamentoRequest{
		Canal: "pix", Valor: dec("25.00"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Pagamentos, 1)
	assertDecimal(t, "35.00", resp.Pagamentos[0].Valor)
	assertDecimal(t, "25.00", resp.Pendente)
}

func TestRegistrarPagamentoVendaInexistente(t *testing.T) {
	f := newVendaFixture(t)

	_, err := f.svc.RegistrarPagamento(context.Background(), uuid.New(), dto.RegistrarPagamentoRequest{
		Canal: "pix", Valor: dec("10.00"),
	})
	assert.ErrorIs(t, err, service.ErrVendaNaoEncontrada)
}

// ── CorrigirVenda ─────────────────────────────────────────────────────────────

func TestCorrigirVendaRecalculaTotalEPendente(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           4,
		ValorUnitario: dec("15.00"),
		Pagamentos:    []dto.PagamentoRequest{{Canal: "pix", Valor: dec("20.00")}},
	})
	require.NoError(t, err)
	vendaID := uuid.MustParse(resp.ID)

	// Price correction: total follows valor_unitario × qtd, payments kept
	novoValor := dec("12.50")
	resp, err = f.svc.CorrigirVenda(context.Background(), vendaID, dto.CorrigirVendaRequest{
		ValorUnitario: &novoValor,
	})
	require.NoError(t, err)
	assertDecimal(t, "50.00", resp.Total)
	assertDecimal(t, "30.00", resp.Pendente)
	assert.Equal(t, 4, resp.Qtd)

	// Payment correction: buckets replaced, pendente re-derived
	novosPagamentos := []dto.PagamentoRequest{
		{Canal: "dinheiro", Valor: dec("30.00")},
		{Canal: "cartao", Valor: dec("20.00")},
	}
	resp, err = f.svc.CorrigirVenda(context.Background(), vendaID, dto.CorrigirVendaRequest{
		Pagamentos: &novosPagamentos,
	})
	require.NoError(t, err)
	assertDecimal(t, "0", resp.Pendente)
	assert.True(t, resp.Quitada)
	assertDecimal(t, "50.00", resp.Pago)
}

func TestCorrigirVendaValorNegativo(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           1,
		ValorUnitario: dec("15.00"),
	})
	require.NoError(t, err)

	negativo := dec("-5.00")
	_, err = f.svc.CorrigirVenda(context.Background(), uuid.MustParse(resp.ID), dto.CorrigirVendaRequest{
		ValorUnitario: &negativo,
	})
	assert.ErrorIs(t, err, service.ErrValorInvalido)
}

func TestCorrigirVendaInexistente(t *testing.T) {
	f := newVendaFixture(t)

	_, err := f.svc.CorrigirVenda(context.Background(), uuid.New(), dto.CorrigirVendaRequest{})
	assert.ErrorIs(t, err, service.ErrVendaNaoEncontrada)
}

// ── EstornarVenda ─────────────────────────────────────────────────────────────

func TestEstornarVendaDevolveEstoqueUmaVez(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           4,
		ValorUnitario: dec("15.00"),
		Pagamentos:    []dto.PagamentoRequest{{Canal: "pix", Valor: dec("60.00")}},
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.estoqueRepo.saldo("Branco Extra"))
	vendaID := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.EstornarVenda(context.Background(), vendaID))
	assert.Equal(t, 10, f.estoqueRepo.saldo("Branco Extra"))

	// Sale is gone
	_, err = f.svc.ObterVenda(context.Background(), vendaID)
	assert.ErrorIs(t, err, service.ErrVendaNaoEncontrada)

	// Second estorno fails and does NOT credit stock again
	err = f.svc.EstornarVenda(context.Background(), vendaID)
	assert.ErrorIs(t, err, service.ErrVendaNaoEncontrada)
	assert.Equal(t, 10, f.estoqueRepo.saldo("Branco Extra"))

	// Movement log: one debit, one credit
	require.Len(t, f.movRepo.movimentos, 2)
	assert.Equal(t, "estorno", f.movRepo.movimentos[1].Tipo)
	assert.Equal(t, 4, f.movRepo.movimentos[1].Qtd)
}

// ── ListarVendas ──────────────────────────────────────────────────────────────

func TestListarVendasFiltraPorSituacao(t *testing.T) {
	f := newVendaFixture(t)

	_, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID: f.cliente.ID.String(), Produto: "Branco Extra", Qtd: 1,
		ValorUnitario: dec("15.00"),
		Pagamentos:    []dto.PagamentoRequest{{Canal: "pix", Valor: dec("15.00")}},
	})
	require.NoError(t, err)
	_, err = f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID: f.cliente.ID.String(), Produto: "Branco Extra", Qtd: 2,
		ValorUnitario: dec("15.00"),
	})
	require.NoError(t, err)

	abertas, err := f.svc.ListarVendas(context.Background(), dto.VendaFilter{Situacao: "abertas", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), abertas.Total)

	quitadas, err := f.svc.ListarVendas(context.Background(), dto.VendaFilter{Situacao: "quitadas", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), quitadas.Total)

	todas, err := f.svc.ListarVendas(context.Background(), dto.VendaFilter{Situacao: "all", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), todas.Total)
}

// Invariant check over a longer mutation sequence: pendente always equals
// max(0, total − Σ pagamentos).
func TestInvarianteDePendenteAoLongoDaVida(t *testing.T) {
	f := newVendaFixture(t)

	resp, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           5,
		ValorUnitario: dec("10.00"),
	})
	require.NoError(t, err)
	vendaID := uuid.MustParse(resp.ID)

	passos := []dto.RegistrarPagamentoRequest{
		{Canal: "pix", Valor: dec("12.00")},
		{Canal: "dinheiro", Valor: dec("5.50")},
		{Canal: "pix", Valor: dec("40.00")}, // drives past total
	}
	for _, p := range passos {
		resp, err = f.svc.RegistrarPagamento(context.Background(), vendaID, p)
		require.NoError(t, err)

		esperado := resp.Total.Sub(resp.Pago)
		if esperado.IsNegative() {
			esperado = decimal.Zero
		}
		assert.True(t, esperado.Equal(resp.Pendente),
			"pendente %s != max(0, total-pago) %s", resp.Pendente, esperado)
	}
	assertDecimal(t, "0", resp.Pendente)
	assertDecimal(t, "57.50", resp.Pago)
}

func TestErroTaxonomiaEhRecuperavel(t *testing.T) {
	// All ledger errors are typed and distinguishable by the edge layer.
	f := newVendaFixture(t)

	_, err := f.svc.ObterVenda(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, service.ErrVendaNaoEncontrada))
}
