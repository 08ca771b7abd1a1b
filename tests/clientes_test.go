package tests

import (
	"context"
	"testing"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildClienteSvc(t *testing.T) (service.ClienteService, *stubClienteRepo, *stubVendaRepo) {
	t.Helper()
	clienteRepo := newStubClienteRepo()
	vendaRepo := newStubVendaRepo()
	return service.NewClienteService(clienteRepo, vendaRepo, nil), clienteRepo, vendaRepo
}

func TestCriarEListarClientes(t *testing.T) {
	svc, _, _ := buildClienteSvc(t)

	resp, err := svc.Criar(context.Background(), dto.ClienteRequest{
		Nome:     "Padaria do Zé",
		Telefone: "11988887777",
		Endereco: "Av. Central, 200",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Padaria do Zé", resp.Nome)

	lista, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, resp.ID, lista[0].ID)
}

func TestCriarClienteNomeDuplicado(t *testing.T) {
	svc, _, _ := buildClienteSvc(t)

	_, err := svc.Criar(context.Background(), dto.ClienteRequest{Nome: "Mercadinho Bela Vista"})
	require.NoError(t, err)

	_, err = svc.Criar(context.Background(), dto.ClienteRequest{Nome: "Mercadinho Bela Vista"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "já existe")
}

func TestAtualizarCliente(t *testing.T) {
	svc, _, _ := buildClienteSvc(t)

	resp, err := svc.Criar(context.Background(), dto.ClienteRequest{Nome: "Ana", Telefone: "11911112222"})
	require.NoError(t, err)

	atualizado, err := svc.Atualizar(context.Background(), uuid.MustParse(resp.ID), dto.ClienteRequest{
		Nome:     "Ana Souza",
		Telefone: "11933334444",
		Endereco: "Rua Nova, 5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", atualizado.Nome)
	assert.Equal(t, "11933334444", atualizado.Telefone)

	_, err = svc.Atualizar(context.Background(), uuid.New(), dto.ClienteRequest{Nome: "Ninguém"})
	assert.ErrorIs(t, err, service.ErrClienteNaoEncontrado)
}

func TestExcluirClienteSemVendas(t *testing.T) {
	svc, _, _ := buildClienteSvc(t)

	resp, err := svc.Criar(context.Background(), dto.ClienteRequest{Nome: "Cliente Sem Compras"})
	require.NoError(t, err)

	require.NoError(t, svc.Excluir(context.Background(), uuid.MustParse(resp.ID)))

	_, err = svc.ObterPorID(context.Background(), uuid.MustParse(resp.ID))
	assert.ErrorIs(t, err, service.ErrClienteNaoEncontrado)
}

func TestExcluirClienteComVendasEhBloqueado(t *testing.T) {
	f := newVendaFixture(t)

	_, err := f.svc.RegistrarVenda(context.Background(), dto.RegistrarVendaRequest{
		ClienteID:     f.cliente.ID.String(),
		Produto:       "Branco Extra",
		Qtd:           1,
		ValorUnitario: dec("15.00"),
	})
	require.NoError(t, err)

	clienteSvc := service.NewClienteService(f.clienteRepo, f.vendaRepo, nil)
	err = clienteSvc.Excluir(context.Background(), f.cliente.ID)
	assert.ErrorIs(t, err, service.ErrClienteComVendas)
	assert.Contains(t, err.Error(), "1 vendas")

	// Customer is still there
	_, err = clienteSvc.ObterPorID(context.Background(), f.cliente.ID)
	assert.NoError(t, err)
}
