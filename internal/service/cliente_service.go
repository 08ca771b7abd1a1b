package service

import (
	"context"
	"fmt"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/model"
	"github.com/nplaytv001-byte/vendas-ovos/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo      repository.ClienteRepository
	vendaRepo repository.VendaRepository
	cache     cacheInvalidator
}

func NewClienteService(repo repository.ClienteRepository, vendaRepo repository.VendaRepository, cache cacheInvalidator) ClienteService {
	return &clienteService{repo: repo, vendaRepo: vendaRepo, cache: cache}
}

func (s *clienteService) Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	if existing, err := s.repo.FindByNome(ctx, req.Nome); err == nil && existing != nil {
		return nil, fmt.Errorf("já existe um cliente com o nome %q", req.Nome)
	}

	cliente := &model.Cliente{
		Nome:     req.Nome,
		Telefone: req.Telefone,
		Endereco: req.Endereco,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClienteNaoEncontrado
		}
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClienteNaoEncontrado
		}
		return nil, err
	}

	cliente.Nome = req.Nome
	cliente.Telefone = req.Telefone
	cliente.Endereco = req.Endereco
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

// Excluir removes a customer. Customers with sale history cannot be removed
// (restrict policy): historical vendas keep a hard reference and the report
// joins would silently drop their rows otherwise.
func (s *clienteService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrClienteNaoEncontrado
		}
		return err
	}

	vendas, err := s.vendaRepo.CountByCliente(ctx, id)
	if err != nil {
		return err
	}
	if vendas > 0 {
		return fmt.Errorf("%w (%d vendas)", ErrClienteComVendas, vendas)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	return nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Nome:      c.Nome,
		Telefone:  c.Telefone,
		Endereco:  c.Endereco,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
