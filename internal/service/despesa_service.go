package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/model"
	"github.com/nplaytv001-byte/vendas-ovos/internal/repository"

	"github.com/google/uuid"
)

type DespesaService interface {
	Criar(ctx context.Context, req dto.DespesaRequest) (*dto.DespesaResponse, error)
	Listar(ctx context.Context, filter dto.DespesaFilter) ([]dto.DespesaResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type despesaService struct {
	repo  repository.DespesaRepository
	cache cacheInvalidator
}

func NewDespesaService(repo repository.DespesaRepository, cache cacheInvalidator) DespesaService {
	return &despesaService{repo: repo, cache: cache}
}

func (s *despesaService) Criar(ctx context.Context, req dto.DespesaRequest) (*dto.DespesaResponse, error) {
	if !req.Valor.IsPositive() {
		return nil, fmt.Errorf("despesa deve ser maior que zero: %w", ErrValorInvalido)
	}
	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		return nil, fmt.Errorf("data inválida: %w", ErrValorInvalido)
	}

	despesa := &model.Despesa{
		Data:      data,
		Descricao: req.Descricao,
		Valor:     req.Valor,
	}
	if err := s.repo.Create(ctx, despesa); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	return despesaToResponse(despesa), nil
}

func (s *despesaService) Listar(ctx context.Context, filter dto.DespesaFilter) ([]dto.DespesaResponse, error) {
	de, ate, err := parsePeriodo(filter.De, filter.Ate)
	if err != nil {
		return nil, err
	}
	despesas, err := s.repo.List(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DespesaResponse, 0, len(despesas))
	for i := range despesas {
		out = append(out, *despesaToResponse(&despesas[i]))
	}
	return out, nil
}

func (s *despesaService) Excluir(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrDespesaNaoEncontrada
		}
		return err
	}
	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	return nil
}

// parsePeriodo converts optional YYYY-MM-DD bounds into time pointers.
func parsePeriodo(de, ate string) (*time.Time, *time.Time, error) {
	var dePtr, atePtr *time.Time
	if de != "" {
		t, err := time.Parse("2006-01-02", de)
		if err != nil {
			return nil, nil, fmt.Errorf("data inicial inválida: %w", ErrValorInvalido)
		}
		dePtr = &t
	}
	if ate != "" {
		t, err := time.Parse("2006-01-02", ate)
		if err != nil {
			return nil, nil, fmt.Errorf("data final inválida: %w", ErrValorInvalido)
		}
		atePtr = &t
	}
	return dePtr, atePtr, nil
}

func despesaToResponse(d *model.Despesa) *dto.DespesaResponse {
	return &dto.DespesaResponse{
		ID:        d.ID.String(),
		Data:      d.Data.Format("2006-01-02"),
		Descricao: d.Descricao,
		Valor:     d.Valor,
	}
}
