package service

import (
	"context"
	"fmt"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/model"
	"github.com/nplaytv001-byte/vendas-ovos/internal/repository"

	"gorm.io/gorm"
)

// Produtos is the fixed tray catalog: every cor × tamanho the business sells.
var Produtos = []string{
	"Branco Extra", "Vermelho Extra",
	"Branco Grande", "Vermelho Grande",
	"Branco Médio", "Vermelho Médio",
	"Branco Jumbo", "Vermelho Jumbo",
}

type EstoqueService interface {
	RegistrarEntrada(ctx context.Context, req dto.EntradaEstoqueRequest) (*dto.ItemEstoqueResponse, error)
	Listar(ctx context.Context) ([]dto.ItemEstoqueResponse, error)
	ListarMovimentos(ctx context.Context, filter dto.MovimentoFilter) ([]dto.MovimentoEstoqueResponse, error)
}

type estoqueService struct {
	repo    repository.EstoqueRepository
	movRepo repository.MovimentoEstoqueRepository
	cache   cacheInvalidator
}

func NewEstoqueService(repo repository.EstoqueRepository, movRepo repository.MovimentoEstoqueRepository, cache cacheInvalidator) EstoqueService {
	return &estoqueService{repo: repo, movRepo: movRepo, cache: cache}
}

// RegistrarEntrada credits a stock receipt and records the movement in the
// same transaction.
func (s *estoqueService) RegistrarEntrada(ctx context.Context, req dto.EntradaEstoqueRequest) (*dto.ItemEstoqueResponse, error) {
	if req.Qtd <= 0 {
		return nil, fmt.Errorf("quantidade deve ser maior que zero: %w", ErrValorInvalido)
	}

	item, err := s.repo.FindByProduto(ctx, req.Produto)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, err
	}

	motivo := req.Motivo
	if motivo == "" {
		motivo = "Entrada de estoque"
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreditarTx(tx, req.Produto, req.Qtd); err != nil {
			return err
		}
		return s.movRepo.CreateTx(tx, &model.MovimentoEstoque{
			Produto:       req.Produto,
			Tipo:          "entrada",
			Qtd:           req.Qtd,
			SaldoAnterior: item.Qtd,
			SaldoNovo:     item.Qtd + req.Qtd,
			Motivo:        motivo,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	return &dto.ItemEstoqueResponse{Produto: req.Produto, Qtd: item.Qtd + req.Qtd}, nil
}

func (s *estoqueService) Listar(ctx context.Context) ([]dto.ItemEstoqueResponse, error) {
	itens, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemEstoqueResponse, 0, len(itens))
	for _, item := range itens {
		out = append(out, dto.ItemEstoqueResponse{Produto: item.Produto, Qtd: item.Qtd})
	}
	return out, nil
}

func (s *estoqueService) ListarMovimentos(ctx context.Context, filter dto.MovimentoFilter) ([]dto.MovimentoEstoqueResponse, error) {
	movs, err := s.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoEstoqueResponse, 0, len(movs))
	for _, m := range movs {
		var vendaID *string
		if m.VendaID != nil {
			id := m.VendaID.String()
			vendaID = &id
		}
		out = append(out, dto.MovimentoEstoqueResponse{
			ID:            m.ID.String(),
			Produto:       m.Produto,
			Tipo:          m.Tipo,
			Qtd:           m.Qtd,
			SaldoAnterior: m.SaldoAnterior,
			SaldoNovo:     m.SaldoNovo,
			Motivo:        m.Motivo,
			VendaID:       vendaID,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}
