package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/model"
	"github.com/nplaytv001-byte/vendas-ovos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendaService owns the sale settlement ledger: the monetary invariants of a
// sale over its whole lifetime.
//
//	total    = valor_unitario × qtd        (recomputed on every mutation)
//	pendente = max(0, total − Σ pagamentos) (overpayment clamps to zero)
//
// Stock debits/credits and sale writes always land in the same transaction:
// either all effects commit or none do.
type VendaService interface {
	RegistrarVenda(ctx context.Context, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	RegistrarPagamento(ctx context.Context, vendaID uuid.UUID, req dto.RegistrarPagamentoRequest) (*dto.VendaResponse, error)
	CorrigirVenda(ctx context.Context, vendaID uuid.UUID, req dto.CorrigirVendaRequest) (*dto.VendaResponse, error)
	EstornarVenda(ctx context.Context, vendaID uuid.UUID) error
	ObterVenda(ctx context.Context, vendaID uuid.UUID) (*dto.VendaResponse, error)
	ListarVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
}

// cacheInvalidator drops cached report aggregates after a ledger write.
// A nil invalidator is a no-op (unit test mode).
type cacheInvalidator interface {
	Invalidar(ctx context.Context)
}

type vendaService struct {
	repo        repository.VendaRepository
	clienteRepo repository.ClienteRepository
	estoqueRepo repository.EstoqueRepository
	movRepo     repository.MovimentoEstoqueRepository
	cache       cacheInvalidator
}

func NewVendaService(
	repo repository.VendaRepository,
	clienteRepo repository.ClienteRepository,
	estoqueRepo repository.EstoqueRepository,
	movRepo repository.MovimentoEstoqueRepository,
	cache cacheInvalidator,
) VendaService {
	return &vendaService{
		repo:        repo,
		clienteRepo: clienteRepo,
		estoqueRepo: estoqueRepo,
		movRepo:     movRepo,
		cache:       cache,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// clampPendente derives the outstanding balance, never negative.
func clampPendente(total, pago decimal.Decimal) decimal.Decimal {
	pendente := total.Sub(pago)
	if pendente.IsNegative() {
		return decimal.Zero
	}
	return pendente
}

// somarPorCanal folds a payment list into one bucket per channel.
func somarPorCanal(pagamentos []dto.PagamentoRequest) (map[string]decimal.Decimal, error) {
	buckets := make(map[string]decimal.Decimal, len(pagamentos))
	for _, p := range pagamentos {
		if !p.Valor.IsPositive() {
			return nil, fmt.Errorf("pagamento %s deve ser maior que zero: %w", p.Canal, ErrValorInvalido)
		}
		buckets[p.Canal] = buckets[p.Canal].Add(p.Valor)
	}
	return buckets, nil
}

func bucketsToModels(vendaID uuid.UUID, buckets map[string]decimal.Decimal) []model.VendaPagamento {
	canais := make([]string, 0, len(buckets))
	for canal := range buckets {
		canais = append(canais, canal)
	}
	sort.Strings(canais)

	pagamentos := make([]model.VendaPagamento, 0, len(canais))
	for _, canal := range canais {
		pagamentos = append(pagamentos, model.VendaPagamento{
			VendaID: vendaID,
			Canal:   canal,
			Valor:   buckets[canal],
		})
	}
	return pagamentos
}

// ── RegistrarVenda ────────────────────────────────────────────────────────────
// One ACID transaction: debit stock (constrained update), insert the sale
// with its payment buckets, record the stock movement. Pre-flight reference
// resolution happens outside the transaction; the constrained debit inside
// it closes the check-then-act race.

func (s *vendaService) RegistrarVenda(ctx context.Context, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	if req.Qtd <= 0 {
		return nil, fmt.Errorf("quantidade deve ser maior que zero: %w", ErrValorInvalido)
	}
	if req.ValorUnitario.IsNegative() {
		return nil, fmt.Errorf("preço unitário não pode ser negativo: %w", ErrValorInvalido)
	}
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", ErrClienteNaoEncontrado)
	}

	buckets, err := somarPorCanal(req.Pagamentos)
	if err != nil {
		return nil, err
	}

	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClienteNaoEncontrado
		}
		return nil, err
	}

	item, err := s.estoqueRepo.FindByProduto(ctx, req.Produto)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, err
	}
	if item.Qtd < req.Qtd {
		return nil, &EstoqueInsuficienteError{Produto: req.Produto, Disponivel: item.Qtd, Solicitado: req.Qtd}
	}

	qtdDec := decimal.NewFromInt(int64(req.Qtd))
	total := req.ValorUnitario.Mul(qtdDec)
	pago := decimal.Zero
	for _, valor := range buckets {
		pago = pago.Add(valor)
	}

	venda := model.Venda{
		ClienteID:     clienteID,
		Produto:       req.Produto,
		Data:          time.Now().Truncate(24 * time.Hour),
		ValorUnitario: req.ValorUnitario,
		Qtd:           req.Qtd,
		Total:         total,
		Pendente:      clampPendente(total, pago),
	}
	venda.Pagamentos = bucketsToModels(venda.ID, buckets)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.estoqueRepo.DebitarSeDisponivelTx(tx, req.Produto, req.Qtd)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the race since the pre-flight read — re-read for an
			// accurate availability in the message.
			atual, err := s.estoqueRepo.FindByProduto(ctx, req.Produto)
			disponivel := 0
			if err == nil {
				disponivel = atual.Qtd
			}
			return &EstoqueInsuficienteError{Produto: req.Produto, Disponivel: disponivel, Solicitado: req.Qtd}
		}

		if err := s.repo.Create(ctx, tx, &venda); err != nil {
			return err
		}

		vendaRef := venda.ID
		return s.movRepo.CreateTx(tx, &model.MovimentoEstoque{
			Produto:       req.Produto,
			Tipo:          "venda",
			Qtd:           -req.Qtd,
			SaldoAnterior: item.Qtd,
			SaldoNovo:     item.Qtd - req.Qtd,
			Motivo:        fmt.Sprintf("Venda para %s", cliente.Nome),
			VendaID:       &vendaRef,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidarCache(ctx)
	venda.Cliente = cliente
	return vendaToResponse(&venda), nil
}

// ── RegistrarPagamento ────────────────────────────────────────────────────────
// Accumulates valor on the channel bucket and re-derives pendente. Payments
// above the outstanding balance are accepted; pendente just clamps to zero.

func (s *vendaService) RegistrarPagamento(ctx context.Context, vendaID uuid.UUID, req dto.RegistrarPagamentoRequest) (*dto.VendaResponse, error) {
	if !req.Valor.IsPositive() {
		return nil, fmt.Errorf("pagamento deve ser maior que zero: %w", ErrValorInvalido)
	}

	venda, err := s.repo.FindByID(ctx, vendaID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVendaNaoEncontrada
		}
		return nil, err
	}

	buckets := make(map[string]decimal.Decimal, len(venda.Pagamentos)+1)
	for _, p := range venda.Pagamentos {
		buckets[p.Canal] = buckets[p.Canal].Add(p.Valor)
	}
	buckets[req.Canal] = buckets[req.Canal].Add(req.Valor)

	return s.salvarPagamentos(ctx, venda, venda.ValorUnitario, buckets)
}

// ── CorrigirVenda ─────────────────────────────────────────────────────────────
// Edits unit price and/or the payment set; total and pendente are always
// re-derived. Quantity and product stay fixed — a wrong quantity is fixed by
// reversing and re-registering the sale.

func (s *vendaService) CorrigirVenda(ctx context.Context, vendaID uuid.UUID, req dto.CorrigirVendaRequest) (*dto.VendaResponse, error) {
	venda, err := s.repo.FindByID(ctx, vendaID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVendaNaoEncontrada
		}
		return nil, err
	}

	valorUnitario := venda.ValorUnitario
	if req.ValorUnitario != nil {
		if req.ValorUnitario.IsNegative() {
			return nil, fmt.Errorf("preço unitário não pode ser negativo: %w", ErrValorInvalido)
		}
		valorUnitario = *req.ValorUnitario
	}

	var buckets map[string]decimal.Decimal
	if req.Pagamentos != nil {
		buckets, err = somarPorCanal(*req.Pagamentos)
		if err != nil {
			return nil, err
		}
	} else {
		buckets = make(map[string]decimal.Decimal, len(venda.Pagamentos))
		for _, p := range venda.Pagamentos {
			buckets[p.Canal] = buckets[p.Canal].Add(p.Valor)
		}
	}

	return s.salvarPagamentos(ctx, venda, valorUnitario, buckets)
}

// salvarPagamentos re-derives total/pendente from the bucket set and persists
// sale values and payment rows in one transaction.
func (s *vendaService) salvarPagamentos(ctx context.Context, venda *model.Venda, valorUnitario decimal.Decimal, buckets map[string]decimal.Decimal) (*dto.VendaResponse, error) {
	total := valorUnitario.Mul(decimal.NewFromInt(int64(venda.Qtd)))
	pago := decimal.Zero
	for _, valor := range buckets {
		pago = pago.Add(valor)
	}
	pendente := clampPendente(total, pago)
	pagamentos := bucketsToModels(venda.ID, buckets)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateValoresTx(tx, venda.ID, valorUnitario, total, pendente); err != nil {
			if isNotFound(err) {
				return ErrVendaNaoEncontrada
			}
			return err
		}
		return s.repo.ReplacePagamentosTx(tx, venda.ID, pagamentos)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidarCache(ctx)

	venda.ValorUnitario = valorUnitario
	venda.Total = total
	venda.Pendente = pendente
	venda.Pagamentos = pagamentos
	return vendaToResponse(venda), nil
}

// ── EstornarVenda ─────────────────────────────────────────────────────────────
// Credits the stock the sale consumed and deletes the sale, atomically.
// The delete runs first inside the transaction, so a second estorno finds no
// sale and fails with ErrVendaNaoEncontrada — stock is credited exactly once.

func (s *vendaService) EstornarVenda(ctx context.Context, vendaID uuid.UUID) error {
	venda, err := s.repo.FindByID(ctx, vendaID)
	if err != nil {
		if isNotFound(err) {
			return ErrVendaNaoEncontrada
		}
		return err
	}

	saldoAnterior := 0
	if item, err := s.estoqueRepo.FindByProduto(ctx, venda.Produto); err == nil {
		saldoAnterior = item.Qtd
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, venda.ID); err != nil {
			if isNotFound(err) {
				return ErrVendaNaoEncontrada
			}
			return err
		}
		if err := s.estoqueRepo.CreditarTx(tx, venda.Produto, venda.Qtd); err != nil {
			return err
		}

		vendaRef := venda.ID
		return s.movRepo.CreateTx(tx, &model.MovimentoEstoque{
			Produto:       venda.Produto,
			Tipo:          "estorno",
			Qtd:           venda.Qtd,
			SaldoAnterior: saldoAnterior,
			SaldoNovo:     saldoAnterior + venda.Qtd,
			Motivo:        "Estorno de venda",
			VendaID:       &vendaRef,
		})
	})
	if txErr != nil {
		return txErr
	}

	s.invalidarCache(ctx)
	return nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *vendaService) ObterVenda(ctx context.Context, vendaID uuid.UUID) (*dto.VendaResponse, error) {
	venda, err := s.repo.FindByID(ctx, vendaID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVendaNaoEncontrada
		}
		return nil, err
	}
	return vendaToResponse(venda), nil
}

// ListarVendas returns a paginated list filtered by date and settlement state.
func (s *vendaService) ListarVendas(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	vendas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		items = append(items, *vendaToResponse(&vendas[i]))
	}
	return &dto.VendaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *vendaService) invalidarCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	pagamentos := make([]dto.PagamentoRequest, 0, len(v.Pagamentos))
	for _, p := range v.Pagamentos {
		pagamentos = append(pagamentos, dto.PagamentoRequest{Canal: p.Canal, Valor: p.Valor})
	}
	clienteNome := ""
	if v.Cliente != nil {
		clienteNome = v.Cliente.Nome
	}
	return &dto.VendaResponse{
		ID:            v.ID.String(),
		ClienteID:     v.ClienteID.String(),
		Cliente:       clienteNome,
		Produto:       v.Produto,
		Data:          v.Data.Format("2006-01-02"),
		Qtd:           v.Qtd,
		ValorUnitario: v.ValorUnitario,
		Total:         v.Total,
		Pago:          v.TotalPago(),
		Pendente:      v.Pendente,
		Quitada:       v.Quitada(),
		Pagamentos:    pagamentos,
		CreatedAt:     v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
