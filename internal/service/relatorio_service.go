package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const resumoCacheKey = "relatorio:resumo"

// RelatorioService serves the read-only aggregates the dashboard shows.
// These reads have no invariants beyond reflecting committed state, so the
// resumo is cached in Redis with a short TTL; every ledger write invalidates
// it. Cache failures degrade to a direct query, never an error.
type RelatorioService interface {
	Resumo(ctx context.Context) (*dto.ResumoResponse, error)
	Diario(ctx context.Context, filter dto.RelatorioDiarioFilter) (*dto.RelatorioDiarioResponse, error)
	// Invalidar drops cached aggregates; write services call it after commit.
	Invalidar(ctx context.Context)
}

type relatorioService struct {
	vendaRepo   repository.VendaRepository
	clienteRepo repository.ClienteRepository
	despesaRepo repository.DespesaRepository
	rdb         *redis.Client
	ttl         time.Duration
}

func NewRelatorioService(
	vendaRepo repository.VendaRepository,
	clienteRepo repository.ClienteRepository,
	despesaRepo repository.DespesaRepository,
	rdb *redis.Client,
	ttl time.Duration,
) RelatorioService {
	return &relatorioService{
		vendaRepo:   vendaRepo,
		clienteRepo: clienteRepo,
		despesaRepo: despesaRepo,
		rdb:         rdb,
		ttl:         ttl,
	}
}

func (s *relatorioService) Resumo(ctx context.Context) (*dto.ResumoResponse, error) {
	if cached := s.lerCache(ctx); cached != nil {
		return cached, nil
	}

	totais, err := s.vendaRepo.Totais(ctx)
	if err != nil {
		return nil, err
	}
	clientes, err := s.clienteRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	despesas, err := s.despesaRepo.SumPeriodo(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	resumo := &dto.ResumoResponse{
		FaturamentoTotal: totais.Faturamento,
		ContasAReceber:   totais.Pendente,
		VendasRealizadas: totais.Vendas,
		Clientes:         clientes,
		TotalDespesas:    despesas,
		Saldo:            totais.Faturamento.Sub(despesas),
	}

	s.gravarCache(ctx, resumo)
	return resumo, nil
}

func (s *relatorioService) Diario(ctx context.Context, filter dto.RelatorioDiarioFilter) (*dto.RelatorioDiarioResponse, error) {
	de, ate, err := parsePeriodo(filter.De, filter.Ate)
	if err != nil {
		return nil, err
	}

	dias, err := s.vendaRepo.SumPorDia(ctx, de, ate)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DiaResumo, 0, len(dias))
	for _, d := range dias {
		out = append(out, dto.DiaResumo{
			Data:          d.Data.Format("2006-01-02"),
			TotalVendido:  d.Total,
			TotalRecebido: d.Total.Sub(d.Pendente),
			Pendente:      d.Pendente,
			Vendas:        d.Vendas,
		})
	}
	return &dto.RelatorioDiarioResponse{Dias: out}, nil
}

func (s *relatorioService) Invalidar(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, resumoCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("falha ao invalidar cache de relatório")
	}
}

func (s *relatorioService) lerCache(ctx context.Context) *dto.ResumoResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, resumoCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var resumo dto.ResumoResponse
	if err := json.Unmarshal(raw, &resumo); err != nil {
		return nil
	}
	return &resumo
}

func (s *relatorioService) gravarCache(ctx context.Context, resumo *dto.ResumoResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resumo)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, resumoCacheKey, raw, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("falha ao gravar cache de relatório")
	}
}
