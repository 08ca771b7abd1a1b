package router

import (
	"time"

	"github.com/nplaytv001-byte/vendas-ovos/internal/config"
	"github.com/nplaytv001-byte/vendas-ovos/internal/handler"
	"github.com/nplaytv001-byte/vendas-ovos/internal/middleware"
	"github.com/nplaytv001-byte/vendas-ovos/internal/repository"
	"github.com/nplaytv001-byte/vendas-ovos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	estoqueRepo := repository.NewEstoqueRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	movRepo := repository.NewMovimentoEstoqueRepository(db)
	despesaRepo := repository.NewDespesaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// relatorioSvc doubles as the cache invalidator the write services call.
	relatorioSvc := service.NewRelatorioService(vendaRepo, clienteRepo, despesaRepo, rdb, cfg.RelatorioCacheTTL)
	clienteSvc := service.NewClienteService(clienteRepo, vendaRepo, relatorioSvc)
	estoqueSvc := service.NewEstoqueService(estoqueRepo, movRepo, relatorioSvc)
	vendaSvc := service.NewVendaService(vendaRepo, clienteRepo, estoqueRepo, movRepo, relatorioSvc)
	despesaSvc := service.NewDespesaService(despesaRepo, relatorioSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	clientesH := handler.NewClientesHandler(clienteSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	vendasH := handler.NewVendasHandler(vendaSvc, vendaRepo)
	despesasH := handler.NewDespesasHandler(despesaSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Criar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObterPorID)
			clientes.PUT("/:id", clientesH.Atualizar)
			clientes.DELETE("/:id", clientesH.Excluir)
		}

		estoque := v1.Group("/estoque")
		{
			estoque.GET("", estoqueH.Listar)
			estoque.POST("/entradas", estoqueH.RegistrarEntrada)
			estoque.GET("/movimentos", estoqueH.ListarMovimentos)
		}

		vendas := v1.Group("/vendas")
		{
			vendas.POST("", vendasH.RegistrarVenda)
			vendas.GET("", vendasH.ListarVendas)
			vendas.GET("/:id", vendasH.ObterVenda)
			vendas.PATCH("/:id", vendasH.CorrigirVenda)
			vendas.DELETE("/:id", vendasH.EstornarVenda)
			vendas.POST("/:id/pagamentos", vendasH.RegistrarPagamento)
			vendas.GET("/:id/recibo", vendasH.BaixarRecibo)
		}

		despesas := v1.Group("/despesas")
		{
			despesas.POST("", despesasH.Criar)
			despesas.GET("", despesasH.Listar)
			despesas.DELETE("/:id", despesasH.Excluir)
		}

		relatorios := v1.Group("/relatorios")
		{
			relatorios.GET("/resumo", relatoriosH.Resumo)
			relatorios.GET("/diario", relatoriosH.Diario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
