package router

import (
	"time"

	"orcaobra/internal/config"
	"orcaobra/internal/handler"
	"orcaobra/internal/infra"
	"orcaobra/internal/middleware"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New returns a configured Gin engine over an already wired service graph.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, erpCB *infra.CircuitBreaker, svc *Servicos) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitRPM, time.Minute))

	// ── Handlers ─────────────────────────────────────────────────────────────
	maoObraH := handler.NewMaoObraHandler(svc.MaoObra)
	orcamentoH := handler.NewOrcamentoHandler(svc.Orcamento)
	fluxoH := handler.NewFluxoCaixaHandler(svc.FluxoCaixa, svc.Histograma)
	recalculoH := handler.NewRecalculoHandler(svc.Recalculo)
	dreH := handler.NewDREHandler(svc.DRE)
	financeiroH := handler.NewFinanceiroHandler(svc.Financeiro, svc.Sincronizacao)
	dlqH := handler.NewDLQHandler(rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, erpCB))

	leitura := middleware.RequireRole(middleware.RolOrcamentista, middleware.RolFinanceiro, middleware.RolLeitor)
	orcamentista := middleware.RequireRole(middleware.RolOrcamentista)
	financeiro := middleware.RequireRole(middleware.RolFinanceiro)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		rev := v1.Group("/revisoes/:id")
		{
			rev.GET("/mao-obra/custos", leitura, maoObraH.ListarCustos)
			rev.GET("/itens", leitura, orcamentoH.ListarItens)
			rev.GET("/resumo", leitura, orcamentoH.ObterResumo)
			rev.GET("/resumo/pdf", leitura, orcamentoH.ResumoPDF)
			rev.GET("/fluxo-caixa", leitura, fluxoH.Listar)
			rev.GET("/histograma", leitura, fluxoH.Histograma)
			rev.GET("/histograma/csv", leitura, fluxoH.HistogramaCSV)

			rev.POST("/mao-obra/recalcular", orcamentista, maoObraH.Recalcular)
			rev.POST("/itens", orcamentista, orcamentoH.CriarItem)
			rev.DELETE("/itens/:item_id", orcamentista, orcamentoH.RemoverItem)
			rev.POST("/resumo/recalcular", orcamentista, orcamentoH.RecalcularResumo)
			rev.POST("/fluxo-caixa", orcamentista, fluxoH.Gerar)
			rev.POST("/recalcular", orcamentista, middleware.JobRateLimiter(10, time.Minute), recalculoH.Agendar)
		}

		dre := v1.Group("/dre/:ano", leitura)
		{
			dre.GET("", dreH.Relatorio)
			dre.GET("/csv", dreH.CSV)
			dre.GET("/pdf", dreH.PDF)
			dre.GET("/nao-mapeadas", dreH.NaoMapeadas)
		}

		v1.GET("/categorias-mapeamento", leitura, dreH.ListarMapeamentos)
		v1.PUT("/categorias-mapeamento", financeiro, dreH.SalvarMapeamento)

		v1.GET("/financeiro/aging", leitura, financeiroH.Aging)
		v1.POST("/financeiro/sincronizar", financeiro, financeiroH.Sincronizar)

		// admin only
		v1.GET("/dlq/:fila", middleware.RequireRole(), dlqH.Listar)
	}

	// Swagger UI outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
