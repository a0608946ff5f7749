package router

import (
	"orcaobra/internal/calculo"
	"orcaobra/internal/config"
	"orcaobra/internal/infra"
	"orcaobra/internal/repository"
	"orcaobra/internal/service"
	"orcaobra/internal/worker"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Servicos is the service graph shared by the HTTP routes, the worker pool
// and the ERP sync goroutine.
type Servicos struct {
	Dispatcher    *worker.Dispatcher
	MaoObra       service.MaoObraService
	Orcamento     service.OrcamentoService
	FluxoCaixa    service.FluxoCaixaService
	Histograma    service.HistogramaService
	Recalculo     service.RecalculoService
	DRE           service.DREService
	Financeiro    service.FinanceiroService
	Sincronizacao service.SincronizacaoService
}

// NovosServicos wires Service ← Repository ← DB/Redis.
func NovosServicos(cfg *config.Config, db *gorm.DB, rdb *redis.Client, erpCB *infra.CircuitBreaker) (*Servicos, error) {
	aliq, err := cfg.Aliquotas()
	if err != nil {
		return nil, err
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	revisaoRepo := repository.NewRevisaoRepository(db)
	maoObraRepo := repository.NewMaoObraRepository(db)
	itemRepo := repository.NewItemCustoRepository(db)
	regraRepo := repository.NewRegraRepository(db)
	resumoRepo := repository.NewResumoRepository(db)
	fluxoRepo := repository.NewFluxoCaixaRepository(db)
	histogramaRepo := repository.NewHistogramaRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)
	mapeamentoRepo := repository.NewMapeamentoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	s := &Servicos{Dispatcher: worker.NewDispatcher(rdb)}
	s.MaoObra = service.NewMaoObraService(revisaoRepo, maoObraRepo)
	s.Orcamento = service.NewOrcamentoService(revisaoRepo, itemRepo, regraRepo, resumoRepo)
	s.FluxoCaixa = service.NewFluxoCaixaService(revisaoRepo, resumoRepo, fluxoRepo)
	s.Histograma = service.NewHistogramaService(revisaoRepo, histogramaRepo, maoObraRepo)
	s.Recalculo = service.NewRecalculoService(revisaoRepo, s.Dispatcher, s.MaoObra, s.Orcamento, s.FluxoCaixa, cfg.PDFStoragePath)
	s.DRE = service.NewDREService(mapeamentoRepo, lancamentoRepo, infra.NewRedisCache(rdb), cfg.DRECacheTTL, calculo.AliquotasDRE{
		PIS:    aliq.PIS,
		COFINS: aliq.COFINS,
		ISS:    aliq.ISS,
		IRPJ:   aliq.IRPJ,
		CSLL:   aliq.CSLL,
	})
	s.Financeiro = service.NewFinanceiroService(lancamentoRepo)
	s.Sincronizacao = service.NewSincronizacaoService(infra.NewERPClient(cfg.ERPURL, cfg.ERPAppKey), erpCB, lancamentoRepo, s.DRE)
	return s, nil
}
