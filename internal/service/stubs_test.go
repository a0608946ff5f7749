package service

import (
	"context"
	"path"
	"sort"
	"time"

	"orcaobra/internal/infra"
	"orcaobra/internal/model"
	"orcaobra/internal/repository"
	"orcaobra/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repositories ────────────────────────────────────────────────────

type memRevisoes struct{ revisoes map[uuid.UUID]*model.Revisao }

var _ repository.RevisaoRepository = (*memRevisoes)(nil)

func newMemRevisoes(revs ...*model.Revisao) *memRevisoes {
	r := &memRevisoes{revisoes: make(map[uuid.UUID]*model.Revisao)}
	for _, rev := range revs {
		r.revisoes[rev.ID] = rev
	}
	return r
}

func (r *memRevisoes) FindByID(_ context.Context, id uuid.UUID) (*model.Revisao, error) {
	rev, ok := r.revisoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rev, nil
}

type memMaoObra struct {
	funcoes []model.FuncaoMaoObra
	params  *model.ParametrosMaoObra
	custos  map[uuid.UUID][]model.CustoMaoObra
}

var _ repository.MaoObraRepository = (*memMaoObra)(nil)

func newMemMaoObra() *memMaoObra {
	return &memMaoObra{custos: make(map[uuid.UUID][]model.CustoMaoObra)}
}

func (r *memMaoObra) ListFuncoes(_ context.Context, revisaoID uuid.UUID) ([]model.FuncaoMaoObra, error) {
	var out []model.FuncaoMaoObra
	for _, f := range r.funcoes {
		if f.RevisaoID == revisaoID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memMaoObra) FindParametros(_ context.Context, revisaoID uuid.UUID) (*model.ParametrosMaoObra, error) {
	if r.params == nil || r.params.RevisaoID != revisaoID {
		return nil, nil
	}
	return r.params, nil
}

func (r *memMaoObra) ListCustos(_ context.Context, revisaoID uuid.UUID) ([]model.CustoMaoObra, error) {
	return r.custos[revisaoID], nil
}

func (r *memMaoObra) SubstituirCustos(_ context.Context, revisaoID uuid.UUID, custos []model.CustoMaoObra) error {
	novos := make([]model.CustoMaoObra, len(custos))
	for i, c := range custos {
		c.ID = uuid.New()
		c.CreatedAt = time.Now()
		novos[i] = c
	}
	r.custos[revisaoID] = novos
	return nil
}

type memItens struct{ itens []model.ItemCusto }

var _ repository.ItemCustoRepository = (*memItens)(nil)

func (r *memItens) Create(_ context.Context, item *model.ItemCusto) error {
	item.ID = uuid.New()
	r.itens = append(r.itens, *item)
	return nil
}

func (r *memItens) List(_ context.Context, revisaoID uuid.UUID) ([]model.ItemCusto, error) {
	var out []model.ItemCusto
	for _, it := range r.itens {
		if it.RevisaoID == revisaoID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memItens) Delete(_ context.Context, revisaoID, itemID uuid.UUID) error {
	for i, it := range r.itens {
		if it.ID == itemID && it.RevisaoID == revisaoID {
			r.itens = append(r.itens[:i], r.itens[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memItens) TotaisPorCategoria(ctx context.Context, revisaoID uuid.UUID) (map[string]decimal.Decimal, error) {
	itens, _ := r.List(ctx, revisaoID)
	totais := make(map[string]decimal.Decimal)
	for _, it := range itens {
		totais[it.Categoria] = totais[it.Categoria].Add(it.Total)
	}
	return totais, nil
}

type memRegras struct {
	markup   *model.RegraMarkup
	impostos []model.RegraImposto
}

var _ repository.RegraRepository = (*memRegras)(nil)

func (r *memRegras) FindMarkup(_ context.Context, _ uuid.UUID) (*model.RegraMarkup, error) {
	return r.markup, nil
}

func (r *memRegras) ListImpostos(_ context.Context, _ uuid.UUID) ([]model.RegraImposto, error) {
	return r.impostos, nil
}

type memResumos struct {
	resumos map[uuid.UUID]*model.ResumoOrcamento
	saves   int
}

var _ repository.ResumoRepository = (*memResumos)(nil)

func newMemResumos() *memResumos {
	return &memResumos{resumos: make(map[uuid.UUID]*model.ResumoOrcamento)}
}

func (r *memResumos) FindByRevisao(_ context.Context, revisaoID uuid.UUID) (*model.ResumoOrcamento, error) {
	res, ok := r.resumos[revisaoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return res, nil
}

func (r *memResumos) Salvar(_ context.Context, resumo *model.ResumoOrcamento) error {
	r.saves++
	if atual, ok := r.resumos[resumo.RevisaoID]; ok {
		resumo.ID = atual.ID
	} else {
		resumo.ID = uuid.New()
	}
	cp := *resumo
	r.resumos[resumo.RevisaoID] = &cp
	return nil
}

type memFluxo struct {
	entradas map[uuid.UUID][]model.FluxoCaixaEntrada
}

var _ repository.FluxoCaixaRepository = (*memFluxo)(nil)

func newMemFluxo() *memFluxo {
	return &memFluxo{entradas: make(map[uuid.UUID][]model.FluxoCaixaEntrada)}
}

func (r *memFluxo) Substituir(_ context.Context, revisaoID uuid.UUID, entradas []model.FluxoCaixaEntrada) error {
	r.entradas[revisaoID] = append([]model.FluxoCaixaEntrada(nil), entradas...)
	return nil
}

func (r *memFluxo) List(_ context.Context, revisaoID uuid.UUID) ([]model.FluxoCaixaEntrada, error) {
	return r.entradas[revisaoID], nil
}

type memHistograma struct{ entradas []model.HistogramaEntrada }

var _ repository.HistogramaRepository = (*memHistograma)(nil)

func (r *memHistograma) List(_ context.Context, revisaoID uuid.UUID) ([]model.HistogramaEntrada, error) {
	var out []model.HistogramaEntrada
	for _, e := range r.entradas {
		if e.RevisaoID == revisaoID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memLancamentos struct {
	porChave  map[string]model.LancamentoFinanceiro
	consultas int
}

var _ repository.LancamentoRepository = (*memLancamentos)(nil)

func newMemLancamentos(ls ...model.LancamentoFinanceiro) *memLancamentos {
	r := &memLancamentos{porChave: make(map[string]model.LancamentoFinanceiro)}
	_, _ = r.Upsert(context.Background(), ls)
	return r
}

func (r *memLancamentos) Upsert(_ context.Context, ls []model.LancamentoFinanceiro) ([]int, error) {
	var anteriores []int
	for _, l := range ls {
		chave := l.Tipo + "|" + l.CodigoERP
		if atual, ok := r.porChave[chave]; ok {
			l.ID = atual.ID
			if atual.DataEmissao != nil {
				anteriores = append(anteriores, atual.DataEmissao.Year())
			}
		} else if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		r.porChave[chave] = l
	}
	return anteriores, nil
}

func (r *memLancamentos) todos() []model.LancamentoFinanceiro {
	out := make([]model.LancamentoFinanceiro, 0, len(r.porChave))
	for _, l := range r.porChave {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodigoERP < out[j].CodigoERP })
	return out
}

func (r *memLancamentos) ListPorAno(_ context.Context, tipo string, ano int) ([]model.LancamentoFinanceiro, error) {
	r.consultas++
	var out []model.LancamentoFinanceiro
	for _, l := range r.todos() {
		if l.Tipo == tipo && l.DataEmissao != nil && l.DataEmissao.Year() == ano {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLancamentos) ListAbertos(_ context.Context, tipo string) ([]model.LancamentoFinanceiro, error) {
	var out []model.LancamentoFinanceiro
	for _, l := range r.todos() {
		if l.Tipo == tipo && l.DataVencimento != nil &&
			l.Status != model.StatusPago && l.Status != model.StatusCancelado {
			out = append(out, l)
		}
	}
	return out, nil
}

type memMapeamentos struct {
	mapeamentos []model.CategoriaMapeamento
	categorias  map[uuid.UUID]*model.CategoriaContabil
}

var _ repository.MapeamentoRepository = (*memMapeamentos)(nil)

func newMemMapeamentos(categorias ...*model.CategoriaContabil) *memMapeamentos {
	r := &memMapeamentos{categorias: make(map[uuid.UUID]*model.CategoriaContabil)}
	for _, c := range categorias {
		r.categorias[c.ID] = c
	}
	return r
}

func (r *memMapeamentos) List(_ context.Context) ([]model.CategoriaMapeamento, error) {
	out := make([]model.CategoriaMapeamento, len(r.mapeamentos))
	for i, m := range r.mapeamentos {
		if m.CategoriaContabilID != nil {
			m.CategoriaContabil = r.categorias[*m.CategoriaContabilID]
		}
		out[i] = m
	}
	return out, nil
}

func (r *memMapeamentos) Upsert(_ context.Context, m *model.CategoriaMapeamento) error {
	for i, atual := range r.mapeamentos {
		if atual.CodigoCategoria == m.CodigoCategoria && atual.Tipo == m.Tipo {
			m.ID = atual.ID
			r.mapeamentos[i] = *m
			return nil
		}
	}
	m.ID = uuid.New()
	r.mapeamentos = append(r.mapeamentos, *m)
	return nil
}

func (r *memMapeamentos) FindCategoriaContabil(_ context.Context, id uuid.UUID) (*model.CategoriaContabil, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

// ── Cache, ERP and queue doubles ──────────────────────────────────────────────

type memCache struct {
	dados map[string][]byte
	sets  int
}

var _ Cache = (*memCache)(nil)

func newMemCache() *memCache { return &memCache{dados: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.dados[key]
	return b, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	c.dados[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.dados, k)
	}
	return nil
}

func (c *memCache) Chaves(_ context.Context, padrao string) ([]string, error) {
	var out []string
	for k := range c.dados {
		if ok, _ := path.Match(padrao, k); ok {
			out = append(out, k)
		}
	}
	return out, nil
}

type stubFonte struct {
	porTipo map[string][]infra.LancamentoERP
	err     error
	desdes  []time.Time
}

var _ FonteERP = (*stubFonte)(nil)

func (f *stubFonte) ListarLancamentos(_ context.Context, tipo string, desde time.Time) ([]infra.LancamentoERP, error) {
	f.desdes = append(f.desdes, desde)
	if f.err != nil {
		return nil, f.err
	}
	return f.porTipo[tipo], nil
}

type stubEnqueuer struct {
	jobs []worker.RecalculoJobPayload
	err  error
}

var _ RecalculoEnqueuer = (*stubEnqueuer)(nil)

func (e *stubEnqueuer) EnqueueRecalculo(_ context.Context, payload worker.RecalculoJobPayload) error {
	if e.err != nil {
		return e.err
	}
	e.jobs = append(e.jobs, payload)
	return nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func novaRevisao(prazo int) *model.Revisao {
	return &model.Revisao{ID: uuid.New(), OrcamentoID: uuid.New(), Numero: 1, PrazoMeses: prazo}
}

func relogio(t time.Time) func() time.Time { return func() time.Time { return t } }
