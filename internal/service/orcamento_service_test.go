package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"orcaobra/internal/calculo"
	"orcaobra/internal/dto"
	"orcaobra/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orcamentoFixture struct {
	rev     *model.Revisao
	itens   *memItens
	regras  *memRegras
	resumos *memResumos
	svc     *orcamentoService
}

func novoOrcamento(t *testing.T) *orcamentoFixture {
	t.Helper()
	f := &orcamentoFixture{
		rev:     novaRevisao(3),
		itens:   &memItens{},
		regras:  &memRegras{},
		resumos: newMemResumos(),
	}
	f.regras.markup = &model.RegraMarkup{RevisaoID: f.rev.ID, MarkupPct: dec("20")}
	f.regras.impostos = []model.RegraImposto{{
		Nome: "ISS", Tipo: model.TipoImpostoPercent, Valor: dec("10"),
		Base: model.BaseImpostoVenda, AplicaEm: model.AplicaEmTodos, Ativo: true,
	}}
	f.svc = NewOrcamentoService(newMemRevisoes(f.rev), f.itens, f.regras, f.resumos).(*orcamentoService)
	f.svc.agora = relogio(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	return f
}

func (f *orcamentoFixture) criar(t *testing.T, categoria, qtd, preco, duracao string) *dto.ItemCustoResponse {
	t.Helper()
	item, err := f.svc.CriarItem(context.Background(), f.rev.ID, dto.ItemCustoRequest{
		Categoria:     categoria,
		Descricao:     "item " + categoria,
		Quantidade:    dec(qtd),
		PrecoUnitario: dec(preco),
		Duracao:       dec(duracao),
	})
	require.NoError(t, err)
	return item
}

func TestOrcamentoService_CriarItemDerivaTotal(t *testing.T) {
	f := novoOrcamento(t)

	item := f.criar(t, model.CategoriaLocacaoEquipamentos, "2", "150.50", "3")
	assert.Equal(t, "903.00", item.Total.StringFixed(2))
	assert.Equal(t, "un", item.Unidade)

	itens, err := f.svc.ListarItens(context.Background(), f.rev.ID)
	require.NoError(t, err)
	assert.Len(t, itens, 1)
}

func TestOrcamentoService_CriarItemWBSInvalido(t *testing.T) {
	f := novoOrcamento(t)
	wbs := "nao-e-uuid"
	_, err := f.svc.CriarItem(context.Background(), f.rev.ID, dto.ItemCustoRequest{
		Categoria: model.CategoriaMateriais, Descricao: "x",
		Quantidade: dec("1"), PrecoUnitario: dec("1"), WBSID: &wbs,
	})
	assert.ErrorIs(t, err, ErrEntradaInvalida)
}

func TestOrcamentoService_RemoverItem(t *testing.T) {
	f := novoOrcamento(t)
	item := f.criar(t, model.CategoriaMateriais, "1", "10", "0")

	require.NoError(t, f.svc.RemoverItem(context.Background(), f.rev.ID, uuid.MustParse(item.ID)))
	assert.ErrorIs(t, f.svc.RemoverItem(context.Background(), f.rev.ID, uuid.MustParse(item.ID)), ErrItemNaoEncontrado)
}

func TestOrcamentoService_RecalcularResumoUpsert(t *testing.T) {
	f := novoOrcamento(t)
	f.criar(t, model.CategoriaMateriais, "10", "60", "0")
	f.criar(t, model.CategoriaMaoDeObra, "1", "400", "0")

	primeiro, err := f.svc.RecalcularResumo(context.Background(), f.rev.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", primeiro.SubtotalCusto.StringFixed(2))
	assert.Equal(t, "200.00", primeiro.ValorMarkup.StringFixed(2))
	assert.Equal(t, "120.00", primeiro.TotalImpostos.StringFixed(2))
	assert.Equal(t, "1320.00", primeiro.PrecoVenda.StringFixed(2))
	require.NotNil(t, primeiro.VendaBruta)
	assert.Equal(t, "1200.00", primeiro.VendaBruta.StringFixed(2))
	require.Len(t, primeiro.ImpostosDetalhe, 1)
	assert.Equal(t, "2026-03-10T09:00:00Z", primeiro.CalculadoEm)

	_, err = f.svc.RecalcularResumo(context.Background(), f.rev.ID)
	require.NoError(t, err)
	assert.Len(t, f.resumos.resumos, 1, "one summary per revision")
	assert.Equal(t, 2, f.resumos.saves)

	stored, err := f.svc.ObterResumo(context.Background(), f.rev.ID)
	require.NoError(t, err)
	assert.Equal(t, "600.00", stored.TotaisPorCategoria[model.CategoriaMateriais].StringFixed(2))
	assert.Nil(t, stored.VendaBruta)
}

func TestOrcamentoService_SemMarkup(t *testing.T) {
	f := novoOrcamento(t)
	f.regras.markup = nil

	_, err := f.svc.RecalcularResumo(context.Background(), f.rev.ID)
	assert.ErrorIs(t, err, calculo.ErrConfiguracao)
	assert.Empty(t, f.resumos.resumos)
}

func TestOrcamentoService_ResumoNaoCalculado(t *testing.T) {
	f := novoOrcamento(t)

	_, err := f.svc.ObterResumo(context.Background(), f.rev.ID)
	assert.ErrorIs(t, err, ErrResumoNaoCalculado)
	assert.ErrorIs(t, err, calculo.ErrConfiguracao)

	var buf bytes.Buffer
	assert.ErrorIs(t, f.svc.ResumoPDF(context.Background(), f.rev.ID, &buf), ErrResumoNaoCalculado)
}

func TestOrcamentoService_ResumoPDF(t *testing.T) {
	f := novoOrcamento(t)
	f.criar(t, model.CategoriaMateriais, "1", "100", "0")
	_, err := f.svc.RecalcularResumo(context.Background(), f.rev.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ResumoPDF(context.Background(), f.rev.ID, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	path, err := f.svc.GerarResumoPDF(context.Background(), f.rev.ID, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, path, f.rev.ID.String())
}
