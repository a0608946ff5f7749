package service

import (
	"context"
	"testing"
	"time"

	"orcaobra/internal/calculo"
	"orcaobra/internal/dto"
	"orcaobra/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoFluxo(t *testing.T, rev *model.Revisao, materiais string) (*fluxoCaixaService, *memFluxo) {
	t.Helper()
	resumos := newMemResumos()
	if materiais != "" {
		require.NoError(t, resumos.Salvar(context.Background(), &model.ResumoOrcamento{
			RevisaoID:      rev.ID,
			TotalMateriais: dec(materiais),
			SubtotalCusto:  dec(materiais),
		}))
	}
	repo := newMemFluxo()
	svc := NewFluxoCaixaService(newMemRevisoes(rev), resumos, repo).(*fluxoCaixaService)
	svc.agora = relogio(time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC))
	return svc, repo
}

func TestFluxoCaixaService_SubstituicaoDestrutiva(t *testing.T) {
	rev := novaRevisao(3)
	svc, repo := novoFluxo(t, rev, "900")

	resp, err := svc.Gerar(context.Background(), rev.ID, dto.GerarFluxoCaixaRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entradas, 3)
	assert.Equal(t, "2026-10-01", resp.Entradas[0].Mes)
	assert.Equal(t, "300.00", resp.Entradas[0].Valor.StringFixed(2))

	resp, err = svc.Gerar(context.Background(), rev.ID, dto.GerarFluxoCaixaRequest{PrazoMeses: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Entradas, 2)
	assert.Len(t, repo.entradas[rev.ID], 2, "previous schedule must be fully replaced")
	assert.Equal(t, "900.00", resp.Total.StringFixed(2))

	listado, err := svc.Listar(context.Background(), rev.ID)
	require.NoError(t, err)
	assert.Equal(t, "450.00", listado.Entradas[1].Valor.StringFixed(2))
	assert.Equal(t, "900.00", listado.TotaisPorCategoria[model.CategoriaMateriais].StringFixed(2))
}

func TestFluxoCaixaService_InicioDaRevisao(t *testing.T) {
	rev := novaRevisao(2)
	inicio := time.Date(2027, 2, 15, 0, 0, 0, 0, time.UTC)
	rev.DataInicio = &inicio
	svc, _ := novoFluxo(t, rev, "100")

	resp, err := svc.Gerar(context.Background(), rev.ID, dto.GerarFluxoCaixaRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2027-02-01", resp.Entradas[0].Mes)
	assert.Equal(t, "2027-03-01", resp.Entradas[1].Mes)
}

func TestFluxoCaixaService_InicioExplicito(t *testing.T) {
	rev := novaRevisao(1)
	svc, _ := novoFluxo(t, rev, "100")

	inicio := "2026-12"
	resp, err := svc.Gerar(context.Background(), rev.ID, dto.GerarFluxoCaixaRequest{Inicio: &inicio})
	require.NoError(t, err)
	assert.Equal(t, "2026-12-01", resp.Entradas[0].Mes)

	ruim := "12/2026"
	_, err = svc.Gerar(context.Background(), rev.ID, dto.GerarFluxoCaixaRequest{Inicio: &ruim})
	assert.ErrorIs(t, err, ErrEntradaInvalida)
}

func TestFluxoCaixaService_SemResumo(t *testing.T) {
	rev := novaRevisao(3)
	svc, _ := novoFluxo(t, rev, "")

	_, err := svc.Gerar(context.Background(), rev.ID, dto.GerarFluxoCaixaRequest{})
	assert.ErrorIs(t, err, calculo.ErrConfiguracao)
}

func TestFluxoCaixaService_PrazoInvalido(t *testing.T) {
	rev := novaRevisao(0)
	svc, repo := novoFluxo(t, rev, "100")

	_, err := svc.Gerar(context.Background(), rev.ID, dto.GerarFluxoCaixaRequest{})
	assert.ErrorIs(t, err, calculo.ErrParametroInvalido)
	assert.Empty(t, repo.entradas)
}
