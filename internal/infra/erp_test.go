package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orcaobra/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestERPClient_ListarLancamentosPaginado(t *testing.T) {
	var recebidos []erpListarRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/financeiro/lancamentos", r.URL.Path)
		var req erpListarRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		recebidos = append(recebidos, req)

		resp := erpListarResponse{
			Pagina:         req.Pagina,
			TotalDePaginas: 2,
			Lancamentos: []LancamentoERP{{
				Codigo:      "L" + string(rune('0'+req.Pagina)),
				DataEmissao: "10/03/2026",
				Status:      "ABERTO",
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewERPClient(srv.URL+"/", "chave")
	desde := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	itens, err := c.ListarLancamentos(context.Background(), model.TipoPagar, desde)
	require.NoError(t, err)

	assert.Len(t, itens, 2)
	require.Len(t, recebidos, 2)
	assert.Equal(t, "chave", recebidos[0].AppKey)
	assert.Equal(t, "01/03/2026", recebidos[0].Desde)
	assert.Equal(t, model.TipoPagar, recebidos[1].Tipo)
	assert.Equal(t, 2, recebidos[1].Pagina)
}

func TestERPClient_ErroHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewERPClient(srv.URL, "").ListarLancamentos(context.Background(), model.TipoReceber, time.Time{})
	assert.ErrorContains(t, err, "502")
}

func TestLancamentoERP_ParaModelo(t *testing.T) {
	var l LancamentoERP
	raw := `{"codigo":"123","valor":1500.5,"data_emissao":"05/02/2026","data_vencimento":"2026-03-07",
		"status":"liquidado","codigo_categoria":" 2.01.03 ","categorias":[{"codigo_categoria":"1.01","valor":1500.5}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	agora := time.Now()
	m := l.ParaModelo(model.TipoPagar, agora)

	assert.Equal(t, "123", m.CodigoERP)
	assert.Equal(t, model.StatusPago, m.Status)
	require.NotNil(t, m.Categoria)
	assert.Equal(t, "2.01.03", *m.Categoria)
	require.NotNil(t, m.DataEmissao)
	assert.Equal(t, time.February, m.DataEmissao.Month())
	require.NotNil(t, m.DataVencimento)
	assert.Equal(t, 7, m.DataVencimento.Day())
	assert.True(t, m.Valor.Equal(l.Valor))
	assert.JSONEq(t, `[{"codigo_categoria":"1.01","valor":1500.5}]`, string(m.CategoriasRateio))
}

func TestLancamentoERP_DataInvalida(t *testing.T) {
	l := LancamentoERP{Codigo: "x", DataEmissao: "31-31-2026", Status: "cancelado"}
	m := l.ParaModelo(model.TipoReceber, time.Now())
	assert.Nil(t, m.DataEmissao)
	assert.Nil(t, m.Categoria)
	assert.Nil(t, m.CategoriasRateio)
	assert.Equal(t, model.StatusCancelado, m.Status)
}
