//go:build integration

package router

// End-to-end tests over real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orcaobra/internal/config"
	"orcaobra/internal/infra"
	"orcaobra/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

const segredoTeste = "test-secret-key"

// ── Helpers ──────────────────────────────────────────────────────────────────

func tokenPara(t *testing.T, rol string) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID: uuid.NewString(),
		Email:  rol + "@e2e.test",
		Rol:    rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(segredoTeste))
	require.NoError(t, err)
	return s
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	rdb    *redis.Client
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("orcaobra_test"),
		tcPostgres.WithUsername("orcaobra"),
		tcPostgres.WithPassword("orcaobra"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:            "test",
		JWTSecret:      segredoTeste,
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
		DRECacheTTL:    time.Minute,
		ERPURL:         "http://localhost:9999", // unused
		RateLimitRPM:   1000,
		CORSOrigin:     "*",
		PDFStoragePath: t.TempDir(),
		AliquotaPIS:    "0.65",
		AliquotaCOFINS: "3",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	erpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("erp"))
	svc, err := NovosServicos(cfg, db, rdb, erpCB)
	require.NoError(t, err)

	srv := httptest.NewServer(New(cfg, db, rdb, erpCB, svc))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, db: db, rdb: rdb}
}

// novaRevisao seeds a two-month revision with one role, labor parameters
// and a 20% markup without taxes.
func (e *testEnv) novaRevisao(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, e.db.Exec(`INSERT INTO orcamento_revisoes (id, orcamento_id, numero, prazo_meses, data_inicio)
		VALUES (?, gen_random_uuid(), 1, 2, '2026-01-01')`, id).Error)
	require.NoError(t, e.db.Exec(`INSERT INTO parametros_mao_obra (revisao_id, encargos_pct) VALUES (?, 80)`, id).Error)
	require.NoError(t, e.db.Exec(`INSERT INTO funcoes_mao_obra (revisao_id, funcao, salario_base) VALUES (?, 'Pedreiro', 2200)`, id).Error)
	require.NoError(t, e.db.Exec(`INSERT INTO regras_markup (revisao_id, markup_pct) VALUES (?, 20)`, id).Error)
	return id
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_Orcamento(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	env := setupTestEnv(t)
	orc := tokenPara(t, middleware.RolOrcamentista)
	leitor := tokenPara(t, middleware.RolLeitor)
	id := env.novaRevisao(t)
	base := "/v1/revisoes/" + id.String()

	// Labor cost: 2200 / 220 = 10.00/h, +80% charges = 18.00/h
	resp := do(t, env.server, http.MethodPost, base+"/mao-obra/recalcular", nil, orc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mo struct {
		Custos []struct {
			CustoHoraNormal decimal.Decimal `json:"custo_hora_normal"`
		} `json:"custos"`
	}
	decodeJSON(t, resp, &mo)
	require.Len(t, mo.Custos, 1)
	assert.True(t, mo.Custos[0].CustoHoraNormal.Equal(decimal.NewFromInt(18)), mo.Custos[0].CustoHoraNormal.String())

	// Readers cannot write
	resp = do(t, env.server, http.MethodPost, base+"/itens", map[string]any{
		"categoria": "MATERIAIS", "descricao": "Cimento", "quantidade": "10", "preco_unitario": "100",
	}, leitor)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, env.server, http.MethodPost, base+"/itens", map[string]any{
		"categoria": "MATERIAIS", "descricao": "Cimento", "quantidade": "10", "preco_unitario": "100",
	}, orc)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Summary before recalculation does not exist yet
	resp = do(t, env.server, http.MethodGet, base+"/resumo", nil, leitor)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = do(t, env.server, http.MethodPost, base+"/resumo/recalcular", nil, orc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resumo struct {
		SubtotalCusto decimal.Decimal `json:"subtotal_custo"`
		PrecoVenda    decimal.Decimal `json:"preco_venda"`
	}
	decodeJSON(t, resp, &resumo)
	assert.True(t, resumo.SubtotalCusto.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resumo.PrecoVenda.Equal(decimal.NewFromInt(1200)))

	// Cashflow over the revision's two months, regenerated destructively
	for i := 0; i < 2; i++ {
		resp = do(t, env.server, http.MethodPost, base+"/fluxo-caixa", nil, orc)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp = do(t, env.server, http.MethodGet, base+"/fluxo-caixa", nil, leitor)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fluxo struct {
		Entradas []struct {
			Mes string `json:"mes"`
		} `json:"entradas"`
		Total decimal.Decimal `json:"total"`
	}
	decodeJSON(t, resp, &fluxo)
	require.Len(t, fluxo.Entradas, 2)
	assert.Equal(t, "2026-01-01", fluxo.Entradas[0].Mes)
	assert.True(t, fluxo.Total.Equal(decimal.NewFromInt(1000)))

	resp = do(t, env.server, http.MethodGet, base+"/resumo/pdf", nil, leitor)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestE2E_DREEAging(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	env := setupTestEnv(t)
	fin := tokenPara(t, middleware.RolFinanceiro)
	ctx := context.Background()

	require.NoError(t, env.db.Exec(`INSERT INTO lancamentos_financeiros
		(tipo, codigo_erp, data_emissao, data_vencimento, valor, status, categoria)
		VALUES ('AR', 'R-1', '2026-03-05', '2020-01-10', 1000, 'ABERTO', '1.01')`).Error)

	resp := do(t, env.server, http.MethodGet, "/v1/dre/2026", nil, fin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rel struct {
		Ano         int `json:"ano"`
		NaoMapeadas []struct {
			Categoria string `json:"categoria"`
		} `json:"nao_mapeadas"`
	}
	decodeJSON(t, resp, &rel)
	assert.Equal(t, 2026, rel.Ano)
	require.Len(t, rel.NaoMapeadas, 1)
	assert.Equal(t, "1.01", rel.NaoMapeadas[0].Categoria)

	n, err := env.rdb.Exists(ctx, "dre:2026").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "report should be cached")

	// Saving a mapping drops every cached year
	resp = do(t, env.server, http.MethodPut, "/v1/categorias-mapeamento", map[string]any{
		"codigo_categoria": "1.01", "tipo": "AR", "conta_dre_override": "(+) - Receita Bruta de Vendas",
	}, fin)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	n, err = env.rdb.Exists(ctx, "dre:2026").Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	resp = do(t, env.server, http.MethodGet, "/v1/dre/2026/nao-mapeadas", nil, fin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pendentes []any
	decodeJSON(t, resp, &pendentes)
	assert.Empty(t, pendentes)

	resp = do(t, env.server, http.MethodGet, "/v1/financeiro/aging?tipo=AR", nil, fin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var aging struct {
		Acima90    decimal.Decimal `json:"acima_90"`
		Quantidade int             `json:"quantidade"`
	}
	decodeJSON(t, resp, &aging)
	assert.Equal(t, 1, aging.Quantidade)
	assert.True(t, aging.Acima90.Equal(decimal.NewFromInt(1000)))
}

func TestE2E_MapeamentoInativoNaCriacao(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	env := setupTestEnv(t)
	fin := tokenPara(t, middleware.RolFinanceiro)

	resp := do(t, env.server, http.MethodPut, "/v1/categorias-mapeamento", map[string]any{
		"codigo_categoria": "2.01", "tipo": "AP",
		"conta_dre_override": "(-) - Despesas Administrativas", "ativo": false,
	}, fin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var criado struct {
		Ativo bool `json:"ativo"`
	}
	decodeJSON(t, resp, &criado)
	assert.False(t, criado.Ativo)

	var ativo bool
	require.NoError(t, env.db.Raw(
		`SELECT ativo FROM categorias_mapeamento WHERE codigo_categoria = ? AND tipo = ?`, "2.01", "AP",
	).Scan(&ativo).Error)
	assert.False(t, ativo, "inactive mapping must be stored inactive on first insert")

	resp = do(t, env.server, http.MethodGet, "/v1/categorias-mapeamento", nil, fin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lista []struct {
		CodigoCategoria string `json:"codigo_categoria"`
		Ativo           bool   `json:"ativo"`
	}
	decodeJSON(t, resp, &lista)
	require.Len(t, lista, 1)
	assert.Equal(t, "2.01", lista[0].CodigoCategoria)
	assert.False(t, lista[0].Ativo)
}

func TestE2E_SemToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodGet, "/v1/dre/2026", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, env.server, http.MethodGet, "/health", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// DLQ inspection is admin only
	resp = do(t, env.server, http.MethodGet, "/v1/dlq/jobs:recalculo", nil, tokenPara(t, middleware.RolFinanceiro))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := tokenPara(t, middleware.RolAdmin)
	resp = do(t, env.server, http.MethodGet, "/v1/dlq/jobs:recalculo", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entradas []any
	decodeJSON(t, resp, &entradas)
	assert.Empty(t, entradas)

	resp = do(t, env.server, http.MethodGet, "/v1/dlq/jobs:outra", nil, admin)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
