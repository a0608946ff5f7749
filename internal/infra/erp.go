package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"orcaobra/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// erpPageSize is the page size requested from the ERP listing endpoint.
const erpPageSize = 200

// LancamentoERP is one receivable/payable as delivered by the ERP gateway.
// Rateio is kept raw: the gateway sometimes sends the array double-encoded.
type LancamentoERP struct {
	Codigo          string          `json:"codigo"`
	Descricao       string          `json:"descricao"`
	DataEmissao     string          `json:"data_emissao"`
	DataVencimento  string          `json:"data_vencimento"`
	Valor           decimal.Decimal `json:"valor"`
	Status          string          `json:"status"`
	CodigoCategoria string          `json:"codigo_categoria"`
	Rateio          json.RawMessage `json:"categorias,omitempty"`
}

type erpListarRequest struct {
	AppKey    string `json:"app_key"`
	Tipo      string `json:"tipo"`
	Desde     string `json:"alterado_desde,omitempty"`
	Pagina    int    `json:"pagina"`
	PorPagina int    `json:"registros_por_pagina"`
}

type erpListarResponse struct {
	Pagina         int             `json:"pagina"`
	TotalDePaginas int             `json:"total_de_paginas"`
	Lancamentos    []LancamentoERP `json:"lancamentos"`
}

// ERPClient lists AR/AP entries from the ERP gateway over HTTP+JSON.
type ERPClient struct {
	baseURL    string
	appKey     string
	httpClient *http.Client
}

func NewERPClient(baseURL, appKey string) *ERPClient {
	return &ERPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		appKey:     appKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListarLancamentos pages through every entry of tipo (AR|AP) changed since
// desde. A zero desde lists everything.
func (c *ERPClient) ListarLancamentos(ctx context.Context, tipo string, desde time.Time) ([]LancamentoERP, error) {
	var todos []LancamentoERP
	for pagina := 1; ; pagina++ {
		req := erpListarRequest{
			AppKey:    c.appKey,
			Tipo:      tipo,
			Pagina:    pagina,
			PorPagina: erpPageSize,
		}
		if !desde.IsZero() {
			req.Desde = desde.Format("02/01/2006")
		}

		resp, err := c.listarPagina(ctx, req)
		if err != nil {
			return nil, err
		}
		todos = append(todos, resp.Lancamentos...)
		if resp.TotalDePaginas <= pagina || len(resp.Lancamentos) == 0 {
			return todos, nil
		}
	}
}

func (c *ERPClient) listarPagina(ctx context.Context, payload erpListarRequest) (*erpListarResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erp: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/financeiro/lancamentos", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erp: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erp: gateway returned %d", resp.StatusCode)
	}

	var out erpListarResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("erp: decode response: %w", err)
	}
	return &out, nil
}

// ParaModelo converts a gateway entry into a ledger row of kind tipo.
// Unparseable dates become nil; such entries are skipped by the DRE.
func (l *LancamentoERP) ParaModelo(tipo string, sincronizadoEm time.Time) model.LancamentoFinanceiro {
	out := model.LancamentoFinanceiro{
		Tipo:           tipo,
		CodigoERP:      l.Codigo,
		Descricao:      l.Descricao,
		DataEmissao:    parseDataERP(l.DataEmissao),
		DataVencimento: parseDataERP(l.DataVencimento),
		Valor:          l.Valor,
		Status:         statusERP(l.Status),
		SincronizadoEm: sincronizadoEm,
	}
	if cat := strings.TrimSpace(l.CodigoCategoria); cat != "" {
		out.Categoria = &cat
	}
	if len(l.Rateio) > 0 && string(l.Rateio) != "null" {
		out.CategoriasRateio = datatypes.JSON(l.Rateio)
	}
	return out
}

func parseDataERP(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func statusERP(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAGO", "RECEBIDO", "LIQUIDADO":
		return model.StatusPago
	case "CANCELADO":
		return model.StatusCancelado
	default:
		return model.StatusAberto
	}
}
