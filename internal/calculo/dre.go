package calculo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChaveDRE addresses one cell of the income statement.
type ChaveDRE struct {
	Conta string
	Mes   int // 1..12
}

// NaoMapeada is one ERP category code with no active mapping. The list is the
// operators' work queue for completing the mapping table.
type NaoMapeada struct {
	Categoria  string          `json:"categoria"`
	Tipo       string          `json:"tipo"`
	ContaUsada string          `json:"conta_usada"`
	Quantidade int             `json:"quantidade"`
	Total      decimal.Decimal `json:"total"`
}

// ErroLancamento records an entry skipped for a data-quality problem.
type ErroLancamento struct {
	LancamentoID uuid.UUID `json:"lancamento_id"`
	CodigoERP    string    `json:"codigo_erp"`
	Motivo       string    `json:"motivo"`
}

// EntradaDRE holds everything the aggregation reads.
type EntradaDRE struct {
	Ano         int
	Mapeamentos []model.CategoriaMapeamento
	Receber     []model.LancamentoFinanceiro
	Pagar       []model.LancamentoFinanceiro
	// Aliquotas nil skips the tax model.
	Aliquotas *AliquotasDRE
}

// ResultadoDRE is the sparse income statement of one year.
type ResultadoDRE struct {
	Ano         int
	Valores     map[ChaveDRE]decimal.Decimal
	NaoMapeadas []NaoMapeada
	Erros       []ErroLancamento
	TotalAR     decimal.Decimal
	TotalAP     decimal.Decimal
}

// Valor returns the accumulated value of one cell (zero when absent).
func (r *ResultadoDRE) Valor(conta string, mes int) decimal.Decimal {
	return r.Valores[ChaveDRE{Conta: conta, Mes: mes}]
}

// Contas lists the distinct accounts that received any value.
func (r *ResultadoDRE) Contas() []string {
	vistas := make(map[string]bool)
	for k := range r.Valores {
		vistas[k.Conta] = true
	}
	out := make([]string, 0, len(vistas))
	for c := range vistas {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

type agregador struct {
	res       *ResultadoDRE
	mapas     map[string]map[string]string // tipo → codigo → conta
	naoMapIdx map[string]int
}

// AgregarDRE categorizes AR/AP entries of one year into DRE accounts per month.
//
// Entries without data_emissao, outside the year or CANCELADO are skipped.
// An entry with rateio is accumulated once per split with the split's code
// and value. A code resolves through the mapping override, then the linked
// accounting category; without a mapping AR falls back to gross revenue and
// AP to the code-prefix table, and the code is recorded as unmapped.
// A malformed rateio skips that entry only and is reported in Erros.
func AgregarDRE(in EntradaDRE) *ResultadoDRE {
	a := &agregador{
		res: &ResultadoDRE{
			Ano:     in.Ano,
			Valores: make(map[ChaveDRE]decimal.Decimal),
		},
		mapas:     indexarMapeamentos(in.Mapeamentos),
		naoMapIdx: make(map[string]int),
	}

	for i := range in.Receber {
		if v, ok := a.processar(&in.Receber[i], model.TipoReceber); ok {
			a.res.TotalAR = a.res.TotalAR.Add(v)
		}
	}

	if in.Aliquotas != nil {
		for mes := 1; mes <= 12; mes++ {
			deducoes, impostos := CalcularImpostosDRE(a.res.Valor(ContaReceitaBruta, mes), *in.Aliquotas)
			a.somar(ContaDeducoes, mes, deducoes)
			a.somar(ContaImpostosLucro, mes, impostos)
		}
	}

	for i := range in.Pagar {
		if v, ok := a.processar(&in.Pagar[i], model.TipoPagar); ok {
			a.res.TotalAP = a.res.TotalAP.Add(v)
		}
	}

	return a.res
}

func indexarMapeamentos(mapeamentos []model.CategoriaMapeamento) map[string]map[string]string {
	mapas := map[string]map[string]string{
		model.TipoReceber: {},
		model.TipoPagar:   {},
	}
	for _, m := range mapeamentos {
		if !m.Ativo {
			continue
		}
		conta := ""
		if m.ContaDREOverride != nil && strings.TrimSpace(*m.ContaDREOverride) != "" {
			conta = strings.TrimSpace(*m.ContaDREOverride)
		} else if m.CategoriaContabil != nil && m.CategoriaContabil.ContaDRE != "" {
			conta = m.CategoriaContabil.ContaDRE
		}
		if conta == "" {
			continue
		}
		if _, ok := mapas[m.Tipo]; !ok {
			mapas[m.Tipo] = map[string]string{}
		}
		mapas[m.Tipo][m.CodigoCategoria] = conta
	}
	return mapas
}

// processar accumulates one entry. It returns the entry value and false when
// the entry was skipped.
func (a *agregador) processar(l *model.LancamentoFinanceiro, tipo string) (decimal.Decimal, bool) {
	if l.DataEmissao == nil || l.Status == model.StatusCancelado || l.DataEmissao.Year() != a.res.Ano {
		return decimal.Zero, false
	}
	mes := int(l.DataEmissao.Month())

	rateio, err := ParseRateio(l.CategoriasRateio)
	if err != nil {
		a.res.Erros = append(a.res.Erros, ErroLancamento{
			LancamentoID: l.ID,
			CodigoERP:    l.CodigoERP,
			Motivo:       fmt.Sprintf("rateio inválido: %v", err),
		})
		return decimal.Zero, false
	}

	if len(rateio) > 0 {
		for _, parte := range rateio {
			a.acumular(tipo, parte.CodigoCategoria, mes, parte.Valor)
		}
		return l.Valor, true
	}

	codigo := ""
	if l.Categoria != nil {
		codigo = *l.Categoria
	}
	a.acumular(tipo, codigo, mes, l.Valor)
	return l.Valor, true
}

func (a *agregador) acumular(tipo, codigo string, mes int, valor decimal.Decimal) {
	conta, mapeada := a.mapas[tipo][codigo]
	if !mapeada {
		if tipo == model.TipoReceber {
			conta = ContaReceitaBruta
		} else {
			conta = ContaPagarPorPrefixo(codigo)
		}
		a.registrarNaoMapeada(tipo, codigo, conta, valor)
	}
	a.somar(conta, mes, valor)
}

func (a *agregador) somar(conta string, mes int, valor decimal.Decimal) {
	if valor.IsZero() {
		return
	}
	k := ChaveDRE{Conta: conta, Mes: mes}
	a.res.Valores[k] = a.res.Valores[k].Add(valor)
}

func (a *agregador) registrarNaoMapeada(tipo, codigo, conta string, valor decimal.Decimal) {
	chave := tipo + "|" + codigo
	if i, ok := a.naoMapIdx[chave]; ok {
		nm := &a.res.NaoMapeadas[i]
		nm.Quantidade++
		nm.Total = nm.Total.Add(valor)
		return
	}
	a.naoMapIdx[chave] = len(a.res.NaoMapeadas)
	a.res.NaoMapeadas = append(a.res.NaoMapeadas, NaoMapeada{
		Categoria:  codigo,
		Tipo:       tipo,
		ContaUsada: conta,
		Quantidade: 1,
		Total:      valor,
	})
}

// ParseRateio decodes the raw rateio column. It accepts a JSON array, the
// same array encoded as a JSON string, or empty/null (no rateio).
func ParseRateio(raw []byte) ([]model.RateioItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		raw = bytes.TrimSpace([]byte(s))
		if len(raw) == 0 {
			return nil, nil
		}
	}
	var itens []model.RateioItem
	if err := json.Unmarshal(raw, &itens); err != nil {
		return nil, err
	}
	return itens, nil
}
