package calculo

import (
	"github.com/shopspring/decimal"
)

// LinhaDRE is one rendered line of the income statement.
type LinhaDRE struct {
	Conta    string              `json:"conta"`
	Subtotal bool                `json:"subtotal"`
	Meses    [12]decimal.Decimal `json:"meses"`
	Total    decimal.Decimal     `json:"total"`
	// AV is the vertical analysis over gross revenue; nil renders as "—".
	AV *decimal.Decimal `json:"av"`
}

// RelatorioDRE is the ordered income statement of one year.
type RelatorioDRE struct {
	Ano         int              `json:"ano"`
	Linhas      []LinhaDRE       `json:"linhas"`
	NaoMapeadas []NaoMapeada     `json:"nao_mapeadas"`
	Erros       []ErroLancamento `json:"erros"`
	TotalAR     decimal.Decimal  `json:"total_ar"`
	TotalAP     decimal.Decimal  `json:"total_ap"`
}

var contasOperacionais = []string{
	ContaDespesasPessoal,
	ContaDespesasVendas,
	ContaDespesasAdministrativas,
}

// MontarDRE orders the aggregated accounts and computes the subtotal lines.
// Accounts outside the standard chart (custom overrides) are listed after the
// operating expenses and enter the operating result by their sign.
func MontarDRE(r *ResultadoDRE) *RelatorioDRE {
	conta := func(nome string) LinhaDRE {
		l := LinhaDRE{Conta: nome}
		for m := 1; m <= 12; m++ {
			l.Meses[m-1] = r.Valor(nome, m)
		}
		return l
	}

	receitaBruta := conta(ContaReceitaBruta)
	deducoes := conta(ContaDeducoes)
	receitaLiquida := combinar(SubtotalReceitaLiquida, receitaBruta, mais, deducoes, menos)
	custo := conta(ContaCustoServicos)
	lucroBruto := combinar(SubtotalLucroBruto, receitaLiquida, mais, custo, menos)

	linhas := []LinhaDRE{receitaBruta, deducoes, receitaLiquida, custo, lucroBruto}

	operacional := lucroBruto
	for _, nome := range contasOperacionais {
		l := conta(nome)
		linhas = append(linhas, l)
		operacional = combinar("", operacional, mais, l, menos)
	}

	conhecidas := map[string]bool{
		ContaReceitaBruta: true, ContaDeducoes: true, ContaCustoServicos: true,
		ContaDespesasPessoal: true, ContaDespesasVendas: true, ContaDespesasAdministrativas: true,
		ContaReceitasFinanceiras: true, ContaDespesasFinanceiras: true, ContaImpostosLucro: true,
	}
	for _, nome := range r.Contas() {
		if conhecidas[nome] {
			continue
		}
		l := conta(nome)
		linhas = append(linhas, l)
		sinal := menos
		if contaPositiva(nome) {
			sinal = mais
		}
		operacional = combinar("", operacional, mais, l, sinal)
	}
	operacional.Conta = SubtotalResultadoOperacional
	linhas = append(linhas, operacional)

	receitasFin := conta(ContaReceitasFinanceiras)
	despesasFin := conta(ContaDespesasFinanceiras)
	antesIR := combinar(SubtotalResultadoAntesIR, operacional, mais, receitasFin, mais)
	antesIR = combinar(SubtotalResultadoAntesIR, antesIR, mais, despesasFin, menos)
	impostos := conta(ContaImpostosLucro)
	lucroLiquido := combinar(SubtotalLucroLiquido, antesIR, mais, impostos, menos)

	linhas = append(linhas, receitasFin, despesasFin, antesIR, impostos, lucroLiquido)

	for i := range linhas {
		linhas[i].Total = decimal.Zero
		for _, v := range linhas[i].Meses {
			linhas[i].Total = linhas[i].Total.Add(v)
		}
	}
	base := linhas[0].Total
	for i := range linhas {
		if pct, ok := Percentual(linhas[i].Total, base); ok {
			linhas[i].AV = &pct
		}
	}

	return &RelatorioDRE{
		Ano:         r.Ano,
		Linhas:      linhas,
		NaoMapeadas: r.NaoMapeadas,
		Erros:       r.Erros,
		TotalAR:     r.TotalAR,
		TotalAP:     r.TotalAP,
	}
}

const (
	mais  = 1
	menos = -1
)

func combinar(nome string, a LinhaDRE, sa int, b LinhaDRE, sb int) LinhaDRE {
	out := LinhaDRE{Conta: nome, Subtotal: true}
	for i := range out.Meses {
		va, vb := a.Meses[i], b.Meses[i]
		if sa < 0 {
			va = va.Neg()
		}
		if sb < 0 {
			vb = vb.Neg()
		}
		out.Meses[i] = va.Add(vb)
	}
	return out
}
