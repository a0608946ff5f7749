package calculo

import "strings"

// DRE line accounts. "(+)" accounts add to the result, "(-)" subtract.
const (
	ContaReceitaBruta            = "(+) - Receita Bruta de Vendas"
	ContaDeducoes                = "(-) - Deduções da Receita Bruta"
	ContaCustoServicos           = "(-) - Custo dos Serviços Prestados"
	ContaDespesasPessoal         = "(-) - Despesas com Pessoal"
	ContaDespesasVendas          = "(-) - Despesas de Vendas e Marketing"
	ContaDespesasAdministrativas = "(-) - Despesas Administrativas"
	ContaReceitasFinanceiras     = "(+) - Receitas Financeiras"
	ContaDespesasFinanceiras     = "(-) - Despesas Financeiras"
	ContaImpostosLucro           = "(-) - IRPJ e CSLL"
)

// Computed subtotal lines of the report.
const (
	SubtotalReceitaLiquida       = "(=) Receita Líquida"
	SubtotalLucroBruto           = "(=) Lucro Bruto"
	SubtotalResultadoOperacional = "(=) Resultado Operacional"
	SubtotalResultadoAntesIR     = "(=) Resultado Antes do IR"
	SubtotalLucroLiquido         = "(=) Lucro Líquido"
)

// prefixosPagar is checked in order; the first matching prefix wins.
var prefixosPagar = []struct {
	prefixo string
	conta   string
}{
	{"1.", ContaCustoServicos},
	{"2.01", ContaDespesasPessoal},
	{"2.02", ContaDespesasPessoal},
	{"2.05", ContaDespesasVendas},
	{"2.03", ContaDespesasAdministrativas},
	{"2.04", ContaDespesasAdministrativas},
	{"2.06", ContaDespesasAdministrativas},
	{"3.", ContaDespesasFinanceiras},
}

// ContaPagarPorPrefixo is the fallback for payable codes with no mapping.
func ContaPagarPorPrefixo(codigo string) string {
	for _, p := range prefixosPagar {
		if strings.HasPrefix(codigo, p.prefixo) {
			return p.conta
		}
	}
	return ContaDespesasAdministrativas
}

// contaPositiva reports whether an account adds to the result.
func contaPositiva(conta string) bool {
	return strings.HasPrefix(conta, "(+)")
}
