package calculo

import "github.com/shopspring/decimal"

// AliquotasDRE are the percentage rates applied to monthly gross revenue.
// PIS, COFINS and ISS are revenue deductions; IRPJ and CSLL are income taxes
// (presumed-profit regime, rates already applied over the presumption base).
type AliquotasDRE struct {
	PIS    decimal.Decimal
	COFINS decimal.Decimal
	ISS    decimal.Decimal
	IRPJ   decimal.Decimal
	CSLL   decimal.Decimal
}

// CalcularImpostosDRE returns the deductions and income taxes owed on one
// month of gross revenue. Non-positive revenue owes nothing.
func CalcularImpostosDRE(receitaBruta decimal.Decimal, a AliquotasDRE) (deducoes, impostosLucro decimal.Decimal) {
	if !receitaBruta.IsPositive() {
		return decimal.Zero, decimal.Zero
	}
	deducoes = Arredondar(receitaBruta.Mul(a.PIS.Add(a.COFINS).Add(a.ISS)).Div(cem))
	impostosLucro = Arredondar(receitaBruta.Mul(a.IRPJ.Add(a.CSLL)).Div(cem))
	return deducoes, impostosLucro
}
