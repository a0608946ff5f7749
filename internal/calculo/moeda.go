package calculo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	cem = decimal.NewFromInt(100)
	um  = decimal.NewFromInt(1)

	impressoraBR = message.NewPrinter(language.BrazilianPortuguese)
)

// Arredondar rounds half away from zero to 2 decimal places (currency rounding).
func Arredondar(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// fator turns a percentage into a multiplier: 80 → 1.8.
func fator(pct decimal.Decimal) decimal.Decimal {
	return um.Add(pct.Div(cem))
}

// ParseMoeda converts a display string ("R$ 1.234,56", "1234,56", "-10,5",
// "1234.56") into a decimal. An empty string is zero.
func ParseMoeda(s string) (decimal.Decimal, error) {
	limpo := strings.TrimSpace(s)
	limpo = strings.ReplaceAll(limpo, "\u00a0", "")
	limpo = strings.ReplaceAll(limpo, " ", "")

	negativo := false
	if strings.HasPrefix(limpo, "-") {
		negativo = true
		limpo = limpo[1:]
	}
	limpo = strings.TrimPrefix(limpo, "R$")
	if strings.HasPrefix(limpo, "-") {
		if negativo {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrValorInvalido, s)
		}
		negativo = true
		limpo = limpo[1:]
	}
	if limpo == "" {
		if negativo {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrValorInvalido, s)
		}
		return decimal.Zero, nil
	}

	switch {
	case strings.Contains(limpo, ","):
		// pt-BR: "." groups thousands, "," is the decimal separator
		limpo = strings.ReplaceAll(limpo, ".", "")
		limpo = strings.Replace(limpo, ",", ".", 1)
	case strings.Count(limpo, ".") == 1 && len(limpo)-strings.Index(limpo, ".")-1 <= 2:
		// "1234.5" / "1234.56": plain decimal point
	default:
		limpo = strings.ReplaceAll(limpo, ".", "")
	}

	for _, r := range limpo {
		if (r < '0' || r > '9') && r != '.' {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrValorInvalido, s)
		}
	}
	v, err := decimal.NewFromString(limpo)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrValorInvalido, s)
	}
	if negativo {
		v = v.Neg()
	}
	return v, nil
}

// FormatarMoeda renders a value as "R$ 1.234,56" ("-R$ 10,00" when negative).
func FormatarMoeda(v decimal.Decimal) string {
	v = Arredondar(v)
	sinal := ""
	if v.IsNegative() {
		sinal = "-"
		v = v.Abs()
	}
	return sinal + "R$ " + FormatarNumero(v)
}

// FormatarNumero renders a value with pt-BR separators and 2 decimals, no symbol.
// The digits come from the decimal itself, never from a float.
func FormatarNumero(v decimal.Decimal) string {
	v = Arredondar(v)
	sinal := ""
	if v.IsNegative() {
		sinal = "-"
		v = v.Abs()
	}
	inteiro, centavos, _ := strings.Cut(v.StringFixed(2), ".")
	return sinal + agruparMilhares(inteiro) + "," + centavos
}

// agruparMilhares inserts the pt-BR thousands separator into a run of digits.
func agruparMilhares(digitos string) string {
	if n, err := strconv.ParseInt(digitos, 10, 64); err == nil {
		return impressoraBR.Sprint(number.Decimal(n))
	}
	var b strings.Builder
	primeiro := len(digitos) % 3
	if primeiro == 0 {
		primeiro = 3
	}
	b.WriteString(digitos[:primeiro])
	for i := primeiro; i < len(digitos); i += 3 {
		b.WriteByte('.')
		b.WriteString(digitos[i : i+3])
	}
	return b.String()
}

// Percentual returns parte/total*100 rounded to 2 places. ok is false when
// total is zero; callers render that as "—" instead of a number.
func Percentual(parte, total decimal.Decimal) (pct decimal.Decimal, ok bool) {
	if total.IsZero() {
		return decimal.Zero, false
	}
	return Arredondar(parte.Div(total).Mul(cem)), true
}
