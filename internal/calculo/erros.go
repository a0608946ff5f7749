// Package calculo holds the deterministic money math of the budget and
// financial screens: labor cost derivation, budget summary roll-up, cashflow
// and histogram distribution, DRE aggregation and aging buckets.
//
// Every function here is pure: inputs are fetched by the service layer before
// the call and results are persisted after it. Money is shopspring/decimal
// end to end; values are rounded half-up to 2 places only where a stored
// figure is produced.
package calculo

import "errors"

var (
	// ErrConfiguracao means configuration that changes the result is missing
	// (labor parameters, markup rule). Never substituted by defaults.
	ErrConfiguracao = errors.New("configuração ausente")

	// ErrParametroInvalido flags a precondition violation (prazo < 1, zero hours).
	ErrParametroInvalido = errors.New("parâmetro inválido")

	// ErrValorInvalido is returned when a monetary string cannot be parsed.
	ErrValorInvalido = errors.New("valor monetário inválido")
)
