package calculo_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertDecimal compares by value so "1320" and "1320.00" are equal.
func assertDecimal(t *testing.T, esperado string, obtido decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(esperado).Equal(obtido),
		append([]interface{}{"esperado %s, obtido %s", esperado, obtido.String()}, msgAndArgs...)...)
}
