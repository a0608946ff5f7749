package calculo_test

import (
	"testing"
	"time"

	"orcaobra/internal/calculo"

	"github.com/stretchr/testify/assert"
)

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 0, 0, 0, 0, time.UTC)
}

func TestDiasVencidos(t *testing.T) {
	hoje := time.Date(2026, time.October, 17, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, calculo.DiasVencidos(dia(2026, time.October, 17), hoje))
	assert.Equal(t, 30, calculo.DiasVencidos(dia(2026, time.September, 17), hoje))
	assert.Equal(t, -1, calculo.DiasVencidos(dia(2026, time.October, 18), hoje))
}

func TestDiasVencidos_HojeForaDeUTC(t *testing.T) {
	// 01:00 in UTC+3 is still October 16 in UTC.
	hoje := time.Date(2026, time.October, 17, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))

	assert.Equal(t, 0, calculo.DiasVencidos(dia(2026, time.October, 17), hoje))
	assert.Equal(t, 30, calculo.DiasVencidos(dia(2026, time.September, 17), hoje))
	assert.Equal(t, -1, calculo.DiasVencidos(dia(2026, time.October, 18), hoje))

	a := calculo.ClassificarAging([]calculo.ItemAging{
		{Vencimento: dia(2026, time.October, 17), Valor: dec("5")},
	}, hoje)
	assertDecimal(t, "5", a.Dias1a30)
	assert.True(t, a.AVencer.IsZero())
}

func TestDiasVencidos_HojeAOesteDeUTC(t *testing.T) {
	hoje := time.Date(2026, time.October, 17, 23, 0, 0, 0, time.FixedZone("UTC-3", -3*3600))

	assert.Equal(t, 0, calculo.DiasVencidos(dia(2026, time.October, 17), hoje))
	assert.Equal(t, 1, calculo.DiasVencidos(dia(2026, time.October, 16), hoje))
}

func TestClassificarAging(t *testing.T) {
	hoje := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	itens := []calculo.ItemAging{
		{Vencimento: dia(2026, time.November, 1), Valor: dec("1")},   // a vencer
		{Vencimento: dia(2026, time.October, 17), Valor: dec("2")},   // vence hoje
		{Vencimento: dia(2026, time.September, 17), Valor: dec("4")}, // 30 dias
		{Vencimento: dia(2026, time.September, 16), Valor: dec("8")}, // 31 dias
		{Vencimento: dia(2026, time.July, 19), Valor: dec("16")},     // 90 dias
		{Vencimento: dia(2026, time.July, 18), Valor: dec("32")},     // 91 dias
	}

	a := calculo.ClassificarAging(itens, hoje)

	assertDecimal(t, "1", a.AVencer)
	assertDecimal(t, "6", a.Dias1a30)
	assertDecimal(t, "8", a.Dias31a60)
	assertDecimal(t, "16", a.Dias61a90)
	assertDecimal(t, "32", a.Acima90)
	assertDecimal(t, "63", a.Total)
	assert.Equal(t, 6, a.Quantidade)
}

func TestClassificarAging_Vazio(t *testing.T) {
	a := calculo.ClassificarAging(nil, time.Now())
	assert.True(t, a.Total.IsZero())
	assert.Zero(t, a.Quantidade)
}
