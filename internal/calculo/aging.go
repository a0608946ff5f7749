package calculo

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemAging is one open receivable or payable.
type ItemAging struct {
	Vencimento time.Time
	Valor      decimal.Decimal
}

// Aging holds the sums per time-since-due bucket.
type Aging struct {
	AVencer    decimal.Decimal `json:"a_vencer"`
	Dias1a30   decimal.Decimal `json:"dias_1_30"`
	Dias31a60  decimal.Decimal `json:"dias_31_60"`
	Dias61a90  decimal.Decimal `json:"dias_61_90"`
	Acima90    decimal.Decimal `json:"acima_90"`
	Total      decimal.Decimal `json:"total"`
	Quantidade int             `json:"quantidade"`
}

// DiasVencidos counts calendar days from vencimento to hoje. Each side is
// read as a date in its own location (date columns arrive as UTC midnight,
// hoje in the server zone). Negative means not yet due.
func DiasVencidos(vencimento, hoje time.Time) int {
	return int(dataCivil(hoje).Sub(dataCivil(vencimento)).Hours() / 24)
}

func dataCivil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClassificarAging buckets items relative to hoje. Bucket upper bounds are
// inclusive: 30 days overdue is still "1–30".
func ClassificarAging(itens []ItemAging, hoje time.Time) Aging {
	var a Aging
	for _, it := range itens {
		dias := DiasVencidos(it.Vencimento, hoje)
		switch {
		case dias < 0:
			a.AVencer = a.AVencer.Add(it.Valor)
		case dias <= 30:
			a.Dias1a30 = a.Dias1a30.Add(it.Valor)
		case dias <= 60:
			a.Dias31a60 = a.Dias31a60.Add(it.Valor)
		case dias <= 90:
			a.Dias61a90 = a.Dias61a90.Add(it.Valor)
		default:
			a.Acima90 = a.Acima90.Add(it.Valor)
		}
		a.Total = a.Total.Add(it.Valor)
		a.Quantidade++
	}
	return a
}
