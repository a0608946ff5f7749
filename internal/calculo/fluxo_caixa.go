package calculo

import (
	"fmt"
	"time"

	"orcaobra/internal/model"

	"github.com/shopspring/decimal"
)

// InicioDoMes truncates t to the first day of its month (UTC date).
func InicioDoMes(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DistribuirFluxoCaixa spreads each category total evenly over prazoMeses
// months starting at inicio's month. The monthly value is rounded to cents;
// categories whose monthly value is not positive produce no entries.
func DistribuirFluxoCaixa(resumo *model.ResumoOrcamento, prazoMeses int, inicio time.Time) ([]model.FluxoCaixaEntrada, error) {
	if prazoMeses < 1 {
		return nil, fmt.Errorf("%w: prazo_meses deve ser >= 1 (recebido %d)", ErrParametroInvalido, prazoMeses)
	}
	if resumo == nil {
		return nil, fmt.Errorf("%w: resumo do orçamento não calculado", ErrConfiguracao)
	}

	primeiro := InicioDoMes(inicio)
	prazo := decimal.NewFromInt(int64(prazoMeses))

	entradas := make([]model.FluxoCaixaEntrada, 0, len(model.CategoriasCusto)*prazoMeses)
	for _, categoria := range model.CategoriasCusto {
		mensal := Arredondar(resumo.TotalCategoria(categoria).Div(prazo))
		if !mensal.IsPositive() {
			continue
		}
		for i := 0; i < prazoMeses; i++ {
			entradas = append(entradas, model.FluxoCaixaEntrada{
				RevisaoID: resumo.RevisaoID,
				Mes:       primeiro.AddDate(0, i, 0),
				Categoria: categoria,
				Valor:     mensal,
			})
		}
	}
	return entradas, nil
}

// TotalPorCategoria sums a schedule back per category.
func TotalPorCategoria(entradas []model.FluxoCaixaEntrada) map[string]decimal.Decimal {
	totais := make(map[string]decimal.Decimal)
	for _, e := range entradas {
		totais[e.Categoria] = totais[e.Categoria].Add(e.Valor)
	}
	return totais
}
