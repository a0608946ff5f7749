package infra

import (
	"fmt"
	"io"

	"orcaobra/internal/calculo"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var nomesMeses = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// EscreverDRECSV writes the income statement as CSV: one row per line, one
// column per month, then the year total and the vertical analysis (empty
// when revenue is zero).
func EscreverDRECSV(w io.Writer, rel *calculo.RelatorioDRE) error {
	n := len(rel.Linhas)
	contas := make([]string, n)
	meses := make([][]string, 12)
	for m := range meses {
		meses[m] = make([]string, n)
	}
	totais := make([]string, n)
	av := make([]string, n)

	for i, l := range rel.Linhas {
		contas[i] = l.Conta
		for m := 0; m < 12; m++ {
			meses[m][i] = l.Meses[m].StringFixed(2)
		}
		totais[i] = l.Total.StringFixed(2)
		if l.AV != nil {
			av[i] = l.AV.StringFixed(2)
		}
	}

	cols := []series.Series{series.New(contas, series.String, "conta")}
	for m := 0; m < 12; m++ {
		cols = append(cols, series.New(meses[m], series.String, fmt.Sprintf("%s/%d", nomesMeses[m], rel.Ano)))
	}
	cols = append(cols,
		series.New(totais, series.String, "total"),
		series.New(av, series.String, "av_pct"),
	)
	return escreverCSV(w, dataframe.New(cols...))
}

// EscreverHistogramaCSV writes one row per (role, month) cell.
func EscreverHistogramaCSV(w io.Writer, h *calculo.Histograma) error {
	n := len(h.Linhas)
	funcao := make([]string, n)
	mes := make([]string, n)
	normais := make([]string, n)
	he50 := make([]string, n)
	he100 := make([]string, n)
	total := make([]string, n)
	custo := make([]string, n)

	for i, l := range h.Linhas {
		funcao[i] = l.Funcao
		mes[i] = l.Mes.Format("2006-01")
		normais[i] = l.HHNormais.StringFixed(2)
		he50[i] = l.HH50.StringFixed(2)
		he100[i] = l.HH100.StringFixed(2)
		total[i] = l.HHTotal.StringFixed(2)
		custo[i] = l.CustoTotal.StringFixed(2)
	}

	df := dataframe.New(
		series.New(funcao, series.String, "funcao"),
		series.New(mes, series.String, "mes"),
		series.New(normais, series.String, "hh_normais"),
		series.New(he50, series.String, "hh_50"),
		series.New(he100, series.String, "hh_100"),
		series.New(total, series.String, "hh_total"),
		series.New(custo, series.String, "custo_total"),
	)
	return escreverCSV(w, df)
}

func escreverCSV(w io.Writer, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("csv: build dataframe: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("csv: write: %w", err)
	}
	return nil
}
