package calculo

import (
	"sort"
	"time"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LinhaHistograma is one (role, month) cell of the man-hour histogram.
type LinhaHistograma struct {
	FuncaoID   uuid.UUID       `json:"funcao_id"`
	Funcao     string          `json:"funcao"`
	Mes        time.Time       `json:"mes"`
	HHNormais  decimal.Decimal `json:"hh_normais"`
	HH50       decimal.Decimal `json:"hh_50"`
	HH100      decimal.Decimal `json:"hh_100"`
	HHTotal    decimal.Decimal `json:"hh_total"`
	CustoTotal decimal.Decimal `json:"custo_total"`
}

// TotalHistograma is a reduction of lines by month or by role.
type TotalHistograma struct {
	Chave      string          `json:"chave"`
	HHTotal    decimal.Decimal `json:"hh_total"`
	CustoTotal decimal.Decimal `json:"custo_total"`
}

// Histograma is the costed histogram with its totals.
type Histograma struct {
	Linhas          []LinhaHistograma `json:"linhas"`
	TotaisPorMes    []TotalHistograma `json:"totais_por_mes"`
	TotaisPorFuncao []TotalHistograma `json:"totais_por_funcao"`
	HHTotal         decimal.Decimal   `json:"hh_total"`
	CustoTotal      decimal.Decimal   `json:"custo_total"`
	// FuncoesSemCusto lists roles with hours but no cost snapshot; their
	// hours are costed at zero until the labor cost is recalculated.
	FuncoesSemCusto []uuid.UUID `json:"funcoes_sem_custo"`
}

// CalcularHistograma prices every entry with its role's snapshot and reduces
// the result by month and by role.
func CalcularHistograma(entradas []model.HistogramaEntrada, custos []model.CustoMaoObra) *Histograma {
	porFuncao := make(map[uuid.UUID]*model.CustoMaoObra, len(custos))
	for i := range custos {
		porFuncao[custos[i].FuncaoID] = &custos[i]
	}

	h := &Histograma{Linhas: make([]LinhaHistograma, 0, len(entradas))}
	semCusto := make(map[uuid.UUID]bool)
	mes := make(map[string]*TotalHistograma)
	funcao := make(map[string]*TotalHistograma)

	for _, e := range entradas {
		l := LinhaHistograma{
			FuncaoID:  e.FuncaoID,
			Funcao:    e.FuncaoID.String(),
			Mes:       InicioDoMes(e.Mes),
			HHNormais: e.HHNormais,
			HH50:      e.HH50,
			HH100:     e.HH100,
			HHTotal:   e.HHNormais.Add(e.HH50).Add(e.HH100),
		}
		if e.Funcao != nil {
			l.Funcao = e.Funcao.Funcao
		}
		if c, ok := porFuncao[e.FuncaoID]; ok {
			l.CustoTotal = Arredondar(CustoHoras(c, e.HHNormais, e.HH50, e.HH100))
		} else if !semCusto[e.FuncaoID] {
			semCusto[e.FuncaoID] = true
			h.FuncoesSemCusto = append(h.FuncoesSemCusto, e.FuncaoID)
		}

		h.Linhas = append(h.Linhas, l)
		h.HHTotal = h.HHTotal.Add(l.HHTotal)
		h.CustoTotal = h.CustoTotal.Add(l.CustoTotal)
		acumular(mes, l.Mes.Format("2006-01"), l)
		acumular(funcao, l.Funcao, l)
	}

	h.TotaisPorMes = ordenar(mes)
	h.TotaisPorFuncao = ordenar(funcao)
	return h
}

func acumular(m map[string]*TotalHistograma, chave string, l LinhaHistograma) {
	t, ok := m[chave]
	if !ok {
		t = &TotalHistograma{Chave: chave}
		m[chave] = t
	}
	t.HHTotal = t.HHTotal.Add(l.HHTotal)
	t.CustoTotal = t.CustoTotal.Add(l.CustoTotal)
}

func ordenar(m map[string]*TotalHistograma) []TotalHistograma {
	out := make([]TotalHistograma, 0, len(m))
	for _, t := range m {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chave < out[j].Chave })
	return out
}
