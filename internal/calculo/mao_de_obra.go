package calculo

import (
	"fmt"

	"orcaobra/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CalcularCustosMaoObra derives one hourly cost snapshot per active role.
//
//	salario_com_encargos = salario_base × (1 + encargos%)
//	normal = salario_com_encargos / carga_horaria_mensal
//	he50   = normal × (1 + he50%)
//	he100  = normal × (1 + he100%)
//
// Overtime rates derive from the unrounded normal rate; all three are rounded
// at the end. The result always covers every active role so the caller can
// replace the revision's snapshots as a whole.
func CalcularCustosMaoObra(funcoes []model.FuncaoMaoObra, params *model.ParametrosMaoObra) ([]model.CustoMaoObra, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: parâmetros de mão de obra não cadastrados para a revisão", ErrConfiguracao)
	}

	custos := make([]model.CustoMaoObra, 0, len(funcoes))
	for i := range funcoes {
		f := &funcoes[i]
		if !f.Ativo {
			continue
		}
		c, err := CalcularCustoHora(f, params)
		if err != nil {
			return nil, err
		}
		custos = append(custos, c)
	}
	return custos, nil
}

// CalcularCustoHora computes the snapshot of a single role.
func CalcularCustoHora(f *model.FuncaoMaoObra, params *model.ParametrosMaoObra) (model.CustoMaoObra, error) {
	if params == nil {
		return model.CustoMaoObra{}, fmt.Errorf("%w: parâmetros de mão de obra não cadastrados para a revisão", ErrConfiguracao)
	}
	if !f.CargaHorariaMensal.IsPositive() {
		return model.CustoMaoObra{}, fmt.Errorf("%w: função %q sem carga horária mensal", ErrParametroInvalido, f.Funcao)
	}

	comEncargos := f.SalarioBase.Mul(fator(params.EncargosPct))
	normal := comEncargos.Div(f.CargaHorariaMensal)
	he50 := normal.Mul(fator(params.HE50Pct))
	he100 := normal.Mul(fator(params.HE100Pct))

	memoria := model.MemoriaCalculo{
		Funcao:              f.Funcao,
		Modalidade:          f.Modalidade,
		SalarioBase:         f.SalarioBase,
		CargaHorariaMensal:  f.CargaHorariaMensal,
		EncargosPct:         params.EncargosPct,
		HE50Pct:             params.HE50Pct,
		HE100Pct:            params.HE100Pct,
		PericulosidadePct:   params.PericulosidadePct,
		InsalubridadePct:    params.InsalubridadePct,
		AdicionalNoturnoPct: params.AdicionalNoturnoPct,
		ImprodutividadePct:  params.ImprodutividadePct,
		SalarioComEncargos:  Arredondar(comEncargos),
	}

	return model.CustoMaoObra{
		RevisaoID:       f.RevisaoID,
		FuncaoID:        f.ID,
		CustoHoraNormal: Arredondar(normal),
		CustoHoraHE50:   Arredondar(he50),
		CustoHoraHE100:  Arredondar(he100),
		MemoriaJSON:     datatypes.NewJSONType(memoria),
	}, nil
}

// CustoHoras prices a set of hours against a snapshot.
func CustoHoras(c *model.CustoMaoObra, normais, he50, he100 decimal.Decimal) decimal.Decimal {
	return normais.Mul(c.CustoHoraNormal).
		Add(he50.Mul(c.CustoHoraHE50)).
		Add(he100.Mul(c.CustoHoraHE100))
}
