package calculo_test

import (
	"testing"

	"orcaobra/internal/calculo"
	"orcaobra/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novaFuncao(nome, salario, horas string) model.FuncaoMaoObra {
	return model.FuncaoMaoObra{
		ID:                 uuid.New(),
		RevisaoID:          uuid.New(),
		Funcao:             nome,
		SalarioBase:        dec(salario),
		CargaHorariaMensal: dec(horas),
		Modalidade:         model.ModalidadeCLT,
		Ativo:              true,
	}
}

func parametros(encargos, he50, he100 string) *model.ParametrosMaoObra {
	return &model.ParametrosMaoObra{
		EncargosPct: dec(encargos),
		HE50Pct:     dec(he50),
		HE100Pct:    dec(he100),
	}
}

func TestCustoMaoObra_Cenario(t *testing.T) {
	f := novaFuncao("Eletricista", "3000", "220")

	custos, err := calculo.CalcularCustosMaoObra([]model.FuncaoMaoObra{f}, parametros("80", "50", "100"))
	require.NoError(t, err)
	require.Len(t, custos, 1)

	c := custos[0]
	assert.Equal(t, f.ID, c.FuncaoID)
	assert.Equal(t, f.RevisaoID, c.RevisaoID)
	assertDecimal(t, "24.55", c.CustoHoraNormal)
	assertDecimal(t, "36.82", c.CustoHoraHE50)
	assertDecimal(t, "49.09", c.CustoHoraHE100)
}

func TestCustoMaoObra_MemoriaRegistraEntradas(t *testing.T) {
	f := novaFuncao("Pedreiro", "3000", "220")
	p := parametros("80", "50", "100")
	p.PericulosidadePct = dec("30")

	c, err := calculo.CalcularCustoHora(&f, p)
	require.NoError(t, err)

	m := c.MemoriaJSON.Data()
	assert.Equal(t, "Pedreiro", m.Funcao)
	assert.Equal(t, model.ModalidadeCLT, m.Modalidade)
	assertDecimal(t, "3000", m.SalarioBase)
	assertDecimal(t, "220", m.CargaHorariaMensal)
	assertDecimal(t, "80", m.EncargosPct)
	assertDecimal(t, "30", m.PericulosidadePct)
	assertDecimal(t, "5400", m.SalarioComEncargos)
}

func TestCustoMaoObra_EncargosMonotonico(t *testing.T) {
	f := novaFuncao("Servente", "2000", "220")

	anterior, err := calculo.CalcularCustoHora(&f, parametros("0", "50", "100"))
	require.NoError(t, err)
	for _, encargos := range []string{"10", "35.5", "80", "120"} {
		atual, err := calculo.CalcularCustoHora(&f, parametros(encargos, "50", "100"))
		require.NoError(t, err)
		assert.True(t, atual.CustoHoraNormal.GreaterThan(anterior.CustoHoraNormal),
			"encargos %s: %s <= %s", encargos, atual.CustoHoraNormal, anterior.CustoHoraNormal)
		anterior = atual
	}
}

func TestCustoMaoObra_SemParametros(t *testing.T) {
	_, err := calculo.CalcularCustosMaoObra([]model.FuncaoMaoObra{novaFuncao("X", "1000", "220")}, nil)
	assert.ErrorIs(t, err, calculo.ErrConfiguracao)
}

func TestCustoMaoObra_InativaExcluida(t *testing.T) {
	ativa := novaFuncao("Ativa", "3000", "220")
	inativa := novaFuncao("Inativa", "3000", "220")
	inativa.Ativo = false

	custos, err := calculo.CalcularCustosMaoObra([]model.FuncaoMaoObra{ativa, inativa}, parametros("80", "50", "100"))
	require.NoError(t, err)
	require.Len(t, custos, 1)
	assert.Equal(t, ativa.ID, custos[0].FuncaoID)
}

func TestCustoMaoObra_CargaHorariaZero(t *testing.T) {
	f := novaFuncao("Sem horas", "3000", "0")
	_, err := calculo.CalcularCustosMaoObra([]model.FuncaoMaoObra{f}, parametros("80", "50", "100"))
	assert.ErrorIs(t, err, calculo.ErrParametroInvalido)
	assert.ErrorContains(t, err, "Sem horas")
}
