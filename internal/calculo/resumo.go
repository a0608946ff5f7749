package calculo

import (
	"fmt"
	"sort"

	"orcaobra/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImpostoCalculado is the audit line of one applied tax rule.
type ImpostoCalculado struct {
	RegraID        uuid.UUID       `json:"regra_id"`
	Nome           string          `json:"nome"`
	Tipo           string          `json:"tipo"`
	Base           string          `json:"base"`
	AplicaEm       string          `json:"aplica_em"`
	BaseTributavel decimal.Decimal `json:"base_tributavel"`
	Valor          decimal.Decimal `json:"valor"`
}

// ResultadoResumo carries the summary row plus the intermediate figures that
// are not persisted.
type ResultadoResumo struct {
	Resumo     model.ResumoOrcamento
	VendaBruta decimal.Decimal
	Impostos   []ImpostoCalculado
}

// TotalItem derives a line item's total: quantidade × preco_unitario × duracao.
// A zero duracao means the item is not time-based.
func TotalItem(quantidade, precoUnitario, duracao decimal.Decimal) decimal.Decimal {
	total := quantidade.Mul(precoUnitario)
	if duracao.IsPositive() {
		total = total.Mul(duracao)
	}
	return Arredondar(total)
}

// SomarPorCategoria sums item totals per cost category.
func SomarPorCategoria(itens []model.ItemCusto) map[string]decimal.Decimal {
	totais := make(map[string]decimal.Decimal, len(model.CategoriasCusto))
	for _, it := range itens {
		totais[it.Categoria] = totais[it.Categoria].Add(it.Total)
	}
	return totais
}

// CalcularResumo rolls category totals up into the priced budget summary.
//
// Missing category totals count as zero. The markup rule is mandatory. Each
// active tax rule is computed on its own base and never on another tax:
// base SALE starts from venda_bruta, COST from subtotal_custo; aplica_em
// MATERIALS narrows to the materials total and SERVICES to labor +
// engineering. FIXED rules contribute their value verbatim.
func CalcularResumo(revisaoID uuid.UUID, totais map[string]decimal.Decimal, markup *model.RegraMarkup, regras []model.RegraImposto) (*ResultadoResumo, error) {
	if markup == nil {
		return nil, fmt.Errorf("%w: regra de markup não cadastrada para a revisão", ErrConfiguracao)
	}

	r := model.ResumoOrcamento{
		RevisaoID:                revisaoID,
		TotalMateriais:           Arredondar(totais[model.CategoriaMateriais]),
		TotalMaoDeObra:           Arredondar(totais[model.CategoriaMaoDeObra]),
		TotalMobilizacao:         Arredondar(totais[model.CategoriaMobilizacao]),
		TotalManutencaoCanteiro:  Arredondar(totais[model.CategoriaManutencaoCanteiro]),
		TotalLocacaoEquipamentos: Arredondar(totais[model.CategoriaLocacaoEquipamentos]),
		TotalEngenharia:          Arredondar(totais[model.CategoriaEngenharia]),
		MarkupPct:                markup.MarkupPct,
	}

	r.SubtotalCusto = r.TotalMateriais.
		Add(r.TotalMaoDeObra).
		Add(r.TotalMobilizacao).
		Add(r.TotalManutencaoCanteiro).
		Add(r.TotalLocacaoEquipamentos).
		Add(r.TotalEngenharia)

	r.ValorMarkup = Arredondar(r.SubtotalCusto.Mul(markup.MarkupPct).Div(cem))
	vendaBruta := r.SubtotalCusto.Add(r.ValorMarkup)

	ativas := make([]model.RegraImposto, 0, len(regras))
	for _, regra := range regras {
		if regra.Ativo {
			ativas = append(ativas, regra)
		}
	}
	sort.SliceStable(ativas, func(i, j int) bool { return ativas[i].Ordem < ativas[j].Ordem })

	impostos := make([]ImpostoCalculado, 0, len(ativas))
	totalImpostos := decimal.Zero
	for _, regra := range ativas {
		base, err := baseTributavel(&regra, &r, vendaBruta)
		if err != nil {
			return nil, err
		}

		var valor decimal.Decimal
		switch regra.Tipo {
		case model.TipoImpostoPercent:
			valor = Arredondar(base.Mul(regra.Valor).Div(cem))
		case model.TipoImpostoFixed:
			valor = Arredondar(regra.Valor)
		default:
			return nil, fmt.Errorf("%w: tipo de imposto %q na regra %q", ErrParametroInvalido, regra.Tipo, regra.Nome)
		}

		totalImpostos = totalImpostos.Add(valor)
		impostos = append(impostos, ImpostoCalculado{
			RegraID:        regra.ID,
			Nome:           regra.Nome,
			Tipo:           regra.Tipo,
			Base:           regra.Base,
			AplicaEm:       regra.AplicaEm,
			BaseTributavel: base,
			Valor:          valor,
		})
	}

	r.TotalImpostos = totalImpostos
	r.PrecoVenda = vendaBruta.Add(totalImpostos)
	r.MargemRS = r.PrecoVenda.Sub(r.SubtotalCusto).Sub(r.TotalImpostos)
	if r.PrecoVenda.IsPositive() {
		r.MargemPct = Arredondar(r.MargemRS.Div(r.PrecoVenda).Mul(cem))
	} else {
		r.MargemPct = decimal.Zero
	}

	return &ResultadoResumo{Resumo: r, VendaBruta: vendaBruta, Impostos: impostos}, nil
}

// baseTributavel selects the amount a tax rule applies to. The narrowing of
// aplica_em replaces the SALE/COST base with the raw cost pool.
func baseTributavel(regra *model.RegraImposto, r *model.ResumoOrcamento, vendaBruta decimal.Decimal) (decimal.Decimal, error) {
	var base decimal.Decimal
	switch regra.Base {
	case model.BaseImpostoVenda, "":
		base = vendaBruta
	case model.BaseImpostoCusto:
		base = r.SubtotalCusto
	default:
		return decimal.Zero, fmt.Errorf("%w: base de imposto %q na regra %q", ErrParametroInvalido, regra.Base, regra.Nome)
	}

	switch regra.AplicaEm {
	case model.AplicaEmTodos, "":
		return base, nil
	case model.AplicaEmMateriais:
		return r.TotalMateriais, nil
	case model.AplicaEmServicos:
		return r.TotalMaoDeObra.Add(r.TotalEngenharia), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: aplica_em %q na regra %q", ErrParametroInvalido, regra.AplicaEm, regra.Nome)
	}
}
