package infra

// pdf.go renders the budget summary and the DRE with go-pdf/fpdf.
// Core fonts are cp1252; every string goes through the UTF-8 translator so
// accented Portuguese text renders correctly.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"orcaobra/internal/calculo"
	"orcaobra/internal/model"

	"github.com/go-pdf/fpdf"
)

var rotulosCategoria = map[string]string{
	model.CategoriaMateriais:           "Materiais",
	model.CategoriaMaoDeObra:           "Mão de obra",
	model.CategoriaMobilizacao:         "Mobilização",
	model.CategoriaManutencaoCanteiro:  "Manutenção de canteiro",
	model.CategoriaLocacaoEquipamentos: "Locação de equipamentos",
	model.CategoriaEngenharia:          "Engenharia",
}

// EscreverResumoPDF renders the price summary of a revision as an A4 page.
func EscreverResumoPDF(w io.Writer, rev *model.Revisao, r *model.ResumoOrcamento) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30
	colValor := 45.0

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr("Resumo do Orçamento"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Revisão nº %d  |  prazo %d meses", rev.Numero, rev.PrazoMeses)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, tr("Calculado em "+r.CalculadoEm.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	linha := func(rotulo string, valor string, negrito bool) {
		estilo := ""
		if negrito {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 10)
		pdf.CellFormat(contentW-colValor, 7, tr(rotulo), "B", 0, "L", false, 0, "")
		pdf.CellFormat(colValor, 7, tr(valor), "B", 1, "R", false, 0, "")
	}

	// ── Custos por categoria ─────────────────────────────────────────────────
	for _, cat := range model.CategoriasCusto {
		linha(rotulosCategoria[cat], calculo.FormatarMoeda(r.TotalCategoria(cat)), false)
	}
	linha("Subtotal de custo", calculo.FormatarMoeda(r.SubtotalCusto), true)
	pdf.Ln(3)

	// ── Preço ────────────────────────────────────────────────────────────────
	linha(fmt.Sprintf("Markup (%s%%)", calculo.FormatarNumero(r.MarkupPct)), calculo.FormatarMoeda(r.ValorMarkup), false)
	linha("Impostos", calculo.FormatarMoeda(r.TotalImpostos), false)
	linha("Preço de venda", calculo.FormatarMoeda(r.PrecoVenda), true)
	pdf.Ln(3)
	linha("Margem (R$)", calculo.FormatarMoeda(r.MargemRS), false)
	linha("Margem (%)", calculo.FormatarNumero(r.MargemPct)+"%", false)

	return pdf.Output(w)
}

// GerarResumoPDF writes the summary to storagePath/resumo_{revisao}.pdf and
// returns the file path (used as an email attachment).
func GerarResumoPDF(rev *model.Revisao, r *model.ResumoOrcamento, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(storagePath, fmt.Sprintf("resumo_%s.pdf", rev.ID))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	defer f.Close()

	if err := EscreverResumoPDF(f, rev, r); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return path, nil
}

// EscreverDREPDF renders the income statement on landscape A4: account,
// twelve months, total and AV%.
func EscreverDREPDF(w io.Writer, rel *calculo.RelatorioDRE) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(8, 10, 8)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16
	colConta := 62.0
	colNum := (contentW - colConta) / 14

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr(fmt.Sprintf("DRE %d", rel.Ano)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, tr("Gerado em "+time.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Header row ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colConta, 5, "Conta", "1", 0, "L", true, 0, "")
	for _, m := range nomesMeses {
		pdf.CellFormat(colNum, 5, m, "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(colNum, 5, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colNum, 5, "AV%", "1", 1, "C", true, 0, "")

	// ── Lines ────────────────────────────────────────────────────────────────
	for _, l := range rel.Linhas {
		estilo := ""
		if l.Subtotal {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 6)
		pdf.CellFormat(colConta, 5, tr(l.Conta), "1", 0, "L", l.Subtotal, 0, "")
		for _, v := range l.Meses {
			pdf.CellFormat(colNum, 5, calculo.FormatarNumero(v), "1", 0, "R", l.Subtotal, 0, "")
		}
		pdf.CellFormat(colNum, 5, calculo.FormatarNumero(l.Total), "1", 0, "R", l.Subtotal, 0, "")
		av := "—"
		if l.AV != nil {
			av = calculo.FormatarNumero(*l.AV)
		}
		pdf.CellFormat(colNum, 5, tr(av), "1", 1, "R", l.Subtotal, 0, "")
	}

	if len(rel.NaoMapeadas) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 4, tr(fmt.Sprintf("%d categorias sem mapeamento contábil", len(rel.NaoMapeadas))), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
