package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/painel-mulher/internal/report"
)

const (
	rowHeight    = 7.0
	headerLine   = 4.0
	marginSide   = 10.0
	marginTop    = 15.0
	marginBottom = 15.0
)

type Generator struct {
	fontName string
	header   [3]int
}

func NewGenerator() *Generator {
	// Helvetica with the cp1252 translator covers Portuguese accents.
	return &Generator{fontName: "Helvetica", header: [3]int{102, 45, 145}}
}

// Generate renders every table of doc on landscape A4 pages, repeating the
// table header after each page break.
func (g *Generator) Generate(doc report.Document) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(g.fontName, "", 8)
		pdf.SetTextColor(110, 110, 110)
		left := tr(fmt.Sprintf("Gerado em %s", report.DateTime(doc.GeneratedAt)))
		pdf.CellFormat(0, 5, left, "", 0, "L", false, 0, "")
		pdf.SetX(marginSide)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	pdf.SetFont(g.fontName, "B", 15)
	pdf.CellFormat(0, 9, tr(doc.Title), "", 1, "C", false, 0, "")
	if strings.TrimSpace(doc.Subtitle) != "" {
		pdf.SetFont(g.fontName, "", 11)
		pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for i, table := range doc.Tables {
		if i > 0 {
			pdf.Ln(6)
		}
		g.drawTable(pdf, tr, table)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) drawTable(pdf *gofpdf.Fpdf, tr func(string) string, table report.Table) {
	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(table, pageW-2*marginSide)
	limit := pageH - marginBottom - 5

	if pdf.GetY()+3*rowHeight+8 > limit {
		pdf.AddPage()
	}
	if table.Title != "" {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, tr(table.Title), "", 1, "L", false, 0, "")
	}
	g.drawHeaderRow(pdf, tr, table.Headers, widths)

	for i, row := range table.Rows {
		if pdf.GetY()+rowHeight > limit {
			pdf.AddPage()
			g.drawHeaderRow(pdf, tr, table.Headers, widths)
		}
		g.drawTableRow(pdf, tr, row, widths, i%2 == 1)
	}
	if len(table.Rows) == 0 {
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(sum(widths), rowHeight, tr("Sem registros"), "1", 1, "C", false, 0, "")
	}
}

// drawHeaderRow wraps long labels inside their column; every cell of the row
// gets the height of the tallest one.
func (g *Generator) drawHeaderRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64) {
	pdf.SetFillColor(g.header[0], g.header[1], g.header[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(g.fontName, "B", 8)

	lines := headerLines(pdf, tr, cols, widths)
	height := rowHeight
	for _, cell := range lines {
		if h := float64(len(cell))*headerLine + 2; h > height {
			height = h
		}
	}

	x, y := pdf.GetX(), pdf.GetY()
	for i, w := range widths {
		pdf.Rect(x, y, w, height, "FD")
		top := y + (height-float64(len(lines[i]))*headerLine)/2
		for j, line := range lines[i] {
			pdf.SetXY(x, top+float64(j)*headerLine)
			pdf.CellFormat(w, headerLine, line, "", 0, "C", false, 0, "")
		}
		x += w
	}
	pdf.SetXY(marginSide, y+height)
	pdf.SetTextColor(0, 0, 0)
}

// headerLines splits each translated label into lines that fit its column.
func headerLines(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64) [][]string {
	out := make([][]string, len(widths))
	for i, w := range widths {
		text := ""
		if i < len(cols) {
			text = tr(cols[i])
		}
		for _, line := range pdf.SplitLines([]byte(text), w) {
			out[i] = append(out[i], string(line))
		}
		if len(out[i]) == 0 {
			out[i] = []string{""}
		}
	}
	return out
}

func (g *Generator) drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, shaded bool) {
	pdf.SetFillColor(243, 238, 248)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(g.fontName, "", 8)

	for i, w := range widths {
		text := ""
		if i < len(cols) {
			text = safeValue(cols[i], false)
		}
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(w, rowHeight, fit(pdf, tr, text, w-2), "1", 0, align, shaded, 0, "")
	}
	pdf.Ln(-1)
}

func columnWidths(table report.Table, usable float64) []float64 {
	n := len(table.Headers)
	weights := table.Widths
	if len(weights) != n {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}
	total := sum(weights)
	widths := make([]float64, n)
	for i, w := range weights {
		widths[i] = usable * w / total
	}
	return widths
}

// fit shortens the UTF-8 text with an ellipsis until its translation fits in
// width and returns the translated result. Cutting happens before tr so an
// accented character is never split.
func fit(pdf *gofpdf.Fpdf, tr func(string) string, text string, width float64) string {
	if out := tr(text); pdf.GetStringWidth(out) <= width {
		return out
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := tr(strings.TrimRight(string(runes), " ") + "...")
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

func safeValue(value string, header bool) string {
	if header || strings.TrimSpace(value) != "" {
		return value
	}
	return "—"
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
