package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/report"
)

func newTestPDF(style string) (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.AddPage()
	pdf.SetFont("Helvetica", style, 8)
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

func TestGenerateProducesPDF(t *testing.T) {
	rows := make([][]string, 0, 80)
	for i := 0; i < 80; i++ {
		rows = append(rows, []string{fmt.Sprintf("Região %d com nome bem comprido para cortar", i), "1", "40,0%"})
	}
	doc := report.Document{
		Title:       "Relatório comparativo",
		Subtitle:    "junho de 2024 x maio de 2024",
		GeneratedAt: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
		Tables: []report.Table{
			{Title: "Regiões", Headers: []string{"Região", "Equipamentos", "Cobertura"}, Rows: rows, Widths: []float64{1, 3, 1}},
			{Title: "Vazia", Headers: []string{"A", "B"}},
		},
	}

	content, err := NewGenerator().Generate(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths(report.Table{Headers: []string{"a", "b"}, Widths: []float64{3, 1}}, 100)
	assert.InDeltaSlice(t, []float64{75, 25}, widths, 1e-9)

	equal := columnWidths(report.Table{Headers: []string{"a", "b", "c", "d"}, Widths: []float64{1}}, 100)
	assert.InDeltaSlice(t, []float64{25, 25, 25, 25}, equal, 1e-9)
}

func TestSafeValue(t *testing.T) {
	assert.Equal(t, "—", safeValue("  ", false))
	assert.Equal(t, "", safeValue("", true))
	assert.Equal(t, "x", safeValue("x", false))
}

func TestFitKeepsAccentsWhenTruncating(t *testing.T) {
	pdf, tr := newTestPDF("B")

	out := fit(pdf, tr, "Sertão de Crateús", 20)

	assert.NotContains(t, out, "\uFFFD")
	assert.True(t, strings.HasPrefix(out, tr("Sertã")), "got %q", out)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(out), 20.0)

	assert.Equal(t, tr("Crato"), fit(pdf, tr, "Crato", 20))
	assert.Equal(t, "", fit(pdf, tr, "Sertão", 0.5))
}

func TestHeaderLinesKeepMonthLabels(t *testing.T) {
	pdf, tr := newTestPDF("B")
	table := report.ComparisonTable(aggregate.Comparison{
		Current:  period.YearMonth{Year: 2024, Month: time.June},
		Previous: period.YearMonth{Year: 2024, Month: time.May},
	})
	pageW, _ := pdf.GetPageSize()
	widths := columnWidths(table, pageW-2*marginSide)

	lines := headerLines(pdf, tr, table.Headers, widths)

	require.Len(t, lines, len(table.Headers))
	for i, header := range table.Headers {
		assert.Equal(t, tr(header), strings.Join(lines[i], " "), "header %d", i)
		for _, line := range lines[i] {
			assert.LessOrEqual(t, pdf.GetStringWidth(line), widths[i]-2+0.01, "header %q", header)
		}
	}
	joined := strings.Join(lines[1], " ") + strings.Join(lines[2], " ")
	assert.Contains(t, joined, "2024-05")
	assert.Contains(t, joined, "2024-06")
}
