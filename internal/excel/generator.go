package excel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/painel-mulher/internal/report"
)

const maxSheetName = 31

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a summary sheet followed by one sheet per table.
func (g *Generator) Generate(doc report.Document) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	summarySheet := "Resumo"
	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"662D91"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	g.writeSummary(file, summarySheet, doc)

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, table := range doc.Tables {
		sheetName := buildSheetName(table.Title, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeTable(file, sheetName, table, headerStyle); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, doc report.Document) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Relatório")
	set("B1", doc.Title)
	set("A2", "Período")
	set("B2", doc.Subtitle)
	set("A3", "Gerado em")
	set("B3", report.DateTime(doc.GeneratedAt))
	set("A5", "Planilha")
	set("B5", "Linhas")
	for i, table := range doc.Tables {
		row := 6 + i
		set(fmt.Sprintf("A%d", row), table.Title)
		set(fmt.Sprintf("B%d", row), len(table.Rows))
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 50)
}

func (g *Generator) writeTable(file *excelize.File, sheet string, table report.Table, headerStyle int) error {
	for i, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if len(table.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
		if err != nil {
			return err
		}
		if err := file.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	for i, width := range columnWidths(table) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := file.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	return file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// columnWidths sizes each column to its longest cell, within [10, 60].
func columnWidths(table report.Table) []float64 {
	widths := make([]float64, len(table.Headers))
	for i, header := range table.Headers {
		widths[i] = float64(utf8.RuneCountInString(header))
	}
	for _, row := range table.Rows {
		for i, value := range row {
			if i >= len(widths) {
				break
			}
			if n := float64(utf8.RuneCountInString(value)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i, w := range widths {
		w += 2
		if w < 10 {
			w = 10
		}
		if w > 60 {
			w = 60
		}
		widths[i] = w
	}
	return widths
}

func buildSheetName(title string, used map[string]struct{}) string {
	base := truncateRunes(sanitizeSheetName(title), maxSheetName)

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		nameCandidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Planilha"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Planilha"
	}
	return value
}

// truncateRunes cuts on rune boundaries; excelize counts sheet names in characters.
func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
