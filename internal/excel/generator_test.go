package excel

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/painel-mulher/internal/report"
)

func TestGenerateWritesOneSheetPerTable(t *testing.T) {
	doc := report.Document{
		Title:       "Dados",
		Subtitle:    "junho de 2024",
		GeneratedAt: time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC),
		Tables: []report.Table{
			{Title: "Equipamentos", Headers: []string{"Município", "Tipo"}, Rows: [][]string{{"Crato", "Sala Lilás"}}},
			{Title: "Viaturas", Headers: []string{"Município", "Quantidade"}, Rows: [][]string{{"Sobral", "3"}, {"Iguatu", "1"}}},
			{Title: "Solicitações", Headers: []string{"Município"}},
		},
	}

	content, err := NewGenerator().Generate(doc)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Resumo", "Equipamentos", "Viaturas", "Solicitações"}, file.GetSheetList())

	value, err := file.GetCellValue("Equipamentos", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Sala Lilás", value)

	value, err = file.GetCellValue("Viaturas", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Iguatu", value)

	value, err = file.GetCellValue("Resumo", "B7")
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

func TestBuildSheetName(t *testing.T) {
	used := map[string]struct{}{}

	first := buildSheetName("Metas: 2024/06", used)
	assert.Equal(t, "Metas- 2024-06", first)
	used[first] = struct{}{}

	assert.Equal(t, "Metas- 2024-06-2", buildSheetName("Metas: 2024/06", used))
	assert.Equal(t, "Planilha", buildSheetName("  ", used))

	long := strings.Repeat("ção", 20)
	name := buildSheetName(long, used)
	assert.Len(t, []rune(name), 31)
	used[name] = struct{}{}

	second := buildSheetName(long, used)
	assert.Len(t, []rune(second), 31)
	assert.True(t, strings.HasSuffix(second, "-2"))
}

func TestColumnWidthsAreBounded(t *testing.T) {
	widths := columnWidths(report.Table{
		Headers: []string{"A", "Nome"},
		Rows:    [][]string{{strings.Repeat("x", 100), "abc"}},
	})
	assert.Equal(t, []float64{60, 10}, widths)
}
