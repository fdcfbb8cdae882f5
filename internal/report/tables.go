package report

import (
	"fmt"
	"time"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/goals"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
)

// Table is a titled grid of preformatted cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Widths are relative column weights; nil means equal columns.
	Widths []float64
}

// Document is what the PDF and Excel renderers consume.
type Document struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Tables      []Table
}

const totalLabel = "Total Ceará"

var statusLabels = map[goals.Status]string{
	goals.StatusAchieved: "Atingida",
	goals.StatusOnTrack:  "No ritmo",
	goals.StatusAtRisk:   "Em risco",
	goals.StatusBehind:   "Atrasada",
}

func StatusLabel(s goals.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func SummaryTable(title string, s aggregate.Summary) Table {
	t := Table{
		Title: title,
		Headers: []string{
			"Região", "Municípios", "Equip. (total)", "Equip. (novos)", "Viaturas (total)",
			"Viaturas (novas)", "Solic. (novas)", "Aprovadas", "Inauguradas", "Casas c/ patrulha", "Cobertura",
		},
		Widths: []float64{3, 1, 1, 1, 1, 1, 1, 1, 1, 1.2, 1},
	}
	for _, st := range s.Regions {
		t.Rows = append(t.Rows, summaryRow(string(st.Region), st))
	}
	t.Rows = append(t.Rows, summaryRow(totalLabel, s.Total))
	return t
}

func summaryRow(label string, st aggregate.RegionStats) []string {
	return []string{
		label,
		Count(st.Municipalities),
		Count(st.EquipmentTotal),
		Count(st.EquipmentNew),
		Count(st.VehiclesTotal),
		Count(st.VehiclesNew),
		Count(st.RequestsNew),
		Count(st.ApprovedNew),
		Count(st.InauguratedNew),
		Count(st.PatrolHouses),
		Percent(st.Coverage),
	}
}

// ComparisonTable lays out both months and the variation of each metric.
func ComparisonTable(cmp aggregate.Comparison) Table {
	cur, prev := cmp.Current.String(), cmp.Previous.String()
	t := Table{
		Title: fmt.Sprintf("Comparativo %s x %s", MonthLabel(cmp.Current), MonthLabel(cmp.Previous)),
		Headers: []string{
			"Região",
			"Equip. " + prev, "Equip. " + cur, "Var.",
			"Viaturas " + prev, "Viaturas " + cur, "Var.",
			"Solic. " + prev, "Solic. " + cur, "Var.",
			"Cobertura " + prev, "Cobertura " + cur, "Dif.",
		},
		Widths: []float64{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1.2, 1.2, 1},
	}
	for _, row := range cmp.Rows {
		t.Rows = append(t.Rows, comparisonRow(string(row.Region), row))
	}
	t.Rows = append(t.Rows, comparisonRow(totalLabel, cmp.Total))
	return t
}

func comparisonRow(label string, row aggregate.ComparisonRow) []string {
	return []string{
		label,
		Count(int(row.EquipmentTotal.Previous)), Count(int(row.EquipmentTotal.Current)), SignedPercent(row.EquipmentTotal.Variation),
		Count(int(row.VehiclesTotal.Previous)), Count(int(row.VehiclesTotal.Current)), SignedPercent(row.VehiclesTotal.Variation),
		Count(int(row.RequestsNew.Previous)), Count(int(row.RequestsNew.Current)), SignedPercent(row.RequestsNew.Variation),
		Percent(row.Coverage.Previous), Percent(row.Coverage.Current), signedPoints(row.Coverage.Difference()),
	}
}

func signedPoints(v float64) string {
	v = round1(v)
	if v > 0 {
		return "+" + Decimal(v) + " p.p."
	}
	return Decimal(v) + " p.p."
}

func GoalsTable(ym period.YearMonth, results []goals.RegionProgress) Table {
	t := Table{
		Title: "Metas de " + MonthLabel(ym),
		Headers: []string{
			"Região", "Equip. (real/meta)", "Viaturas (real/meta)", "Cobertura (real/meta)",
			"Progresso", "Esperado", "Situação",
		},
		Widths: []float64{3, 1.5, 1.5, 1.8, 1, 1, 1.2},
	}
	for _, rp := range results {
		t.Rows = append(t.Rows, []string{
			string(rp.Region),
			fmt.Sprintf("%s/%s", Count(rp.Actual.Equipment), Count(rp.Goal.Equipment)),
			fmt.Sprintf("%s/%s", Count(rp.Actual.Vehicles), Count(rp.Goal.Vehicles)),
			fmt.Sprintf("%s/%s", Percent(rp.Actual.Coverage), Percent(rp.Goal.Coverage)),
			Percent(rp.Progress.Overall),
			Percent(rp.Progress.Expected),
			StatusLabel(rp.Progress.Status),
		})
	}
	return t
}

// RegionOf resolves the region column of the record tables.
type RegionOf func(municipality string) (model.Region, bool)

func regionCell(regionOf RegionOf, municipality string) string {
	if reg, ok := regionOf(municipality); ok {
		return string(reg)
	}
	return "—"
}

func EquipmentTable(records []model.Equipment, regionOf RegionOf, loc *time.Location) Table {
	t := Table{
		Title:   "Equipamentos",
		Headers: []string{"Município", "Região", "Tipo", "Patrulha", "Endereço", "Telefone", "Responsável", "Cadastro"},
	}
	for _, e := range records {
		t.Rows = append(t.Rows, []string{
			e.Municipality, regionCell(regionOf, e.Municipality), string(e.Type), YesNo(e.HasPatrol),
			e.Address, e.Phone, e.Responsible, LocalDatePtr(e.CreatedAt, loc),
		})
	}
	return t
}

func VehicleTable(records []model.Vehicle, regionOf RegionOf, loc *time.Location) Table {
	t := Table{
		Title:   "Viaturas",
		Headers: []string{"Município", "Região", "Tipo de patrulha", "Órgão", "Quantidade", "Vinculada", "Implantação", "Cadastro"},
	}
	for _, v := range records {
		t.Rows = append(t.Rows, []string{
			v.Municipality, regionCell(regionOf, v.Municipality), v.PatrolType, string(v.Organization),
			Count(v.Quantity), YesNo(v.LinkedToEquipment), DatePtr(v.ImplantedAt), LocalDatePtr(v.CreatedAt, loc),
		})
	}
	return t
}

func RequestTable(records []model.Request, regionOf RegionOf, loc *time.Location) Table {
	t := Table{
		Title: "Solicitações",
		Headers: []string{
			"Município", "Região", "Equipamento", "Status", "Processo", "Patrulha",
			"Guarda estruturada", "Kit entregue", "Capacitação", "Cadastro",
		},
	}
	for _, q := range records {
		process := ""
		if q.ProcessNumber != nil {
			process = *q.ProcessNumber
		}
		t.Rows = append(t.Rows, []string{
			q.Municipality, regionCell(regionOf, q.Municipality), string(q.EquipmentType), string(q.Status), process,
			YesNo(q.ReceivedPatrol), YesNo(q.GuardStructured), YesNo(q.KitDelivered), YesNo(q.TrainingDone),
			LocalDatePtr(q.CreatedAt, loc),
		})
	}
	return t
}

func ComparisonFileName(cmp aggregate.Comparison, ext string) string {
	return fmt.Sprintf("relatorio-comparativo-%s-vs-%s.%s", cmp.Current, cmp.Previous, ext)
}

func GoalsFileName(ym period.YearMonth, ext string) string {
	return fmt.Sprintf("relatorio-metas-%s.%s", ym, ext)
}

func DataFileName(now time.Time) string {
	return fmt.Sprintf("dados-%s.xlsx", now.Format("20060102"))
}
