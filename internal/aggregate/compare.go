package aggregate

import (
	"time"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
)

// Delta pairs a metric in two periods with its variation.
type Delta struct {
	Current   float64 `json:"atual"`
	Previous  float64 `json:"anterior"`
	Variation float64 `json:"variacao"`
}

func NewDelta(current, previous float64) Delta {
	return Delta{Current: current, Previous: previous, Variation: Variation(current, previous)}
}

// Difference is the absolute change between the periods.
func (d Delta) Difference() float64 {
	return d.Current - d.Previous
}

type ComparisonRow struct {
	Region         model.Region `json:"regiao"`
	EquipmentNew   Delta        `json:"equipamentos_novos"`
	EquipmentTotal Delta        `json:"equipamentos_total"`
	VehiclesNew    Delta        `json:"viaturas_novas"`
	VehiclesTotal  Delta        `json:"viaturas_total"`
	RequestsNew    Delta        `json:"solicitacoes_novas"`
	Coverage       Delta        `json:"cobertura"`
}

type Comparison struct {
	Current  period.YearMonth `json:"-"`
	Previous period.YearMonth `json:"-"`
	Rows     []ComparisonRow  `json:"regioes"`
	Total    ComparisonRow    `json:"total"`
}

// Compare summarizes both months and pairs their stats region by region.
func (a *Aggregator) Compare(s Snapshot, current, previous period.YearMonth, loc *time.Location) Comparison {
	cur := a.Summarize(s, current.Range(loc))
	prev := a.Summarize(s, previous.Range(loc))

	cmp := Comparison{
		Current:  current,
		Previous: previous,
		Rows:     make([]ComparisonRow, 0, len(cur.Regions)),
	}
	for i := range cur.Regions {
		cmp.Rows = append(cmp.Rows, compareStats(cur.Regions[i], prev.Regions[i]))
	}
	cmp.Total = compareStats(cur.Total, prev.Total)
	return cmp
}

func compareStats(cur, prev RegionStats) ComparisonRow {
	return ComparisonRow{
		Region:         cur.Region,
		EquipmentNew:   NewDelta(float64(cur.EquipmentNew), float64(prev.EquipmentNew)),
		EquipmentTotal: NewDelta(float64(cur.EquipmentTotal), float64(prev.EquipmentTotal)),
		VehiclesNew:    NewDelta(float64(cur.VehiclesNew), float64(prev.VehiclesNew)),
		VehiclesTotal:  NewDelta(float64(cur.VehiclesTotal), float64(prev.VehiclesTotal)),
		RequestsNew:    NewDelta(float64(cur.RequestsNew), float64(prev.RequestsNew)),
		Coverage:       NewDelta(cur.Coverage, prev.Coverage),
	}
}
