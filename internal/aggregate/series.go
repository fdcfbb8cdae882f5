package aggregate

import (
	"time"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
)

// MonthPoint holds the indicators of one calendar month.
type MonthPoint struct {
	Month               string  `json:"mes"`
	EquipmentNew        int     `json:"equipamentos_novos"`
	VehiclesNew         int     `json:"viaturas_novas"`
	RequestsNew         int     `json:"solicitacoes_novas"`
	EquipmentCumulative int     `json:"equipamentos_acumulado"`
	VehiclesCumulative  int     `json:"viaturas_acumulado"`
	RequestsCumulative  int     `json:"solicitacoes_acumulado"`
	Coverage            float64 `json:"cobertura"`
}

// MonthlySeries returns twelve points for year. An empty reg aggregates the
// whole state.
func (a *Aggregator) MonthlySeries(s Snapshot, year int, reg model.Region, loc *time.Location) []MonthPoint {
	points := make([]MonthPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		ym := period.YearMonth{Year: year, Month: m}
		summary := a.Summarize(s, ym.Range(loc))

		st := summary.Total
		if reg != "" {
			for _, candidate := range summary.Regions {
				if candidate.Region == reg {
					st = candidate
					break
				}
			}
		}

		points = append(points, MonthPoint{
			Month:               ym.String(),
			EquipmentNew:        st.EquipmentNew,
			VehiclesNew:         st.VehiclesNew,
			RequestsNew:         st.RequestsNew,
			EquipmentCumulative: st.EquipmentTotal,
			VehiclesCumulative:  st.VehiclesTotal,
			RequestsCumulative:  st.RequestsTotal,
			Coverage:            st.Coverage,
		})
	}
	return points
}
