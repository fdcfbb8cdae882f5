// Package aggregate computes regional and monthly indicators over record snapshots.
package aggregate

import (
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/region"
)

// Snapshot is an immutable copy of the three record collections.
type Snapshot struct {
	Equipment []model.Equipment
	Vehicles  []model.Vehicle
	Requests  []model.Request
}

type RegionStats struct {
	Region                model.Region `json:"regiao"`
	Municipalities        int          `json:"municipios"`
	EquipmentTotal        int          `json:"equipamentos_total"`
	EquipmentNew          int          `json:"equipamentos_novos"`
	VehiclesTotal         int          `json:"viaturas_total"`
	VehiclesNew           int          `json:"viaturas_novas"`
	RequestsTotal         int          `json:"solicitacoes_total"`
	RequestsNew           int          `json:"solicitacoes_novas"`
	ApprovedNew           int          `json:"aprovadas_novas"`
	InauguratedNew        int          `json:"inauguradas_novas"`
	PatrolEquipment       int          `json:"equipamentos_com_patrulha"`
	PatrolHouses          int          `json:"casas_com_patrulha"`
	CoveredMunicipalities int          `json:"municipios_cobertos"`
	Coverage              float64      `json:"cobertura"`
}

type Summary struct {
	Range   period.Range  `json:"-"`
	Regions []RegionStats `json:"regioes"`
	Total   RegionStats   `json:"total"`
}

type Aggregator struct {
	regions *region.Resolver
	policy  period.Policy
}

func New(regions *region.Resolver, policy period.Policy) *Aggregator {
	return &Aggregator{regions: regions, policy: policy}
}

// Summarize returns per-region stats for r, in model.Regions order, plus the
// state-wide total. Records whose municipality is unknown are ignored.
func (a *Aggregator) Summarize(s Snapshot, r period.Range) Summary {
	eqNew, eqAll := period.Split(s.Equipment, r, a.policy)
	vhNew, vhAll := period.Split(s.Vehicles, r, a.policy)
	rqNew, rqAll := period.Split(s.Requests, r, a.policy)

	stats := make(map[model.Region]*RegionStats, len(model.Regions))
	for _, reg := range model.Regions {
		stats[reg] = &RegionStats{Region: reg, Municipalities: a.regions.Count(reg)}
	}
	at := func(municipality string) *RegionStats {
		reg, ok := a.regions.RegionOf(municipality)
		if !ok {
			return nil
		}
		return stats[reg]
	}

	for _, e := range eqNew {
		if st := at(e.Municipality); st != nil {
			st.EquipmentNew++
		}
	}
	covered := make(map[string]struct{})
	for _, e := range eqAll {
		st := at(e.Municipality)
		if st == nil {
			continue
		}
		st.EquipmentTotal++
		if e.HasPatrol {
			st.PatrolEquipment++
		}
		if _, seen := covered[e.Municipality]; !seen {
			covered[e.Municipality] = struct{}{}
			st.CoveredMunicipalities++
		}
	}

	for _, v := range vhNew {
		if st := at(v.Municipality); st != nil {
			st.VehiclesNew += v.Units()
		}
	}
	for _, v := range vhAll {
		if st := at(v.Municipality); st != nil {
			st.VehiclesTotal += v.Units()
		}
	}

	for _, q := range rqNew {
		st := at(q.Municipality)
		if st == nil {
			continue
		}
		st.RequestsNew++
		switch q.Status {
		case model.StatusAprovada:
			st.ApprovedNew++
		case model.StatusInaugurada:
			st.InauguratedNew++
		}
	}
	for _, q := range rqAll {
		if st := at(q.Municipality); st != nil {
			st.RequestsTotal++
		}
	}

	for municipality := range PatrolHouses(eqAll, rqAll) {
		if st := at(municipality); st != nil {
			st.PatrolHouses++
		}
	}

	summary := Summary{Range: r, Regions: make([]RegionStats, 0, len(model.Regions))}
	for _, reg := range model.Regions {
		st := stats[reg]
		st.Coverage = Coverage(st.CoveredMunicipalities, st.Municipalities)
		summary.Regions = append(summary.Regions, *st)
		summary.Total = addStats(summary.Total, *st)
	}
	summary.Total.Coverage = Coverage(summary.Total.CoveredMunicipalities, summary.Total.Municipalities)
	return summary
}

// Region returns the stats of a single region for r.
func (a *Aggregator) Region(s Snapshot, reg model.Region, r period.Range) (RegionStats, bool) {
	for _, st := range a.Summarize(s, r).Regions {
		if st.Region == reg {
			return st, true
		}
	}
	return RegionStats{}, false
}

// PatrolHouses returns the municipalities with a patrol attributed to a house.
// An equipment with HasPatrol counts first; a request with ReceivedPatrol only
// counts when no such equipment exists in the same municipality, so a request
// already promoted to equipment is not counted twice.
func PatrolHouses(equipment []model.Equipment, requests []model.Request) map[string]struct{} {
	houses := make(map[string]struct{})
	for _, e := range equipment {
		if e.HasPatrol {
			houses[e.Municipality] = struct{}{}
		}
	}
	for _, q := range requests {
		if !q.ReceivedPatrol {
			continue
		}
		if _, ok := houses[q.Municipality]; ok {
			continue
		}
		houses[q.Municipality] = struct{}{}
	}
	return houses
}

// Coverage is the percentage of covered municipalities.
func Coverage(covered, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}

// Variation is the percent change from previous to current. A zero baseline
// yields 100 for any growth and 0 otherwise.
func Variation(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

func addStats(acc, st RegionStats) RegionStats {
	acc.Municipalities += st.Municipalities
	acc.EquipmentTotal += st.EquipmentTotal
	acc.EquipmentNew += st.EquipmentNew
	acc.VehiclesTotal += st.VehiclesTotal
	acc.VehiclesNew += st.VehiclesNew
	acc.RequestsTotal += st.RequestsTotal
	acc.RequestsNew += st.RequestsNew
	acc.ApprovedNew += st.ApprovedNew
	acc.InauguratedNew += st.InauguratedNew
	acc.PatrolEquipment += st.PatrolEquipment
	acc.PatrolHouses += st.PatrolHouses
	acc.CoveredMunicipalities += st.CoveredMunicipalities
	return acc
}
