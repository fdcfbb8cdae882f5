package aggregate

import "github.com/nurpe/painel-mulher/internal/model"

// MapCategory drives the choropleth fill of a municipality.
type MapCategory string

const (
	MapWithEquipment MapCategory = "equipamento"
	MapWithRequest   MapCategory = "solicitacao"
	MapNone          MapCategory = "sem_cobertura"
)

type MunicipalityEntry struct {
	Name           string                `json:"municipio"`
	Region         model.Region          `json:"regiao"`
	Equipment      int                   `json:"equipamentos"`
	EquipmentTypes []model.EquipmentType `json:"tipos"`
	Vehicles       int                   `json:"viaturas"`
	OpenRequests   int                   `json:"solicitacoes_abertas"`
	PatrolHouse    bool                  `json:"casa_com_patrulha"`
	Category       MapCategory           `json:"categoria"`
}

// Municipalities returns one entry per known municipality over the whole snapshot.
func (a *Aggregator) Municipalities(s Snapshot) []MunicipalityEntry {
	entries := make(map[string]*MunicipalityEntry, a.regions.Total())
	for _, name := range a.regions.AllMunicipalities() {
		reg, _ := a.regions.RegionOf(name)
		entries[name] = &MunicipalityEntry{Name: name, Region: reg, EquipmentTypes: []model.EquipmentType{}}
	}

	types := make(map[string]map[model.EquipmentType]struct{})
	for _, e := range s.Equipment {
		entry, ok := entries[e.Municipality]
		if !ok {
			continue
		}
		entry.Equipment++
		if types[e.Municipality] == nil {
			types[e.Municipality] = make(map[model.EquipmentType]struct{})
		}
		types[e.Municipality][e.Type] = struct{}{}
	}
	for _, v := range s.Vehicles {
		if entry, ok := entries[v.Municipality]; ok {
			entry.Vehicles += v.Units()
		}
	}
	for _, q := range s.Requests {
		if entry, ok := entries[q.Municipality]; ok && q.Open() {
			entry.OpenRequests++
		}
	}
	for name := range PatrolHouses(s.Equipment, s.Requests) {
		if entry, ok := entries[name]; ok {
			entry.PatrolHouse = true
		}
	}

	out := make([]MunicipalityEntry, 0, len(entries))
	for _, name := range a.regions.AllMunicipalities() {
		entry := entries[name]
		for _, t := range model.EquipmentTypes {
			if _, ok := types[name][t]; ok {
				entry.EquipmentTypes = append(entry.EquipmentTypes, t)
			}
		}
		switch {
		case entry.Equipment > 0:
			entry.Category = MapWithEquipment
		case entry.OpenRequests > 0:
			entry.Category = MapWithRequest
		default:
			entry.Category = MapNone
		}
		out = append(out, *entry)
	}
	return out
}
