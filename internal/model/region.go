package model

// Region is one of the 14 planning regions of Ceará.
type Region string

const (
	RegionCariri               Region = "Cariri"
	RegionCentroSul            Region = "Centro Sul"
	RegionGrandeFortaleza      Region = "Grande Fortaleza"
	RegionLitoralLeste         Region = "Litoral Leste"
	RegionLitoralNorte         Region = "Litoral Norte"
	RegionLitoralOesteValeCuru Region = "Litoral Oeste / Vale do Curu"
	RegionMacicoBaturite       Region = "Maciço de Baturité"
	RegionSerraIbiapaba        Region = "Serra da Ibiapaba"
	RegionSertaoCentral        Region = "Sertão Central"
	RegionSertaoCaninde        Region = "Sertão de Canindé"
	RegionSertaoCrateus        Region = "Sertão de Crateús"
	RegionSertaoInhamuns       Region = "Sertão dos Inhamuns"
	RegionSertaoSobral         Region = "Sertão de Sobral"
	RegionValeJaguaribe        Region = "Vale do Jaguaribe"
)

// Regions lists every planning region in display order.
var Regions = []Region{
	RegionCariri,
	RegionCentroSul,
	RegionGrandeFortaleza,
	RegionLitoralLeste,
	RegionLitoralNorte,
	RegionLitoralOesteValeCuru,
	RegionMacicoBaturite,
	RegionSerraIbiapaba,
	RegionSertaoCentral,
	RegionSertaoCaninde,
	RegionSertaoCrateus,
	RegionSertaoInhamuns,
	RegionSertaoSobral,
	RegionValeJaguaribe,
}

func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}
