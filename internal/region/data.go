package region

import "github.com/nurpe/painel-mulher/internal/model"

// municipalities maps each planning region (IPECE, 2015) to its municipalities.
var municipalities = map[model.Region][]string{
	model.RegionCariri: {
		"Abaiara", "Altaneira", "Antonina do Norte", "Araripe", "Assaré", "Aurora",
		"Barbalha", "Barro", "Brejo Santo", "Campos Sales", "Caririaçu", "Crato",
		"Farias Brito", "Granjeiro", "Jardim", "Jati", "Juazeiro do Norte",
		"Lavras da Mangabeira", "Mauriti", "Milagres", "Missão Velha", "Nova Olinda",
		"Penaforte", "Porteiras", "Potengi", "Salitre", "Santana do Cariri", "Tarrafas",
		"Várzea Alegre",
	},
	model.RegionCentroSul: {
		"Acopiara", "Baixio", "Cariús", "Catarina", "Cedro", "Icó", "Iguatu",
		"Ipaumirim", "Jucás", "Orós", "Quixelô", "Saboeiro", "Umari",
	},
	model.RegionGrandeFortaleza: {
		"Aquiraz", "Cascavel", "Caucaia", "Chorozinho", "Eusébio", "Fortaleza",
		"Guaiúba", "Horizonte", "Itaitinga", "Maracanaú", "Maranguape", "Pacajus",
		"Pacatuba", "Paracuru", "Paraipaba", "Pindoretama", "São Gonçalo do Amarante",
		"São Luís do Curu", "Trairi",
	},
	model.RegionLitoralLeste: {
		"Aracati", "Beberibe", "Fortim", "Icapuí", "Itaiçaba", "Jaguaruana",
	},
	model.RegionLitoralNorte: {
		"Acaraú", "Barroquinha", "Bela Cruz", "Camocim", "Chaval", "Cruz", "Granja",
		"Itarema", "Jijoca de Jericoacoara", "Marco", "Martinópole", "Morrinhos",
		"Uruoca",
	},
	model.RegionLitoralOesteValeCuru: {
		"Amontada", "Apuiarés", "General Sampaio", "Irauçuba", "Itapajé", "Itapipoca",
		"Miraíma", "Pentecoste", "Tejuçuoca", "Tururu", "Umirim", "Uruburetama",
	},
	model.RegionMacicoBaturite: {
		"Acarape", "Aracoiaba", "Aratuba", "Barreira", "Baturité", "Capistrano",
		"Guaramiranga", "Itapiúna", "Mulungu", "Ocara", "Pacoti", "Palmácia",
		"Redenção",
	},
	model.RegionSerraIbiapaba: {
		"Carnaubal", "Croatá", "Guaraciaba do Norte", "Ibiapina", "Ipu",
		"São Benedito", "Tianguá", "Ubajara", "Viçosa do Ceará",
	},
	model.RegionSertaoCentral: {
		"Banabuiú", "Choró", "Deputado Irapuan Pinheiro", "Ibaretama", "Ibicuitinga",
		"Milhã", "Mombaça", "Pedra Branca", "Piquet Carneiro", "Quixadá",
		"Quixeramobim", "Senador Pompeu", "Solonópole",
	},
	model.RegionSertaoCaninde: {
		"Boa Viagem", "Canindé", "Caridade", "Itatira", "Madalena", "Paramoti",
	},
	model.RegionSertaoCrateus: {
		"Ararendá", "Catunda", "Crateús", "Hidrolândia", "Independência", "Ipaporanga",
		"Ipueiras", "Monsenhor Tabosa", "Nova Russas", "Novo Oriente", "Poranga",
		"Santa Quitéria", "Tamboril",
	},
	model.RegionSertaoInhamuns: {
		"Aiuaba", "Arneiroz", "Parambu", "Quiterianópolis", "Tauá",
	},
	model.RegionSertaoSobral: {
		"Alcântaras", "Cariré", "Coreaú", "Forquilha", "Frecheirinha", "Graça",
		"Groaíras", "Massapê", "Meruoca", "Moraújo", "Mucambo", "Pacujá",
		"Pires Ferreira", "Reriutaba", "Santana do Acaraú", "Senador Sá", "Sobral",
		"Varjota",
	},
	model.RegionValeJaguaribe: {
		"Alto Santo", "Ererê", "Iracema", "Jaguaretama", "Jaguaribara", "Jaguaribe",
		"Limoeiro do Norte", "Morada Nova", "Palhano", "Pereiro", "Potiretama",
		"Quixeré", "Russas", "São João do Jaguaribe", "Tabuleiro do Norte",
	},
}
