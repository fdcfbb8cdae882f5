// Package region resolves Ceará municipalities to their planning regions.
package region

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nurpe/painel-mulher/internal/model"
)

type Resolver struct {
	regionOf  map[string]model.Region
	canonical map[string]string
	members   map[model.Region][]string
}

func New() *Resolver {
	r := &Resolver{
		regionOf:  make(map[string]model.Region, 184),
		canonical: make(map[string]string, 184),
		members:   make(map[model.Region][]string, len(model.Regions)),
	}
	for _, reg := range model.Regions {
		names := append([]string(nil), municipalities[reg]...)
		sort.Strings(names)
		r.members[reg] = names
		for _, name := range names {
			r.regionOf[name] = reg
			r.canonical[Fold(name)] = name
		}
	}
	return r
}

// RegionOf returns the region of a municipality given by its canonical name.
func (r *Resolver) RegionOf(municipality string) (model.Region, bool) {
	reg, ok := r.regionOf[municipality]
	return reg, ok
}

// Lookup accepts a municipality name regardless of case, accents and extra
// spacing and returns its canonical spelling and region.
func (r *Resolver) Lookup(name string) (string, model.Region, bool) {
	canonical, ok := r.canonical[Fold(name)]
	if !ok {
		return "", "", false
	}
	return canonical, r.regionOf[canonical], true
}

// Municipalities returns the sorted members of a region.
func (r *Resolver) Municipalities(reg model.Region) []string {
	return append([]string(nil), r.members[reg]...)
}

func (r *Resolver) Count(reg model.Region) int {
	return len(r.members[reg])
}

func (r *Resolver) Total() int {
	return len(r.regionOf)
}

func (r *Resolver) Regions() []model.Region {
	return append([]model.Region(nil), model.Regions...)
}

// AllMunicipalities returns every known municipality in alphabetical order.
func (r *Resolver) AllMunicipalities() []string {
	names := make([]string, 0, len(r.regionOf))
	for name := range r.regionOf {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fold lowercases, strips diacritics and collapses whitespace.
func Fold(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
