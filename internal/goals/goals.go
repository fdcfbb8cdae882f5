// Package goals scores regional progress against monthly goals.
package goals

import (
	"math"
	"time"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
)

// Default applies to every (region, year, month) without a stored goal.
var Default = model.Goal{Equipment: 5, Vehicles: 10, Coverage: 50}

type Status string

const (
	StatusAchieved Status = "achieved"
	StatusOnTrack  Status = "on-track"
	StatusAtRisk   Status = "at-risk"
	StatusBehind   Status = "behind"
)

const (
	onTrackTolerance = 10
	atRiskTolerance  = 30
)

// Actuals are the measured values compared against a goal.
type Actuals struct {
	Equipment int     `json:"equipamentos"`
	Vehicles  int     `json:"viaturas"`
	Coverage  float64 `json:"cobertura"`
}

type Progress struct {
	Equipment float64 `json:"progresso_equipamentos"`
	Vehicles  float64 `json:"progresso_viaturas"`
	Coverage  float64 `json:"progresso_cobertura"`
	Overall   float64 `json:"progresso_geral"`
	Expected  float64 `json:"progresso_esperado"`
	Status    Status  `json:"status"`
}

type RegionGoal struct {
	Region model.Region `json:"regiao"`
	Goal   model.Goal   `json:"meta"`
	Stored bool         `json:"definida"`
}

type RegionProgress struct {
	RegionGoal
	Actual   Actuals  `json:"realizado"`
	Progress Progress `json:"progresso"`
}

// WithDefaults returns one goal per region for ym, taking stored rows where
// present and fallback elsewhere.
func WithDefaults(stored []model.MonthlyGoal, ym period.YearMonth, fallback model.Goal) []RegionGoal {
	byRegion := make(map[model.Region]model.Goal, len(stored))
	for _, g := range stored {
		if g.Year == ym.Year && g.Month == int(ym.Month) {
			byRegion[g.Region] = g.Goal()
		}
	}

	out := make([]RegionGoal, 0, len(model.Regions))
	for _, reg := range model.Regions {
		goal, ok := byRegion[reg]
		if !ok {
			goal = fallback
		}
		out = append(out, RegionGoal{Region: reg, Goal: goal, Stored: ok})
	}
	return out
}

// Ratio is actual/goal as a percentage clamped to [0, 100]. A zero goal scores 0.
func Ratio(actual, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Max(0, math.Min(100, actual/goal*100))
}

// Expected is the share of ym elapsed at now. Months other than the current
// one count as fully elapsed.
func Expected(ym period.YearMonth, now time.Time) float64 {
	if period.Of(now) != ym {
		return 100
	}
	return float64(now.Day()) / float64(ym.Days()) * 100
}

// Classify maps overall progress to a status relative to the expected baseline.
func Classify(overall, expected float64) Status {
	switch {
	case overall >= 100:
		return StatusAchieved
	case overall >= expected-onTrackTolerance:
		return StatusOnTrack
	case overall >= expected-atRiskTolerance:
		return StatusAtRisk
	default:
		return StatusBehind
	}
}

func Score(actual Actuals, goal model.Goal, ym period.YearMonth, now time.Time) Progress {
	p := Progress{
		Equipment: Ratio(float64(actual.Equipment), float64(goal.Equipment)),
		Vehicles:  Ratio(float64(actual.Vehicles), float64(goal.Vehicles)),
		Coverage:  Ratio(actual.Coverage, goal.Coverage),
		Expected:  Expected(ym, now),
	}
	p.Overall = (p.Equipment + p.Vehicles + p.Coverage) / 3
	p.Status = Classify(p.Overall, p.Expected)
	return p
}

// ActualsFrom takes the month's new equipment and vehicles and the coverage
// accumulated up to the end of the month.
func ActualsFrom(st aggregate.RegionStats) Actuals {
	return Actuals{
		Equipment: st.EquipmentNew,
		Vehicles:  st.VehiclesNew,
		Coverage:  st.Coverage,
	}
}

type Scorer struct {
	agg *aggregate.Aggregator
	loc *time.Location
}

func NewScorer(agg *aggregate.Aggregator, loc *time.Location) *Scorer {
	if loc == nil {
		loc = time.UTC
	}
	return &Scorer{agg: agg, loc: loc}
}

// Evaluate scores every region goal for ym at now.
func (s *Scorer) Evaluate(snap aggregate.Snapshot, regionGoals []RegionGoal, ym period.YearMonth, now time.Time) []RegionProgress {
	summary := s.agg.Summarize(snap, ym.Range(s.loc))
	stats := make(map[model.Region]aggregate.RegionStats, len(summary.Regions))
	for _, st := range summary.Regions {
		stats[st.Region] = st
	}

	now = now.In(s.loc)
	out := make([]RegionProgress, 0, len(regionGoals))
	for _, rg := range regionGoals {
		actual := ActualsFrom(stats[rg.Region])
		out = append(out, RegionProgress{
			RegionGoal: rg,
			Actual:     actual,
			Progress:   Score(actual, rg.Goal, ym, now),
		})
	}
	return out
}
