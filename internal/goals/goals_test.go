package goals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/region"
)

var june2024 = period.YearMonth{Year: 2024, Month: time.June}

func TestWithDefaults(t *testing.T) {
	t.Run("no stored goals", func(t *testing.T) {
		got := WithDefaults(nil, june2024, Default)
		require.Len(t, got, 14)
		for _, rg := range got {
			assert.Equal(t, model.Goal{Equipment: 5, Vehicles: 10, Coverage: 50}, rg.Goal)
			assert.False(t, rg.Stored)
		}
	})

	t.Run("stored goal overrides default for its key only", func(t *testing.T) {
		stored := []model.MonthlyGoal{
			{Region: model.RegionCariri, Year: 2024, Month: 6, Equipment: 8, Vehicles: 2, Coverage: 70},
			{Region: model.RegionCentroSul, Year: 2024, Month: 5, Equipment: 1, Vehicles: 1, Coverage: 1},
		}
		got := WithDefaults(stored, june2024, Default)

		assert.Equal(t, model.RegionCariri, got[0].Region)
		assert.Equal(t, model.Goal{Equipment: 8, Vehicles: 2, Coverage: 70}, got[0].Goal)
		assert.True(t, got[0].Stored)

		assert.Equal(t, model.RegionCentroSul, got[1].Region)
		assert.Equal(t, Default, got[1].Goal)
		assert.False(t, got[1].Stored)
	})
}

func TestRatioIsClamped(t *testing.T) {
	cases := []struct {
		actual, goal, want float64
	}{
		{5, 5, 100},
		{10, 5, 100},
		{3, 10, 30},
		{0, 10, 0},
		{4, 0, 0},
		{0, 0, 0},
		{-2, 10, 0},
		{3, -1, 0},
	}
	for _, tc := range cases {
		got := Ratio(tc.actual, tc.goal)
		assert.InDelta(t, tc.want, got, 1e-9, "%v/%v", tc.actual, tc.goal)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestExpected(t *testing.T) {
	assert.InDelta(t, 50.0, Expected(june2024, time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)), 1e-9)
	assert.Equal(t, 100.0, Expected(june2024, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 100.0, Expected(june2024, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusAchieved, Classify(100, 100))
	assert.Equal(t, StatusAchieved, Classify(100, 0))
	assert.Equal(t, StatusOnTrack, Classify(90, 100))
	assert.Equal(t, StatusAtRisk, Classify(89.9, 100))
	assert.Equal(t, StatusAtRisk, Classify(70, 100))
	assert.Equal(t, StatusBehind, Classify(69.9, 100))
}

func TestScoreScenarios(t *testing.T) {
	goal := model.Goal{Equipment: 5, Vehicles: 10, Coverage: 50}

	t.Run("on track mid-month", func(t *testing.T) {
		now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
		p := Score(Actuals{Equipment: 5, Vehicles: 3, Coverage: 50}, goal, june2024, now)

		assert.Equal(t, 100.0, p.Equipment)
		assert.InDelta(t, 30.0, p.Vehicles, 1e-9)
		assert.Equal(t, 100.0, p.Coverage)
		assert.InDelta(t, 76.67, p.Overall, 0.01)
		assert.InDelta(t, 50.0, p.Expected, 1e-9)
		assert.Equal(t, StatusOnTrack, p.Status)
	})

	t.Run("behind late in month", func(t *testing.T) {
		now := time.Date(2024, 6, 25, 10, 0, 0, 0, time.UTC)
		p := Score(Actuals{}, goal, june2024, now)

		assert.Zero(t, p.Overall)
		assert.InDelta(t, 83.33, p.Expected, 0.01)
		assert.Equal(t, StatusBehind, p.Status)
	})

	t.Run("achieved regardless of expected", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		p := Score(Actuals{Equipment: 50, Vehicles: 50, Coverage: 90}, goal, june2024, now)
		assert.Equal(t, 100.0, p.Overall)
		assert.Equal(t, StatusAchieved, p.Status)
	})

	t.Run("zero goals never divide", func(t *testing.T) {
		p := Score(Actuals{Equipment: 3, Vehicles: 3, Coverage: 10}, model.Goal{}, june2024, time.Now())
		assert.Zero(t, p.Overall)
	})
}

func TestScorerEvaluate(t *testing.T) {
	agg := aggregate.New(region.New(), period.PolicyExclude)
	scorer := NewScorer(agg, time.UTC)

	created := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	snap := aggregate.Snapshot{
		Equipment: []model.Equipment{
			{Municipality: "Aracati", CreatedAt: &created},
			{Municipality: "Beberibe", CreatedAt: &created},
			{Municipality: "Fortim", CreatedAt: &older},
		},
		Vehicles: []model.Vehicle{{Municipality: "Icapuí", Quantity: 5, CreatedAt: &created}},
	}
	regionGoals := WithDefaults(nil, june2024, Default)

	results := scorer.Evaluate(snap, regionGoals, june2024, time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, results, 14)

	var leste RegionProgress
	for _, rp := range results {
		if rp.Region == model.RegionLitoralLeste {
			leste = rp
		}
	}
	assert.Equal(t, Actuals{Equipment: 2, Vehicles: 5, Coverage: 50}, leste.Actual)
	assert.InDelta(t, 40.0, leste.Progress.Equipment, 1e-9)
	assert.InDelta(t, 50.0, leste.Progress.Vehicles, 1e-9)
	assert.InDelta(t, 100.0, leste.Progress.Coverage, 1e-9)
	assert.Equal(t, 100.0, leste.Progress.Expected)
	assert.Equal(t, StatusBehind, leste.Progress.Status)
}
