package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nurpe/painel-mulher/internal/goals"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
)

type GoalStore interface {
	ListByPeriod(ctx context.Context, year, month int) ([]model.MonthlyGoal, error)
	UpsertMany(ctx context.Context, goals []model.MonthlyGoal) error
}

type GoalService struct {
	repo     GoalStore
	snapshot *SnapshotLoader
	scorer   *goals.Scorer
	fallback model.Goal
	now      func() time.Time
}

type GoalInput struct {
	Region    model.Region
	Equipment int
	Vehicles  int
	Coverage  float64
}

type GoalProgressResult struct {
	Period  period.YearMonth       `json:"-"`
	Month   string                 `json:"mes"`
	Regions []goals.RegionProgress `json:"regioes"`
}

func NewGoalService(repo GoalStore, snapshot *SnapshotLoader, scorer *goals.Scorer, fallback model.Goal) *GoalService {
	return &GoalService{repo: repo, snapshot: snapshot, scorer: scorer, fallback: fallback, now: time.Now}
}

// List returns a goal for every region, with defaults where none is stored.
func (s *GoalService) List(ctx context.Context, principal model.Principal, ym period.YearMonth) ([]goals.RegionGoal, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	return s.withDefaults(ctx, ym)
}

func (s *GoalService) Save(ctx context.Context, principal model.Principal, ym period.YearMonth, inputs []GoalInput) ([]goals.RegionGoal, error) {
	if err := canEdit(principal); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no goals given", ErrInvalidInput)
	}

	seen := make(map[model.Region]struct{}, len(inputs))
	rows := make([]model.MonthlyGoal, 0, len(inputs))
	for _, in := range inputs {
		if !in.Region.Valid() {
			return nil, fmt.Errorf("%w: regiao %q", ErrInvalidInput, in.Region)
		}
		if _, dup := seen[in.Region]; dup {
			return nil, fmt.Errorf("%w: regiao %q repeated", ErrInvalidInput, in.Region)
		}
		seen[in.Region] = struct{}{}
		if in.Equipment < 0 || in.Vehicles < 0 || in.Coverage < 0 || in.Coverage > 100 {
			return nil, fmt.Errorf("%w: meta fora do intervalo para %s", ErrInvalidInput, in.Region)
		}
		rows = append(rows, model.MonthlyGoal{
			Region:    in.Region,
			Year:      ym.Year,
			Month:     int(ym.Month),
			Equipment: in.Equipment,
			Vehicles:  in.Vehicles,
			Coverage:  in.Coverage,
		})
	}

	if err := s.repo.UpsertMany(ctx, rows); err != nil {
		return nil, err
	}
	return s.withDefaults(ctx, ym)
}

// Progress scores every region against its goal for ym.
func (s *GoalService) Progress(ctx context.Context, principal model.Principal, ym period.YearMonth) (*GoalProgressResult, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	regionGoals, err := s.withDefaults(ctx, ym)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &GoalProgressResult{
		Period:  ym,
		Month:   ym.String(),
		Regions: s.scorer.Evaluate(snap, regionGoals, ym, s.now()),
	}, nil
}

func (s *GoalService) withDefaults(ctx context.Context, ym period.YearMonth) ([]goals.RegionGoal, error) {
	stored, err := s.repo.ListByPeriod(ctx, ym.Year, int(ym.Month))
	if err != nil {
		return nil, err
	}
	return goals.WithDefaults(stored, ym, s.fallback), nil
}
