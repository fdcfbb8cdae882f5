package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/region"
)

type DashboardService struct {
	snapshot *SnapshotLoader
	agg      *aggregate.Aggregator
	regions  *region.Resolver
	loc      *time.Location
}

type SummaryInput struct {
	// Exactly one of Month or Start/End is set.
	Month *period.YearMonth
	Start time.Time
	End   time.Time
}

type SummaryResult struct {
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`
	aggregate.Summary
}

type RegionInfo struct {
	Region         model.Region `json:"regiao"`
	Municipalities []string     `json:"municipios"`
}

func NewDashboardService(snapshot *SnapshotLoader, agg *aggregate.Aggregator, regions *region.Resolver, loc *time.Location) *DashboardService {
	return &DashboardService{snapshot: snapshot, agg: agg, regions: regions, loc: loc}
}

func (s *DashboardService) Summary(ctx context.Context, principal model.Principal, input SummaryInput) (*SummaryResult, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	r, err := s.rangeOf(input)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{Start: r.Start, End: r.End, Summary: s.agg.Summarize(snap, r)}, nil
}

func (s *DashboardService) MonthlySeries(ctx context.Context, principal model.Principal, year int, reg model.Region) ([]aggregate.MonthPoint, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: ano %d", ErrInvalidInput, year)
	}
	if reg != "" && !reg.Valid() {
		return nil, fmt.Errorf("%w: regiao %q", ErrInvalidInput, reg)
	}
	snap, err := s.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.agg.MonthlySeries(snap, year, reg, s.loc), nil
}

func (s *DashboardService) Comparison(ctx context.Context, principal model.Principal, current, previous period.YearMonth) (*aggregate.Comparison, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	snap, err := s.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	cmp := s.agg.Compare(snap, current, previous, s.loc)
	return &cmp, nil
}

func (s *DashboardService) Map(ctx context.Context, principal model.Principal) ([]aggregate.MunicipalityEntry, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	snap, err := s.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.agg.Municipalities(snap), nil
}

// Regions lists the static region table; it needs no stored data.
func (s *DashboardService) Regions() []RegionInfo {
	out := make([]RegionInfo, 0, len(model.Regions))
	for _, reg := range s.regions.Regions() {
		out = append(out, RegionInfo{Region: reg, Municipalities: s.regions.Municipalities(reg)})
	}
	return out
}

func (s *DashboardService) rangeOf(input SummaryInput) (period.Range, error) {
	if input.Month != nil {
		return input.Month.Range(s.loc), nil
	}
	r, err := period.Between(input.Start, input.End)
	if err != nil {
		return period.Range{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return r, nil
}
