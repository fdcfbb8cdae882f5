package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/region"
	"github.com/nurpe/painel-mulher/internal/report"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: formato %q", ErrInvalidInput, raw)
	}
}

type DocumentGenerator interface {
	Generate(doc report.Document) ([]byte, error)
}

type ReportService struct {
	snapshot *SnapshotLoader
	agg      *aggregate.Aggregator
	goals    *GoalService
	regions  *region.Resolver
	pdf      DocumentGenerator
	excel    DocumentGenerator
	loc      *time.Location
	now      func() time.Time
}

type ComparisonReportInput struct {
	Current   period.YearMonth
	Previous  period.YearMonth
	Format    Format
	Principal model.Principal
}

type GoalsReportInput struct {
	Month     period.YearMonth
	Format    Format
	Principal model.Principal
}

type GenerateReportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

func NewReportService(
	snapshot *SnapshotLoader,
	agg *aggregate.Aggregator,
	goalService *GoalService,
	regions *region.Resolver,
	pdf DocumentGenerator,
	excel DocumentGenerator,
	loc *time.Location,
) *ReportService {
	return &ReportService{
		snapshot: snapshot,
		agg:      agg,
		goals:    goalService,
		regions:  regions,
		pdf:      pdf,
		excel:    excel,
		loc:      loc,
		now:      time.Now,
	}
}

// Comparison renders the region-by-region comparison of two months, followed
// by the summary of the current month.
func (s *ReportService) Comparison(ctx context.Context, input ComparisonReportInput) (*GenerateReportResult, error) {
	if err := canRead(input.Principal); err != nil {
		return nil, err
	}
	snap, err := s.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}

	cmp := s.agg.Compare(snap, input.Current, input.Previous, s.loc)
	summary := s.agg.Summarize(snap, input.Current.Range(s.loc))

	doc := report.Document{
		Title: "Relatório comparativo da rede de atendimento à mulher",
		Subtitle: fmt.Sprintf("%s comparado a %s",
			report.MonthLabel(input.Current), report.MonthLabel(input.Previous)),
		GeneratedAt: s.now().In(s.loc),
		Tables: []report.Table{
			report.ComparisonTable(cmp),
			report.SummaryTable("Resumo de "+report.MonthLabel(input.Current), summary),
		},
	}
	return s.render(doc, input.Format, func(ext string) string {
		return report.ComparisonFileName(cmp, ext)
	})
}

func (s *ReportService) Goals(ctx context.Context, input GoalsReportInput) (*GenerateReportResult, error) {
	progress, err := s.goals.Progress(ctx, input.Principal, input.Month)
	if err != nil {
		return nil, err
	}

	doc := report.Document{
		Title:       "Acompanhamento de metas",
		Subtitle:    "Metas de " + report.MonthLabel(input.Month),
		GeneratedAt: s.now().In(s.loc),
		Tables:      []report.Table{report.GoalsTable(input.Month, progress.Regions)},
	}
	return s.render(doc, input.Format, func(ext string) string {
		return report.GoalsFileName(input.Month, ext)
	})
}

// Data exports the three collections, one sheet each.
func (s *ReportService) Data(ctx context.Context, principal model.Principal) (*GenerateReportResult, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	snap, err := s.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	doc := report.Document{
		Title:       "Dados da rede de atendimento à mulher",
		Subtitle:    "Exportação completa",
		GeneratedAt: now,
		Tables: []report.Table{
			report.EquipmentTable(snap.Equipment, s.regions.RegionOf, s.loc),
			report.VehicleTable(snap.Vehicles, s.regions.RegionOf, s.loc),
			report.RequestTable(snap.Requests, s.regions.RegionOf, s.loc),
		},
	}
	content, err := s.excel.Generate(doc)
	if err != nil {
		return nil, err
	}
	return &GenerateReportResult{
		FileName:    report.DataFileName(now),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

func (s *ReportService) render(doc report.Document, format Format, fileName func(ext string) string) (*GenerateReportResult, error) {
	var (
		generator   DocumentGenerator
		contentType string
	)
	switch format {
	case FormatPDF:
		generator, contentType = s.pdf, ContentTypePDF
	case FormatXLSX:
		generator, contentType = s.excel, ContentTypeXLSX
	default:
		return nil, fmt.Errorf("%w: formato %q", ErrInvalidInput, format)
	}

	content, err := generator.Generate(doc)
	if err != nil {
		return nil, err
	}
	return &GenerateReportResult{
		FileName:    fileName(string(format)),
		ContentType: contentType,
		Content:     content,
	}, nil
}

