package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/config"
	"github.com/nurpe/painel-mulher/internal/excel"
	"github.com/nurpe/painel-mulher/internal/goals"
	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/pdf"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/region"
	"github.com/nurpe/painel-mulher/internal/repository"
	"github.com/nurpe/painel-mulher/internal/service"

	"gorm.io/gorm"
)

var (
	exportOutDir   string
	exportFormat   string
	exportMonth    string
	exportPrevious string
)

// operator is the principal reports are generated for.
var operator = model.Principal{Email: "painel-cli", Role: model.RoleAdmin}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write reports to disk",
}

var exportComparisonCmd = &cobra.Command{
	Use:   "comparison",
	Short: "Regional comparison between two months",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, func(ctx context.Context, reports *service.ReportService, now period.YearMonth) (*service.GenerateReportResult, error) {
			current, err := monthFlag(exportMonth, now)
			if err != nil {
				return nil, err
			}
			previous, err := monthFlag(exportPrevious, current.Previous())
			if err != nil {
				return nil, err
			}
			format, err := service.ParseFormat(exportFormat)
			if err != nil {
				return nil, err
			}
			return reports.Comparison(ctx, service.ComparisonReportInput{
				Current:   current,
				Previous:  previous,
				Format:    format,
				Principal: operator,
			})
		})
	},
}

var exportGoalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Goal progress of every region for one month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, func(ctx context.Context, reports *service.ReportService, now period.YearMonth) (*service.GenerateReportResult, error) {
			ym, err := monthFlag(exportMonth, now)
			if err != nil {
				return nil, err
			}
			format, err := service.ParseFormat(exportFormat)
			if err != nil {
				return nil, err
			}
			return reports.Goals(ctx, service.GoalsReportInput{Month: ym, Format: format, Principal: operator})
		})
	},
}

var exportDataCmd = &cobra.Command{
	Use:   "data",
	Short: "Spreadsheet with every equipment, vehicle and request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, func(ctx context.Context, reports *service.ReportService, _ period.YearMonth) (*service.GenerateReportResult, error) {
			return reports.Data(ctx, operator)
		})
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOutDir, "out", "o", ".", "Output directory")
	exportCmd.PersistentFlags().StringVar(&exportFormat, "formato", "pdf", "Report format: pdf or xlsx")
	exportComparisonCmd.Flags().StringVar(&exportMonth, "atual", "", "Current month (YYYY-MM), default this month")
	exportComparisonCmd.Flags().StringVar(&exportPrevious, "anterior", "", "Previous month (YYYY-MM), default the month before --atual")
	exportGoalsCmd.Flags().StringVar(&exportMonth, "mes", "", "Month (YYYY-MM), default this month")

	exportCmd.AddCommand(exportComparisonCmd)
	exportCmd.AddCommand(exportGoalsCmd)
	exportCmd.AddCommand(exportDataCmd)
}

func monthFlag(raw string, fallback period.YearMonth) (period.YearMonth, error) {
	if raw == "" {
		return fallback, nil
	}
	return period.ParseYearMonth(raw)
}

type exportFunc func(ctx context.Context, reports *service.ReportService, now period.YearMonth) (*service.GenerateReportResult, error)

func runExport(cmd *cobra.Command, fn exportFunc) error {
	cfg, database, err := connect()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result, err := fn(ctx, newReportService(cfg, database), period.Of(time.Now().In(cfg.Dashboard.Location)))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportOutDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(exportOutDir, result.FileName)
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func newReportService(cfg *config.Config, database *gorm.DB) *service.ReportService {
	policy := period.PolicyExclude
	if cfg.Dashboard.LegacyCumulative {
		policy = period.PolicyIncludeCumulative
	}
	regions := region.New()
	agg := aggregate.New(regions, policy)
	loc := cfg.Dashboard.Location

	equipmentRepo := repository.NewEquipmentRepository(database)
	loader := service.NewSnapshotLoader(
		equipmentRepo,
		repository.NewVehicleRepository(database),
		repository.NewRequestRepository(database),
	)
	goalService := service.NewGoalService(repository.NewGoalRepository(database), loader, goals.NewScorer(agg, loc), cfg.Dashboard.DefaultGoal)
	return service.NewReportService(loader, agg, goalService, regions, pdf.NewGenerator(), excel.NewGenerator(), loc)
}
