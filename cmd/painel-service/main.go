package main

import (
	"fmt"
	"os"

	"github.com/nurpe/painel-mulher/internal/aggregate"
	"github.com/nurpe/painel-mulher/internal/auth"
	"github.com/nurpe/painel-mulher/internal/config"
	"github.com/nurpe/painel-mulher/internal/db"
	"github.com/nurpe/painel-mulher/internal/excel"
	"github.com/nurpe/painel-mulher/internal/goals"
	httphandler "github.com/nurpe/painel-mulher/internal/http"
	"github.com/nurpe/painel-mulher/internal/http/middleware"
	"github.com/nurpe/painel-mulher/internal/logger"
	"github.com/nurpe/painel-mulher/internal/pdf"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/region"
	"github.com/nurpe/painel-mulher/internal/repository"
	"github.com/nurpe/painel-mulher/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	equipmentRepo := repository.NewEquipmentRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	requestRepo := repository.NewRequestRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	roleRepo := repository.NewRoleRepository(database)

	policy := period.PolicyExclude
	if cfg.Dashboard.LegacyCumulative {
		policy = period.PolicyIncludeCumulative
		log.Warn().Msg("records without a valid created_at count toward cumulative totals")
	}

	regions := region.New()
	agg := aggregate.New(regions, policy)
	loc := cfg.Dashboard.Location
	loader := service.NewSnapshotLoader(equipmentRepo, vehicleRepo, requestRepo)
	goalService := service.NewGoalService(goalRepo, loader, goals.NewScorer(agg, loc), cfg.Dashboard.DefaultGoal)

	handler := httphandler.NewHandler(httphandler.Services{
		Equipment: service.NewEquipmentService(equipmentRepo, regions),
		Vehicles:  service.NewVehicleService(vehicleRepo, equipmentRepo, regions),
		Requests:  service.NewRequestService(requestRepo, regions),
		Goals:     goalService,
		Dashboard: service.NewDashboardService(loader, agg, regions, loc),
		Reports:   service.NewReportService(loader, agg, goalService, regions, pdf.NewGenerator(), excel.NewGenerator(), loc),
	}, log, loc)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	authMiddleware := middleware.Auth(tokenParser, roleRepo)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("timezone", cfg.Dashboard.Timezone).Msg("starting painel service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
