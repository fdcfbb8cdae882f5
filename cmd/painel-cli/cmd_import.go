package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/region"
	"github.com/nurpe/painel-mulher/internal/repository"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <dump.json>",
	Short: "Load equipment, vehicles and requests from a JSON dump",
	Long: `Load a JSON dump exported from the previous hosted backend.

Records keep their ids and creation timestamps. Timestamps that cannot be
parsed are stored empty and handled by the period policy of the service.
The whole dump is written in one transaction: either every record is stored
or none is.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Only validate the dump and print warnings")
}

type importTargets struct {
	equipment *repository.EquipmentRepository
	vehicles  *repository.VehicleRepository
	requests  *repository.RequestRepository
}

func newImportTargets(tx *gorm.DB) importTargets {
	return importTargets{
		equipment: repository.NewEquipmentRepository(tx),
		vehicles:  repository.NewVehicleRepository(tx),
		requests:  repository.NewRequestRepository(tx),
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	d, err := readDump(f)
	if err != nil {
		return err
	}
	out := convert(d, region.New())
	if err := out.duplicateIDs(); err != nil {
		return err
	}

	for _, w := range out.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "equipamentos=%d viaturas=%d solicitacoes=%d sem_data=%d avisos=%d\n",
		len(out.Equipment), len(out.Vehicles), len(out.Requests), out.Unstamped, len(out.Warnings))
	if importDryRun {
		return nil
	}

	_, database, err := connect()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return newImportTargets(tx).write(ctx, out)
	})
	if err != nil {
		return fmt.Errorf("import rolled back: %w", err)
	}
	log.Info().
		Int("equipment", len(out.Equipment)).
		Int("vehicles", len(out.Vehicles)).
		Int("requests", len(out.Requests)).
		Msg("import finished")
	return nil
}

// write inserts equipment first so vehicle links resolve.
func (t importTargets) write(ctx context.Context, out converted) error {
	for _, e := range out.Equipment {
		if _, err := t.equipment.Create(ctx, e); err != nil {
			return fmt.Errorf("equipamento %s: %w", e.ID, err)
		}
	}
	for _, v := range out.Vehicles {
		if _, err := t.vehicles.Create(ctx, v); err != nil {
			return fmt.Errorf("viatura %s: %w", v.ID, err)
		}
	}
	for _, q := range out.Requests {
		if _, err := t.requests.Create(ctx, q); err != nil {
			return fmt.Errorf("solicitacao %s: %w", q.ID, err)
		}
	}
	return nil
}
