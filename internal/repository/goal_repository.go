package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/model"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) ListByPeriod(ctx context.Context, year, month int) ([]model.MonthlyGoal, error) {
	var rows []model.MonthlyGoal
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, region, year, month, equipment, vehicles, coverage, updated_at
		FROM metas_mensais
		WHERE year = ? AND month = ?
		ORDER BY region ASC
	`, year, month).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertMany writes every goal keyed by (region, year, month) atomically.
func (r *GoalRepository) UpsertMany(ctx context.Context, goals []model.MonthlyGoal) error {
	if len(goals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, g := range goals {
			if err := tx.Exec(`
				INSERT INTO metas_mensais (region, year, month, equipment, vehicles, coverage, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, NOW())
				ON CONFLICT (region, year, month) DO UPDATE
				SET
					equipment = EXCLUDED.equipment,
					vehicles = EXCLUDED.vehicles,
					coverage = EXCLUDED.coverage,
					updated_at = NOW()
			`, g.Region, g.Year, g.Month, g.Equipment, g.Vehicles, g.Coverage).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
