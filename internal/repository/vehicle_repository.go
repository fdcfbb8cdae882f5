package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/model"
)

const vehicleColumns = `
	id,
	municipality,
	patrol_type,
	linked_to_equipment,
	equipment_id,
	organization,
	quantity,
	implanted_at,
	notes,
	created_at,
	updated_at`

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) List(ctx context.Context) ([]model.Vehicle, error) {
	var rows []model.Vehicle
	if err := r.db.WithContext(ctx).Raw(`
		SELECT` + vehicleColumns + `
		FROM viaturas
		ORDER BY created_at DESC NULLS LAST, id
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *VehicleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var row model.Vehicle
	if err := r.db.WithContext(ctx).Raw(`
		SELECT`+vehicleColumns+`
		FROM viaturas
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	var saved model.Vehicle
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO viaturas (
			id,
			municipality,
			patrol_type,
			linked_to_equipment,
			equipment_id,
			organization,
			quantity,
			implanted_at,
			notes,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING`+vehicleColumns,
		v.ID,
		v.Municipality,
		v.PatrolType,
		v.LinkedToEquipment,
		v.EquipmentID,
		v.Organization,
		v.Quantity,
		v.ImplantedAt,
		v.Notes,
		v.CreatedAt,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *VehicleRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Vehicle, error) {
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Vehicle{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.Get(ctx, id)
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM viaturas WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
