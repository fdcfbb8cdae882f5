package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/model"
)

const equipmentColumns = `
	id,
	municipality,
	type,
	has_patrol,
	address,
	phone,
	responsible,
	email,
	notes,
	created_at,
	updated_at`

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) List(ctx context.Context) ([]model.Equipment, error) {
	var rows []model.Equipment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT` + equipmentColumns + `
		FROM equipamentos
		ORDER BY created_at DESC NULLS LAST, id
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EquipmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	var row model.Equipment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT`+equipmentColumns+`
		FROM equipamentos
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

func (r *EquipmentRepository) Create(ctx context.Context, e model.Equipment) (*model.Equipment, error) {
	return insertEquipment(r.db.WithContext(ctx), e)
}

// Update applies a partial update keyed by column name.
func (r *EquipmentRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Equipment, error) {
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Equipment{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.Get(ctx, id)
}

// Delete removes the equipment and un-links every vehicle that referenced it.
func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			UPDATE viaturas
			SET equipment_id = NULL, linked_to_equipment = FALSE, updated_at = NOW()
			WHERE equipment_id = ?
		`, id).Error; err != nil {
			return err
		}

		result := tx.Exec(`DELETE FROM equipamentos WHERE id = ?`, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func insertEquipment(tx *gorm.DB, e model.Equipment) (*model.Equipment, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	var saved model.Equipment
	err := tx.Raw(`
		INSERT INTO equipamentos (
			id,
			municipality,
			type,
			has_patrol,
			address,
			phone,
			responsible,
			email,
			notes,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING`+equipmentColumns,
		e.ID,
		e.Municipality,
		e.Type,
		e.HasPatrol,
		e.Address,
		e.Phone,
		e.Responsible,
		e.Email,
		e.Notes,
		e.CreatedAt,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
