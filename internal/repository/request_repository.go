package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/model"
)

// ErrPromotionConflict is returned when the request was changed or promoted
// by someone else between the check and the write.
var ErrPromotionConflict = errors.New("request can no longer be promoted")

const requestColumns = `
	id,
	municipality,
	equipment_type,
	status,
	received_patrol,
	guard_structured,
	kit_delivered,
	training_done,
	process_number,
	notes,
	promoted_equipment_id,
	created_at,
	updated_at`

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) List(ctx context.Context) ([]model.Request, error) {
	var rows []model.Request
	if err := r.db.WithContext(ctx).Raw(`
		SELECT` + requestColumns + `
		FROM solicitacoes
		ORDER BY created_at DESC NULLS LAST, id
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	var row model.Request
	if err := r.db.WithContext(ctx).Raw(`
		SELECT`+requestColumns+`
		FROM solicitacoes
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

func (r *RequestRepository) Create(ctx context.Context, req model.Request) (*model.Request, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	var saved model.Request
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO solicitacoes (
			id,
			municipality,
			equipment_type,
			status,
			received_patrol,
			guard_structured,
			kit_delivered,
			training_done,
			process_number,
			notes,
			promoted_equipment_id,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING`+requestColumns,
		req.ID,
		req.Municipality,
		req.EquipmentType,
		req.Status,
		req.ReceivedPatrol,
		req.GuardStructured,
		req.KitDelivered,
		req.TrainingDone,
		req.ProcessNumber,
		req.Notes,
		req.PromotedEquipmentID,
		req.CreatedAt,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *RequestRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Request, error) {
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Request{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.Get(ctx, id)
}

func (r *RequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM solicitacoes WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Promote inserts the equipment and marks the request as promoted in one
// transaction. The request row itself is kept.
func (r *RequestRepository) Promote(ctx context.Context, requestID uuid.UUID, e model.Equipment) (*model.Equipment, error) {
	var saved *model.Equipment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := insertEquipment(tx, e)
		if err != nil {
			return err
		}

		result := tx.Exec(`
			UPDATE solicitacoes
			SET promoted_equipment_id = ?, updated_at = NOW()
			WHERE id = ?
				AND status = ?
				AND promoted_equipment_id IS NULL
		`, created.ID, requestID, model.StatusInaugurada)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPromotionConflict
		}

		saved = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
