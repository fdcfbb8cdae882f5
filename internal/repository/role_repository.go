package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/model"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) RoleOf(ctx context.Context, userID uuid.UUID) (model.Role, error) {
	var role string
	if err := r.db.WithContext(ctx).Raw(`
		SELECT role FROM user_roles WHERE user_id = ? LIMIT 1
	`, userID).Scan(&role).Error; err != nil {
		return "", err
	}
	if role == "" {
		return "", gorm.ErrRecordNotFound
	}
	return model.Role(role), nil
}

func (r *RoleRepository) Grant(ctx context.Context, userID uuid.UUID, role model.Role) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO user_roles (user_id, role)
		VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`, userID, role).Error
}
