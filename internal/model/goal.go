package model

import (
	"time"

	"github.com/google/uuid"
)

// Goal holds the monthly targets of one region.
type Goal struct {
	Equipment int     `json:"meta_equipamentos"`
	Vehicles  int     `json:"meta_viaturas"`
	Coverage  float64 `json:"meta_cobertura"`
}

// MonthlyGoal is the stored goal row, unique on (region, year, month).
type MonthlyGoal struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Region    Region     `gorm:"type:varchar(64);not null;uniqueIndex:uq_metas_regiao_periodo" json:"regiao"`
	Year      int        `gorm:"not null;uniqueIndex:uq_metas_regiao_periodo" json:"ano"`
	Month     int        `gorm:"not null;uniqueIndex:uq_metas_regiao_periodo" json:"mes"`
	Equipment int        `gorm:"not null" json:"meta_equipamentos"`
	Vehicles  int        `gorm:"not null" json:"meta_viaturas"`
	Coverage  float64    `gorm:"not null" json:"meta_cobertura"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (MonthlyGoal) TableName() string {
	return "metas_mensais"
}

func (g MonthlyGoal) Goal() Goal {
	return Goal{Equipment: g.Equipment, Vehicles: g.Vehicles, Coverage: g.Coverage}
}
