package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResponsibleOrg string

const (
	OrgPoliciaMilitar  ResponsibleOrg = "Polícia Militar"
	OrgGuardaMunicipal ResponsibleOrg = "Guarda Municipal"
	OrgPoliciaCivil    ResponsibleOrg = "Polícia Civil"
	OrgOutro           ResponsibleOrg = "Outro"
)

var ResponsibleOrgs = []ResponsibleOrg{
	OrgPoliciaMilitar,
	OrgGuardaMunicipal,
	OrgPoliciaCivil,
	OrgOutro,
}

func (o ResponsibleOrg) Valid() bool {
	for _, known := range ResponsibleOrgs {
		if o == known {
			return true
		}
	}
	return false
}

// Vehicle groups patrol vehicles of the same type and organization in one municipality.
type Vehicle struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Municipality      string         `gorm:"type:varchar(128);not null;index" json:"municipio"`
	PatrolType        string         `gorm:"type:varchar(128);not null" json:"tipo_patrulha"`
	LinkedToEquipment bool           `gorm:"not null;default:false" json:"vinculada_equipamento"`
	EquipmentID       *uuid.UUID     `gorm:"type:uuid;index" json:"equipamento_id"`
	Organization      ResponsibleOrg `gorm:"type:varchar(64);not null" json:"orgao_responsavel"`
	Quantity          int            `gorm:"not null;default:1" json:"quantidade"`
	ImplantedAt       *time.Time     `gorm:"column:implanted_at" json:"data_implantacao"`
	Notes             string         `gorm:"type:text" json:"observacoes"`
	CreatedAt         *time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         *time.Time     `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Vehicle) TableName() string {
	return "viaturas"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v Vehicle) Created() (time.Time, bool) {
	return stamp(v.CreatedAt)
}

// Units is the number of physical vehicles this record stands for. Negative
// quantities coming from legacy rows count as zero.
func (v Vehicle) Units() int {
	if v.Quantity < 0 {
		return 0
	}
	return v.Quantity
}
