package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipmentType string

const (
	EquipmentCasaMulherBrasileira EquipmentType = "Casa da Mulher Brasileira"
	EquipmentCasaMulherCearense   EquipmentType = "Casa da Mulher Cearense"
	EquipmentCasaMulherMunicipal  EquipmentType = "Casa da Mulher Municipal"
	EquipmentSalaLilas            EquipmentType = "Sala Lilás"
)

var EquipmentTypes = []EquipmentType{
	EquipmentCasaMulherBrasileira,
	EquipmentCasaMulherCearense,
	EquipmentCasaMulherMunicipal,
	EquipmentSalaLilas,
}

func (t EquipmentType) Valid() bool {
	for _, known := range EquipmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Equipment is a physical support unit for women in a municipality.
type Equipment struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Municipality string        `gorm:"type:varchar(128);not null;index" json:"municipio"`
	Type         EquipmentType `gorm:"type:varchar(64);not null" json:"tipo"`
	HasPatrol    bool          `gorm:"not null;default:false" json:"possui_patrulha"`
	Address      string        `gorm:"type:text" json:"endereco"`
	Phone        string        `gorm:"type:varchar(64)" json:"telefone"`
	Responsible  string        `gorm:"type:varchar(255)" json:"responsavel"`
	Email        string        `gorm:"type:varchar(255)" json:"email"`
	Notes        string        `gorm:"type:text" json:"observacoes"`
	CreatedAt    *time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    *time.Time    `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Equipment) TableName() string {
	return "equipamentos"
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e Equipment) Created() (time.Time, bool) {
	return stamp(e.CreatedAt)
}

func stamp(t *time.Time) (time.Time, bool) {
	if t == nil || t.IsZero() {
		return time.Time{}, false
	}
	return *t, true
}
