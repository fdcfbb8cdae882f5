package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	StatusRecebida        RequestStatus = "Recebida"
	StatusEmAnalise       RequestStatus = "Em análise"
	StatusAprovada        RequestStatus = "Aprovada"
	StatusEmImplementacao RequestStatus = "Em implementação"
	StatusInaugurada      RequestStatus = "Inaugurada"
	StatusCancelada       RequestStatus = "Cancelada"
)

// RequestStatuses is ordered along the request lifecycle; Cancelada sits outside it.
var RequestStatuses = []RequestStatus{
	StatusRecebida,
	StatusEmAnalise,
	StatusAprovada,
	StatusEmImplementacao,
	StatusInaugurada,
	StatusCancelada,
}

func (s RequestStatus) Valid() bool {
	return s.stage() >= 0
}

func (s RequestStatus) stage() int {
	for i, known := range RequestStatuses {
		if s == known {
			return i
		}
	}
	return -1
}

// CanMoveTo reports whether a request may go from s to next. The lifecycle only
// moves forward; any open request can be cancelled, and inaugurated or cancelled
// requests are final.
func (s RequestStatus) CanMoveTo(next RequestStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s == StatusInaugurada || s == StatusCancelada {
		return false
	}
	if next == StatusCancelada {
		return true
	}
	return next.stage() > s.stage()
}

// Request asks for a new equipment to be set up in a municipality.
type Request struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Municipality        string        `gorm:"type:varchar(128);not null;index" json:"municipio"`
	EquipmentType       EquipmentType `gorm:"type:varchar(64);not null" json:"tipo_equipamento"`
	Status              RequestStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	ReceivedPatrol      bool          `gorm:"not null;default:false" json:"recebeu_patrulha"`
	GuardStructured     bool          `gorm:"not null;default:false" json:"guarda_estruturada"`
	KitDelivered        bool          `gorm:"not null;default:false" json:"kit_entregue"`
	TrainingDone        bool          `gorm:"not null;default:false" json:"capacitacao_realizada"`
	ProcessNumber       *string       `gorm:"type:varchar(64)" json:"numero_processo"`
	Notes               string        `gorm:"type:text" json:"observacoes"`
	PromotedEquipmentID *uuid.UUID    `gorm:"type:uuid" json:"equipamento_gerado_id"`
	CreatedAt           *time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           *time.Time    `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Request) TableName() string {
	return "solicitacoes"
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r Request) Created() (time.Time, bool) {
	return stamp(r.CreatedAt)
}

// Open reports whether the request is still in progress.
func (r Request) Open() bool {
	return r.Status != StatusInaugurada && r.Status != StatusCancelada
}
