package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/region"
	"github.com/nurpe/painel-mulher/internal/repository"
)

type RequestStore interface {
	List(ctx context.Context) ([]model.Request, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Request, error)
	Create(ctx context.Context, req model.Request) (*model.Request, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Request, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Promote(ctx context.Context, requestID uuid.UUID, e model.Equipment) (*model.Equipment, error)
}

type RequestService struct {
	repo    RequestStore
	regions *region.Resolver
	now     func() time.Time
}

type RequestInput struct {
	Municipality    string
	EquipmentType   model.EquipmentType
	Status          model.RequestStatus
	ReceivedPatrol  bool
	GuardStructured bool
	KitDelivered    bool
	TrainingDone    bool
	ProcessNumber   *string
	Notes           string
}

type RequestPatch struct {
	Municipality    *string
	EquipmentType   *model.EquipmentType
	Status          *model.RequestStatus
	ReceivedPatrol  *bool
	GuardStructured *bool
	KitDelivered    *bool
	TrainingDone    *bool
	ProcessNumber   *string
	Notes           *string
}

type PromoteResult struct {
	Request   *model.Request
	Equipment *model.Equipment
}

func NewRequestService(repo RequestStore, regions *region.Resolver) *RequestService {
	return &RequestService{repo: repo, regions: regions, now: time.Now}
}

func (s *RequestService) List(ctx context.Context, principal model.Principal) ([]model.Request, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *RequestService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Request, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return req, nil
}

func (s *RequestService) Create(ctx context.Context, principal model.Principal, input RequestInput) (*model.Request, error) {
	if err := canEdit(principal); err != nil {
		return nil, err
	}
	municipality, err := canonicalMunicipality(s.regions, input.Municipality)
	if err != nil {
		return nil, err
	}
	if !input.EquipmentType.Valid() {
		return nil, fmt.Errorf("%w: tipo_equipamento %q", ErrInvalidInput, input.EquipmentType)
	}
	status := input.Status
	if status == "" {
		status = model.StatusRecebida
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, status)
	}

	now := s.now()
	return s.repo.Create(ctx, model.Request{
		Municipality:    municipality,
		EquipmentType:   input.EquipmentType,
		Status:          status,
		ReceivedPatrol:  input.ReceivedPatrol,
		GuardStructured: input.GuardStructured,
		KitDelivered:    input.KitDelivered,
		TrainingDone:    input.TrainingDone,
		ProcessNumber:   processNumber(input.ProcessNumber),
		Notes:           strings.TrimSpace(input.Notes),
		CreatedAt:       &now,
	})
}

func (s *RequestService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, patch RequestPatch) (*model.Request, error) {
	if err := canEdit(principal); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Municipality != nil {
		municipality, err := canonicalMunicipality(s.regions, *patch.Municipality)
		if err != nil {
			return nil, err
		}
		fields["municipality"] = municipality
	}
	if patch.EquipmentType != nil {
		if !patch.EquipmentType.Valid() {
			return nil, fmt.Errorf("%w: tipo_equipamento %q", ErrInvalidInput, *patch.EquipmentType)
		}
		fields["equipment_type"] = *patch.EquipmentType
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, *patch.Status)
		}
		current, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, translate(err)
		}
		if !current.Status.CanMoveTo(*patch.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, *patch.Status)
		}
		fields["status"] = *patch.Status
	}
	for column, value := range map[string]*bool{
		"received_patrol":  patch.ReceivedPatrol,
		"guard_structured": patch.GuardStructured,
		"kit_delivered":    patch.KitDelivered,
		"training_done":    patch.TrainingDone,
	} {
		if value != nil {
			fields[column] = *value
		}
	}
	if patch.ProcessNumber != nil {
		fields["process_number"] = processNumber(patch.ProcessNumber)
	}
	if patch.Notes != nil {
		fields["notes"] = *trimmed(patch.Notes)
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
	}

	req, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, translate(err)
	}
	return req, nil
}

func (s *RequestService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := canEdit(principal); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id))
}

// Promote creates an equipment record from an inaugurated request. The new
// equipment carries the request's municipality, type and patrol flag; the
// request is kept and points at the equipment afterwards.
func (s *RequestService) Promote(ctx context.Context, principal model.Principal, id uuid.UUID) (*PromoteResult, error) {
	if err := canEdit(principal); err != nil {
		return nil, err
	}

	req, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if req.Status != model.StatusInaugurada {
		return nil, fmt.Errorf("%w: status is %s", ErrNotInaugurated, req.Status)
	}
	if req.PromotedEquipmentID != nil {
		return nil, ErrAlreadyPromoted
	}

	now := s.now()
	notes := "Gerado a partir da solicitação"
	if req.ProcessNumber != nil && *req.ProcessNumber != "" {
		notes += " " + *req.ProcessNumber
	}

	equipment, err := s.repo.Promote(ctx, req.ID, model.Equipment{
		Municipality: req.Municipality,
		Type:         req.EquipmentType,
		HasPatrol:    req.ReceivedPatrol,
		Notes:        notes,
		CreatedAt:    &now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPromotionConflict) {
			return nil, ErrAlreadyPromoted
		}
		return nil, err
	}

	req.PromotedEquipmentID = &equipment.ID
	return &PromoteResult{Request: req, Equipment: equipment}, nil
}

func processNumber(raw *string) *string {
	v := trimmed(raw)
	if v == nil || *v == "" {
		return nil
	}
	return v
}
