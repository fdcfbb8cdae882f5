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
)

type VehicleStore interface {
	List(ctx context.Context) ([]model.Vehicle, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VehicleService struct {
	repo      VehicleStore
	equipment EquipmentStore
	regions   *region.Resolver
	now       func() time.Time
}

type VehicleInput struct {
	Municipality      string
	PatrolType        string
	LinkedToEquipment bool
	EquipmentID       *uuid.UUID
	Organization      model.ResponsibleOrg
	Quantity          int
	ImplantedAt       *time.Time
	Notes             string
}

type VehiclePatch struct {
	Municipality      *string
	PatrolType        *string
	LinkedToEquipment *bool
	EquipmentID       *uuid.UUID
	ClearEquipment    bool
	Organization      *model.ResponsibleOrg
	Quantity          *int
	ImplantedAt       *time.Time
	Notes             *string
}

func NewVehicleService(repo VehicleStore, equipment EquipmentStore, regions *region.Resolver) *VehicleService {
	return &VehicleService{repo: repo, equipment: equipment, regions: regions, now: time.Now}
}

func (s *VehicleService) List(ctx context.Context, principal model.Principal) ([]model.Vehicle, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *VehicleService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Vehicle, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return v, nil
}

func (s *VehicleService) Create(ctx context.Context, principal model.Principal, input VehicleInput) (*model.Vehicle, error) {
	if err := canEdit(principal); err != nil {
		return nil, err
	}
	municipality, err := canonicalMunicipality(s.regions, input.Municipality)
	if err != nil {
		return nil, err
	}
	patrolType := strings.TrimSpace(input.PatrolType)
	if patrolType == "" {
		return nil, fmt.Errorf("%w: tipo_patrulha is required", ErrInvalidInput)
	}
	if !input.Organization.Valid() {
		return nil, fmt.Errorf("%w: orgao_responsavel %q", ErrInvalidInput, input.Organization)
	}
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantidade must be at least 1", ErrInvalidInput)
	}
	linked := input.LinkedToEquipment
	if input.EquipmentID != nil {
		if err := s.checkEquipment(ctx, *input.EquipmentID); err != nil {
			return nil, err
		}
		linked = true
	}

	now := s.now()
	return s.repo.Create(ctx, model.Vehicle{
		Municipality:      municipality,
		PatrolType:        patrolType,
		LinkedToEquipment: linked,
		EquipmentID:       input.EquipmentID,
		Organization:      input.Organization,
		Quantity:          input.Quantity,
		ImplantedAt:       input.ImplantedAt,
		Notes:             strings.TrimSpace(input.Notes),
		CreatedAt:         &now,
	})
}

func (s *VehicleService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, patch VehiclePatch) (*model.Vehicle, error) {
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
	if patch.PatrolType != nil {
		patrolType := strings.TrimSpace(*patch.PatrolType)
		if patrolType == "" {
			return nil, fmt.Errorf("%w: tipo_patrulha is required", ErrInvalidInput)
		}
		fields["patrol_type"] = patrolType
	}
	if patch.Organization != nil {
		if !patch.Organization.Valid() {
			return nil, fmt.Errorf("%w: orgao_responsavel %q", ErrInvalidInput, *patch.Organization)
		}
		fields["organization"] = *patch.Organization
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantidade must be at least 1", ErrInvalidInput)
		}
		fields["quantity"] = *patch.Quantity
	}
	if patch.LinkedToEquipment != nil {
		fields["linked_to_equipment"] = *patch.LinkedToEquipment
	}
	switch {
	case patch.ClearEquipment:
		fields["equipment_id"] = nil
		fields["linked_to_equipment"] = false
	case patch.EquipmentID != nil:
		if err := s.checkEquipment(ctx, *patch.EquipmentID); err != nil {
			return nil, err
		}
		fields["equipment_id"] = *patch.EquipmentID
		fields["linked_to_equipment"] = true
	}
	if patch.ImplantedAt != nil {
		fields["implanted_at"] = *patch.ImplantedAt
	}
	if patch.Notes != nil {
		fields["notes"] = *trimmed(patch.Notes)
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
	}

	v, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, translate(err)
	}
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := canEdit(principal); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id))
}

func (s *VehicleService) checkEquipment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.equipment.Get(ctx, id); err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return fmt.Errorf("%w: equipamento_id %s does not exist", ErrInvalidInput, id)
		}
		return err
	}
	return nil
}
