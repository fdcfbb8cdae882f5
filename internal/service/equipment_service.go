package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/region"
)

type EquipmentStore interface {
	List(ctx context.Context) ([]model.Equipment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error)
	Create(ctx context.Context, e model.Equipment) (*model.Equipment, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Equipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EquipmentService struct {
	repo    EquipmentStore
	regions *region.Resolver
	now     func() time.Time
}

type EquipmentInput struct {
	Municipality string
	Type         model.EquipmentType
	HasPatrol    bool
	Address      string
	Phone        string
	Responsible  string
	Email        string
	Notes        string
}

// EquipmentPatch holds the fields of a partial update; nil means unchanged.
type EquipmentPatch struct {
	Municipality *string
	Type         *model.EquipmentType
	HasPatrol    *bool
	Address      *string
	Phone        *string
	Responsible  *string
	Email        *string
	Notes        *string
}

func NewEquipmentService(repo EquipmentStore, regions *region.Resolver) *EquipmentService {
	return &EquipmentService{repo: repo, regions: regions, now: time.Now}
}

func (s *EquipmentService) List(ctx context.Context, principal model.Principal) ([]model.Equipment, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *EquipmentService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Equipment, error) {
	if err := canRead(principal); err != nil {
		return nil, err
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (s *EquipmentService) Create(ctx context.Context, principal model.Principal, input EquipmentInput) (*model.Equipment, error) {
	if err := canEdit(principal); err != nil {
		return nil, err
	}
	municipality, err := canonicalMunicipality(s.regions, input.Municipality)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: tipo %q", ErrInvalidInput, input.Type)
	}

	now := s.now()
	return s.repo.Create(ctx, model.Equipment{
		Municipality: municipality,
		Type:         input.Type,
		HasPatrol:    input.HasPatrol,
		Address:      strings.TrimSpace(input.Address),
		Phone:        strings.TrimSpace(input.Phone),
		Responsible:  strings.TrimSpace(input.Responsible),
		Email:        strings.TrimSpace(input.Email),
		Notes:        strings.TrimSpace(input.Notes),
		CreatedAt:    &now,
	})
}

func (s *EquipmentService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, patch EquipmentPatch) (*model.Equipment, error) {
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
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, fmt.Errorf("%w: tipo %q", ErrInvalidInput, *patch.Type)
		}
		fields["type"] = *patch.Type
	}
	if patch.HasPatrol != nil {
		fields["has_patrol"] = *patch.HasPatrol
	}
	for column, value := range map[string]*string{
		"address":     patch.Address,
		"phone":       patch.Phone,
		"responsible": patch.Responsible,
		"email":       patch.Email,
		"notes":       patch.Notes,
	} {
		if value != nil {
			fields[column] = *trimmed(value)
		}
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
	}

	e, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// Delete removes the equipment; linked vehicles are kept and un-linked.
func (s *EquipmentService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := canEdit(principal); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id))
}
