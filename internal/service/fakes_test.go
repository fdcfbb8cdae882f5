package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/report"
	"github.com/nurpe/painel-mulher/internal/repository"
)

var (
	admin  = model.Principal{UserID: uuid.New(), Email: "admin@ce.gov.br", Role: model.RoleAdmin}
	viewer = model.Principal{UserID: uuid.New(), Email: "leitura@ce.gov.br", Role: model.RoleViewer}
	nobody = model.Principal{UserID: uuid.New()}
)

// memStore keeps all collections in memory and applies updates field by field.
type memStore struct {
	mu        sync.Mutex
	equipment map[uuid.UUID]model.Equipment
	vehicles  map[uuid.UUID]model.Vehicle
	requests  map[uuid.UUID]model.Request
	goals     map[string]model.MonthlyGoal
	listErr   error
}

func newMemStore() *memStore {
	return &memStore{
		equipment: map[uuid.UUID]model.Equipment{},
		vehicles:  map[uuid.UUID]model.Vehicle{},
		requests:  map[uuid.UUID]model.Request{},
		goals:     map[string]model.MonthlyGoal{},
	}
}

type equipmentStore struct{ *memStore }
type vehicleStore struct{ *memStore }
type requestStore struct{ *memStore }
type goalStore struct{ *memStore }

func byCreatedDesc[T interface{ Created() (time.Time, bool) }](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i].Created()
		b, _ := items[j].Created()
		return a.After(b)
	})
}

func (s equipmentStore) List(ctx context.Context) ([]model.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]model.Equipment, 0, len(s.equipment))
	for _, e := range s.equipment {
		out = append(out, e)
	}
	byCreatedDesc(out)
	return out, nil
}

func (s equipmentStore) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.equipment[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (s equipmentStore) Create(ctx context.Context, e model.Equipment) (*model.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.equipment[e.ID] = e
	return &e, nil
}

func (s equipmentStore) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Equipment, error) {
	s.mu.Lock()
	e, ok := s.equipment[id]
	if !ok {
		s.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "municipality":
			e.Municipality = v.(string)
		case "type":
			e.Type = v.(model.EquipmentType)
		case "has_patrol":
			e.HasPatrol = v.(bool)
		case "notes":
			e.Notes = v.(string)
		case "address":
			e.Address = v.(string)
		}
	}
	s.equipment[id] = e
	s.mu.Unlock()
	return &e, nil
}

func (s equipmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.equipment[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.equipment, id)
	for vid, v := range s.vehicles {
		if v.EquipmentID != nil && *v.EquipmentID == id {
			v.EquipmentID = nil
			v.LinkedToEquipment = false
			s.vehicles[vid] = v
		}
	}
	return nil
}

func (s vehicleStore) List(ctx context.Context) ([]model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	byCreatedDesc(out)
	return out, nil
}

func (s vehicleStore) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (s vehicleStore) Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.vehicles[v.ID] = v
	return &v, nil
}

func (s vehicleStore) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, val := range fields {
		switch k {
		case "quantity":
			v.Quantity = val.(int)
		case "linked_to_equipment":
			v.LinkedToEquipment = val.(bool)
		case "equipment_id":
			if val == nil {
				v.EquipmentID = nil
			} else {
				id := val.(uuid.UUID)
				v.EquipmentID = &id
			}
		}
	}
	s.vehicles[id] = v
	return &v, nil
}

func (s vehicleStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.vehicles, id)
	return nil
}

func (s requestStore) List(ctx context.Context) ([]model.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Request, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r)
	}
	byCreatedDesc(out)
	return out, nil
}

func (s requestStore) Get(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (s requestStore) Create(ctx context.Context, r model.Request) (*model.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.requests[r.ID] = r
	return &r, nil
}

func (s requestStore) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			r.Status = v.(model.RequestStatus)
		case "received_patrol":
			r.ReceivedPatrol = v.(bool)
		case "process_number":
			r.ProcessNumber = v.(*string)
		}
	}
	s.requests[id] = r
	return &r, nil
}

func (s requestStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.requests, id)
	return nil
}

func (s requestStore) Promote(ctx context.Context, requestID uuid.UUID, e model.Equipment) (*model.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[requestID]
	if !ok || r.Status != model.StatusInaugurada || r.PromotedEquipmentID != nil {
		return nil, repository.ErrPromotionConflict
	}
	e.ID = uuid.New()
	s.equipment[e.ID] = e
	r.PromotedEquipmentID = &e.ID
	s.requests[requestID] = r
	return &e, nil
}

func goalKey(reg model.Region, year, month int) string {
	return string(reg) + "|" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (s goalStore) ListByPeriod(ctx context.Context, year, month int) ([]model.MonthlyGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.MonthlyGoal
	for _, g := range s.goals {
		if g.Year == year && g.Month == month {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s goalStore) UpsertMany(ctx context.Context, goals []model.MonthlyGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range goals {
		s.goals[goalKey(g.Region, g.Year, g.Month)] = g
	}
	return nil
}

type fakeGenerator struct {
	docs []report.Document
	err  error
}

func (g *fakeGenerator) Generate(doc report.Document) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.docs = append(g.docs, doc)
	return []byte("generated"), nil
}

var errBackend = errors.New("connection refused")

func at(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}
