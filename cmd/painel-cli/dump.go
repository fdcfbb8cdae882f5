package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/period"
	"github.com/nurpe/painel-mulher/internal/region"
)

// dump mirrors the JSON export of the hosted backend. Timestamps stay raw so
// unparseable values can be kept as unstamped records.
type dump struct {
	Equipment []dumpEquipment `json:"equipamentos"`
	Vehicles  []dumpVehicle   `json:"viaturas"`
	Requests  []dumpRequest   `json:"solicitacoes"`
}

type dumpEquipment struct {
	ID           string `json:"id"`
	Municipality string `json:"municipio"`
	Type         string `json:"tipo"`
	HasPatrol    bool   `json:"possui_patrulha"`
	Address      string `json:"endereco"`
	Phone        string `json:"telefone"`
	Responsible  string `json:"responsavel"`
	Email        string `json:"email"`
	Notes        string `json:"observacoes"`
	CreatedAt    string `json:"created_at"`
}

type dumpVehicle struct {
	ID                string `json:"id"`
	Municipality      string `json:"municipio"`
	PatrolType        string `json:"tipo_patrulha"`
	LinkedToEquipment bool   `json:"vinculada_equipamento"`
	EquipmentID       string `json:"equipamento_id"`
	Organization      string `json:"orgao_responsavel"`
	Quantity          int    `json:"quantidade"`
	ImplantedAt       string `json:"data_implantacao"`
	Notes             string `json:"observacoes"`
	CreatedAt         string `json:"created_at"`
}

type dumpRequest struct {
	ID              string `json:"id"`
	Municipality    string `json:"municipio"`
	EquipmentType   string `json:"tipo_equipamento"`
	Status          string `json:"status"`
	ReceivedPatrol  bool   `json:"recebeu_patrulha"`
	GuardStructured bool   `json:"guarda_estruturada"`
	KitDelivered    bool   `json:"kit_entregue"`
	TrainingDone    bool   `json:"capacitacao_realizada"`
	ProcessNumber   string `json:"numero_processo"`
	Notes           string `json:"observacoes"`
	CreatedAt       string `json:"created_at"`
}

type converted struct {
	Equipment []model.Equipment
	Vehicles  []model.Vehicle
	Requests  []model.Request
	Warnings  []string
	Unstamped int
}

func readDump(r io.Reader) (dump, error) {
	var d dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return dump{}, fmt.Errorf("decode dump: %w", err)
	}
	return d, nil
}

type converter struct {
	regions *region.Resolver
	out     *converted
}

func convert(d dump, regions *region.Resolver) converted {
	out := converted{}
	c := converter{regions: regions, out: &out}

	for i, raw := range d.Equipment {
		where := fmt.Sprintf("equipamentos[%d]", i)
		e := model.Equipment{
			ID:           c.id(where, raw.ID),
			Municipality: c.municipality(where, raw.Municipality),
			Type:         model.EquipmentType(strings.TrimSpace(raw.Type)),
			HasPatrol:    raw.HasPatrol,
			Address:      raw.Address,
			Phone:        raw.Phone,
			Responsible:  raw.Responsible,
			Email:        raw.Email,
			Notes:        raw.Notes,
			CreatedAt:    c.stamp(raw.CreatedAt),
		}
		if !e.Type.Valid() {
			c.warn("%s: skipped, unknown tipo %q", where, raw.Type)
			continue
		}
		out.Equipment = append(out.Equipment, e)
	}

	for i, raw := range d.Vehicles {
		where := fmt.Sprintf("viaturas[%d]", i)
		v := model.Vehicle{
			ID:                c.id(where, raw.ID),
			Municipality:      c.municipality(where, raw.Municipality),
			PatrolType:        strings.TrimSpace(raw.PatrolType),
			LinkedToEquipment: raw.LinkedToEquipment,
			Organization:      model.ResponsibleOrg(strings.TrimSpace(raw.Organization)),
			Quantity:          raw.Quantity,
			Notes:             raw.Notes,
			CreatedAt:         c.stamp(raw.CreatedAt),
		}
		if id, err := uuid.Parse(strings.TrimSpace(raw.EquipmentID)); err == nil {
			v.EquipmentID = &id
		}
		if t, ok := period.ParseTimestamp(raw.ImplantedAt); ok {
			v.ImplantedAt = &t
		}
		if !v.Organization.Valid() {
			c.warn("%s: orgao_responsavel %q imported as %q", where, raw.Organization, model.OrgOutro)
			v.Organization = model.OrgOutro
		}
		if v.Quantity < 0 {
			c.warn("%s: negative quantidade %d imported as 0", where, raw.Quantity)
			v.Quantity = 0
		}
		out.Vehicles = append(out.Vehicles, v)
	}

	for i, raw := range d.Requests {
		where := fmt.Sprintf("solicitacoes[%d]", i)
		q := model.Request{
			ID:              c.id(where, raw.ID),
			Municipality:    c.municipality(where, raw.Municipality),
			EquipmentType:   model.EquipmentType(strings.TrimSpace(raw.EquipmentType)),
			Status:          model.RequestStatus(strings.TrimSpace(raw.Status)),
			ReceivedPatrol:  raw.ReceivedPatrol,
			GuardStructured: raw.GuardStructured,
			KitDelivered:    raw.KitDelivered,
			TrainingDone:    raw.TrainingDone,
			Notes:           raw.Notes,
			CreatedAt:       c.stamp(raw.CreatedAt),
		}
		if pn := strings.TrimSpace(raw.ProcessNumber); pn != "" {
			q.ProcessNumber = &pn
		}
		if !q.EquipmentType.Valid() {
			c.warn("%s: skipped, unknown tipo_equipamento %q", where, raw.EquipmentType)
			continue
		}
		if !q.Status.Valid() {
			c.warn("%s: status %q imported as %q", where, raw.Status, model.StatusRecebida)
			q.Status = model.StatusRecebida
		}
		out.Requests = append(out.Requests, q)
	}

	// Vehicles may only point at equipment that is being imported too.
	known := make(map[uuid.UUID]struct{}, len(out.Equipment))
	for _, e := range out.Equipment {
		known[e.ID] = struct{}{}
	}
	for i := range out.Vehicles {
		v := &out.Vehicles[i]
		if v.EquipmentID == nil {
			continue
		}
		if _, ok := known[*v.EquipmentID]; !ok {
			c.warn("viaturas[%d]: equipamento_id %s not in dump, link dropped", i, *v.EquipmentID)
			v.EquipmentID = nil
		}
	}
	return out
}

// duplicateIDs rejects a dump that repeats an id inside one collection, since
// the insert would fail halfway through.
func (c converted) duplicateIDs() error {
	var dups []string
	check := func(collection string, ids []uuid.UUID) {
		seen := make(map[uuid.UUID]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				dups = append(dups, fmt.Sprintf("%s %s", collection, id))
				continue
			}
			seen[id] = struct{}{}
		}
	}

	ids := make([]uuid.UUID, 0, len(c.Equipment))
	for _, e := range c.Equipment {
		ids = append(ids, e.ID)
	}
	check("equipamentos", ids)

	ids = ids[:0]
	for _, v := range c.Vehicles {
		ids = append(ids, v.ID)
	}
	check("viaturas", ids)

	ids = ids[:0]
	for _, q := range c.Requests {
		ids = append(ids, q.ID)
	}
	check("solicitacoes", ids)

	if len(dups) > 0 {
		return fmt.Errorf("duplicate ids in dump: %s", strings.Join(dups, ", "))
	}
	return nil
}

func (c converter) warn(format string, args ...interface{}) {
	c.out.Warnings = append(c.out.Warnings, fmt.Sprintf(format, args...))
}

func (c converter) id(where, raw string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		c.warn("%s: invalid id %q, generated a new one", where, raw)
		return uuid.New()
	}
	return id
}

// municipality keeps unknown names as they are; aggregates skip them.
func (c converter) municipality(where, raw string) string {
	name, _, ok := c.regions.Lookup(raw)
	if !ok {
		c.warn("%s: unknown municipio %q kept as is", where, raw)
		return strings.TrimSpace(raw)
	}
	return name
}

func (c converter) stamp(raw string) *time.Time {
	t, ok := period.ParseTimestamp(raw)
	if !ok {
		c.out.Unstamped++
		return nil
	}
	return &t
}
