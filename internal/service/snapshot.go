package service

import (
	"context"
	"fmt"

	"github.com/nurpe/painel-mulher/internal/aggregate"
)

// SnapshotLoader reads the three collections at once for aggregation.
type SnapshotLoader struct {
	equipment EquipmentStore
	vehicles  VehicleStore
	requests  RequestStore
}

func NewSnapshotLoader(equipment EquipmentStore, vehicles VehicleStore, requests RequestStore) *SnapshotLoader {
	return &SnapshotLoader{equipment: equipment, vehicles: vehicles, requests: requests}
}

func (l *SnapshotLoader) Load(ctx context.Context) (aggregate.Snapshot, error) {
	equipment, err := l.equipment.List(ctx)
	if err != nil {
		return aggregate.Snapshot{}, fmt.Errorf("load equipment: %w", err)
	}
	vehicles, err := l.vehicles.List(ctx)
	if err != nil {
		return aggregate.Snapshot{}, fmt.Errorf("load vehicles: %w", err)
	}
	requests, err := l.requests.List(ctx)
	if err != nil {
		return aggregate.Snapshot{}, fmt.Errorf("load requests: %w", err)
	}
	return aggregate.Snapshot{Equipment: equipment, Vehicles: vehicles, Requests: requests}, nil
}
