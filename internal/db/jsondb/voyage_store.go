// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/nextrip/core/internal/model"
)

func NewVoyageStore(filename string) (*VoyageStore, error) {
	store := &VoyageStore{
		voyages:  make(map[uuid.UUID]*model.Voyage),
		filename: filename,
	}
	if err := store.loadFromFile(); err != nil {
		return nil, err
	}
	return store, nil
}

type VoyageStore struct {
	mu       sync.RWMutex
	voyages  map[uuid.UUID]*model.Voyage
	filename string
}

func (v *VoyageStore) PutVoyage(ctx context.Context, tripID uuid.UUID, voyage *model.Voyage) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "PutVoyage")
	defer span.End()

	if tripID == uuid.Nil {
		err := fmt.Errorf("trip id is required")
		span.RecordError(err)
		return err
	}

	span.AddEvent("Lock")
	v.mu.Lock()
	defer span.AddEvent("Unlock")
	defer v.mu.Unlock()

	v.voyages[tripID] = voyage
	return v.saveToFile(ctx)
}

func (v *VoyageStore) GetVoyageByTripID(ctx context.Context, tripID uuid.UUID) (*model.Voyage, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetVoyageByTripID")
	defer span.End()

	span.AddEvent("RLock")
	v.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer v.mu.RUnlock()

	voyage, ok := v.voyages[tripID]
	if !ok {
		err := fmt.Errorf("no cached voyage for trip: %s", tripID)
		span.RecordError(err)
		return nil, err
	}
	return voyage, nil
}

func (v *VoyageStore) saveToFile(ctx context.Context) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SaveToFile")
	defer span.End()

	fileData, err := json.MarshalIndent(v.voyages, "", "  ")
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := os.WriteFile(v.filename, fileData, 0644); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (v *VoyageStore) loadFromFile() error {
	if _, err := os.Stat(v.filename); os.IsNotExist(err) {
		return nil
	}

	fileData, err := os.ReadFile(v.filename)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	return json.Unmarshal(fileData, &v.voyages)
}
