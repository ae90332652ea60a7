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

func NewTripStore(filename string) (*TripStore, error) {
	store := &TripStore{
		trips:    make(map[uuid.UUID]*model.TripRecord),
		filename: filename,
	}
	if err := store.loadFromFile(); err != nil {
		return nil, err
	}
	return store, nil
}

type TripStore struct {
	mu       sync.RWMutex
	trips    map[uuid.UUID]*model.TripRecord
	filename string
}

func (t *TripStore) PutTrip(ctx context.Context, record *model.TripRecord) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "PutTrip")
	defer span.End()

	if record == nil || record.TripID == uuid.Nil {
		err := fmt.Errorf("trip id is required")
		span.RecordError(err)
		return err
	}

	span.AddEvent("Lock")
	t.mu.Lock()
	defer span.AddEvent("Unlock")
	defer t.mu.Unlock()

	t.trips[record.TripID] = record
	return t.saveToFile(ctx)
}

func (t *TripStore) GetTripByID(ctx context.Context, tripID uuid.UUID) (*model.TripRecord, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetTripByID")
	defer span.End()

	span.AddEvent("RLock")
	t.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer t.mu.RUnlock()

	record, ok := t.trips[tripID]
	if !ok {
		err := fmt.Errorf("could not find trip with id: %s", tripID)
		span.RecordError(err)
		return nil, err
	}
	return record, nil
}

func (t *TripStore) ListTripIDs(ctx context.Context) ([]uuid.UUID, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListTripIDs")
	defer span.End()

	span.AddEvent("RLock")
	t.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer t.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(t.trips))
	for id := range t.trips {
		ids = append(ids, id)
	}
	return ids, nil
}

// saveToFile writes the current trip table to the JSON file.
func (t *TripStore) saveToFile(ctx context.Context) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SaveToFile")
	defer span.End()

	fileData, err := json.MarshalIndent(t.trips, "", "  ")
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := os.WriteFile(t.filename, fileData, 0644); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// loadFromFile loads trip records from the JSON file into the store.
func (t *TripStore) loadFromFile() error {
	if _, err := os.Stat(t.filename); os.IsNotExist(err) {
		// File does not exist, no trips to load
		return nil
	}

	fileData, err := os.ReadFile(t.filename)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return json.Unmarshal(fileData, &t.trips)
}
