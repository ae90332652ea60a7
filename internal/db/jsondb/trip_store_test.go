// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nextrip/core/internal/model"
)

func TestTripStoreRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "trips.json")
	store, err := NewTripStore(filename)
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}

	ctx := context.Background()
	tripID := uuid.New()
	record := &model.TripRecord{
		TripID:    tripID,
		CreatedAt: time.Now().UTC(),
		Profile: &model.Profile{
			ID: "profile_test",
			Trip: model.ProfileTrip{
				Destinations: []string{"Marrakech", "Fès"},
			},
		},
	}
	if err := store.PutTrip(ctx, record); err != nil {
		t.Fatalf("PutTrip: %v", err)
	}

	got, err := store.GetTripByID(ctx, tripID)
	if err != nil {
		t.Fatalf("GetTripByID: %v", err)
	}
	if got.Profile.ID != "profile_test" {
		t.Errorf("profile id = %q, want %q", got.Profile.ID, "profile_test")
	}

	ids, err := store.ListTripIDs(ctx)
	if err != nil {
		t.Fatalf("ListTripIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != tripID {
		t.Errorf("ListTripIDs = %v, want [%s]", ids, tripID)
	}

	// A fresh store reading the same file sees the persisted record.
	reloaded, err := NewTripStore(filename)
	if err != nil {
		t.Fatalf("NewTripStore reload: %v", err)
	}
	got, err = reloaded.GetTripByID(ctx, tripID)
	if err != nil {
		t.Fatalf("GetTripByID after reload: %v", err)
	}
	if len(got.Profile.Trip.Destinations) != 2 {
		t.Errorf("destinations = %v, want 2 entries", got.Profile.Trip.Destinations)
	}
}

func TestTripStoreRejectsNilID(t *testing.T) {
	store, err := NewTripStore(filepath.Join(t.TempDir(), "trips.json"))
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}
	if err := store.PutTrip(context.Background(), &model.TripRecord{}); err == nil {
		t.Error("expected error for record without trip id")
	}
}

func TestTripStoreUnknownID(t *testing.T) {
	store, err := NewTripStore(filepath.Join(t.TempDir(), "trips.json"))
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}
	if _, err := store.GetTripByID(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown trip id")
	}
}
