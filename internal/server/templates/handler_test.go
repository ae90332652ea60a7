// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/nextrip/core/internal/model"
	"github.com/nextrip/core/internal/onboarding"
)

type memTripStore struct {
	records map[uuid.UUID]*model.TripRecord
}

func newMemTripStore() *memTripStore {
	return &memTripStore{records: make(map[uuid.UUID]*model.TripRecord)}
}

func (m *memTripStore) PutTrip(_ context.Context, record *model.TripRecord) error {
	m.records[record.TripID] = record
	return nil
}

func (m *memTripStore) GetTripByID(_ context.Context, id uuid.UUID) (*model.TripRecord, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("no trip: %s", id)
	}
	return record, nil
}

func (m *memTripStore) ListTripIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	return ids, nil
}

type memVoyageStore struct {
	voyages map[uuid.UUID]*model.Voyage
}

func newMemVoyageStore() *memVoyageStore {
	return &memVoyageStore{voyages: make(map[uuid.UUID]*model.Voyage)}
}

func (m *memVoyageStore) PutVoyage(_ context.Context, tripID uuid.UUID, voyage *model.Voyage) error {
	m.voyages[tripID] = voyage
	return nil
}

func (m *memVoyageStore) GetVoyageByTripID(_ context.Context, tripID uuid.UUID) (*model.Voyage, error) {
	voyage, ok := m.voyages[tripID]
	if !ok {
		return nil, fmt.Errorf("no voyage for trip: %s", tripID)
	}
	return voyage, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tripFixture(trips *memTripStore) uuid.UUID {
	tripID := uuid.New()
	trips.records[tripID] = &model.TripRecord{
		TripID:  tripID,
		Profile: &model.Profile{Trip: model.ProfileTrip{Destinations: []string{"Marrakech"}}},
	}
	return tripID
}

func TestTemplatesParse(t *testing.T) {
	// NewTripHandler panics if any embedded template fails to parse.
	h := NewTripHandler(nil, nil, nil)
	for _, name := range []string{"plan.html", "wizard.html", "trip.html", "admin.html"} {
		if h.templates.Lookup(name) == nil {
			t.Errorf("template %s not found", name)
		}
	}
}

func TestFlattenProfileFields(t *testing.T) {
	profile := &model.Profile{
		ID: "profile_1",
		Trip: model.ProfileTrip{
			Destinations: []string{"Marrakech", "Fès"},
		},
		Budget: model.ProfileBudget{Currency: "MAD", RangeMad: "1000-30000 MAD"},
	}

	fields := flattenProfileFields(profile)
	if len(fields) == 0 {
		t.Fatal("expected flattened fields")
	}

	got := map[string]string{}
	for _, f := range fields {
		got[f[0]] = f[1]
	}
	if got["id"] != "profile_1" {
		t.Errorf("id = %q", got["id"])
	}
	if got["trip.destinations.0"] != "Marrakech" {
		t.Errorf("trip.destinations.0 = %q", got["trip.destinations.0"])
	}
	if got["budget.rangeMad"] != "1000-30000 MAD" {
		t.Errorf("budget.rangeMad = %q", got["budget.rangeMad"])
	}

	// Keys come out sorted for a stable admin table.
	for i := 1; i < len(fields); i++ {
		if fields[i-1][0] > fields[i][0] {
			t.Fatalf("fields not sorted: %q before %q", fields[i-1][0], fields[i][0])
		}
	}

	if flattenProfileFields(nil) != nil {
		t.Error("nil profile should flatten to nil")
	}
}

func TestFetchVoyageServesCacheWhenBackendFails(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	trips := newMemTripStore()
	tripID := tripFixture(trips)
	voyages := newMemVoyageStore()
	voyages.voyages[tripID] = &model.Voyage{
		ID:     "voyage-cache",
		Villes: []*model.Ville{{ID: "marrakech", Nom: "Marrakech"}},
	}

	h := NewTripHandler(onboarding.NewClient(backend.URL, trips, discardLogger()), trips, voyages)
	voyage := h.fetchVoyage(context.Background(), tripID)
	if voyage.ID != "voyage-cache" {
		t.Fatalf("voyage id = %q, want the cached voyage", voyage.ID)
	}
}

func TestFetchVoyageFallsBackToSample(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	trips := newMemTripStore()
	tripID := tripFixture(trips)

	h := NewTripHandler(onboarding.NewClient(backend.URL, trips, discardLogger()), trips, newMemVoyageStore())
	voyage := h.fetchVoyage(context.Background(), tripID)
	if voyage.ID != "voyage-maroc-7j" {
		t.Fatalf("voyage id = %q, want the bundled dataset", voyage.ID)
	}
	if len(voyage.Villes) == 0 {
		t.Fatal("bundled dataset has no cities")
	}
}

func TestFetchVoyageCachesFreshItinerary(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id_voyage": "voyage-fresh",
			"villes":    []map[string]any{{"id_ville": "fes", "nom_ville": "Fès", "jours": []any{}}},
		})
	}))
	defer backend.Close()

	trips := newMemTripStore()
	tripID := tripFixture(trips)
	voyages := newMemVoyageStore()

	h := NewTripHandler(onboarding.NewClient(backend.URL, trips, discardLogger()), trips, voyages)
	voyage := h.fetchVoyage(context.Background(), tripID)
	if voyage.ID != "voyage-fresh" {
		t.Fatalf("voyage id = %q, want the generated voyage", voyage.ID)
	}
	if cached, ok := voyages.voyages[tripID]; !ok || cached.ID != "voyage-fresh" {
		t.Fatal("generated voyage was not cached")
	}
}
