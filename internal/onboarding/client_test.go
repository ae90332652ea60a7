// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package onboarding

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
)

// memTripStore is an in-memory stand-in for the persistent trip stores.
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testQuestions() []model.Question {
	return []model.Question{{Label: "Quelles villes ?", Values: []string{"Marrakech"}}}
}

func TestStartDynamicFormStage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/onboarding" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["acceptDynamicForm"] != true {
			t.Error("expected acceptDynamicForm to be true")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"stage": "dynamic_form",
			"form": map[string]any{
				"title": "Précisions",
				"questions": []map[string]any{
					{"key": "nombre_personnes", "label": "Voyageurs ?", "type": "number", "required": true},
				},
			},
		})
	}))
	defer backend.Close()

	c := NewClient(backend.URL, newMemTripStore(), discardLogger())
	res, err := c.Start(context.Background(), testQuestions(), model.Responses{"villes": []string{"Marrakech"}}, true)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if res.Action != ActionShowDynamicForm {
		t.Fatalf("action = %v, want ActionShowDynamicForm", res.Action)
	}
	if res.Form == nil || len(res.Form.Questions) != 1 {
		t.Fatalf("unexpected form: %+v", res.Form)
	}
	if res.Form.Questions[0].Key != "nombre_personnes" {
		t.Errorf("question key = %q", res.Form.Questions[0].Key)
	}
}

func TestStartProfileStageWrappedEnvelope(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"stage":   "profile",
				"profile": map[string]any{"id": "profile_1"},
			},
		})
	}))
	defer backend.Close()

	trips := newMemTripStore()
	c := NewClient(backend.URL, trips, discardLogger())
	res, err := c.Start(context.Background(), testQuestions(), model.Responses{}, false)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if res.Action != ActionDone {
		t.Fatalf("action = %v, want ActionDone", res.Action)
	}
	if res.TripID == uuid.Nil {
		t.Fatal("expected a minted trip id")
	}

	record, err := trips.GetTripByID(context.Background(), res.TripID)
	if err != nil {
		t.Fatalf("trip was not persisted: %v", err)
	}
	if record.Profile.ID != "profile_1" {
		t.Errorf("persisted profile id = %q", record.Profile.ID)
	}
	if record.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
}

func TestContinueSecondDynamicFormIsProtocolError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"stage": "dynamic_form",
			"form":  map[string]any{"title": "encore"},
		})
	}))
	defer backend.Close()

	c := NewClient(backend.URL, newMemTripStore(), discardLogger())
	_, err := c.Continue(context.Background(), testQuestions(), model.Responses{}, model.Responses{"nombre_personnes": "2"})
	if err == nil {
		t.Fatal("expected protocol error for second dynamic form round")
	}
}

func TestStartBackendFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	c := NewClient(backend.URL, newMemTripStore(), discardLogger())
	if _, err := c.Start(context.Background(), testQuestions(), model.Responses{}, true); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestStartUnrecognizedStage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"stage": "waiting"})
	}))
	defer backend.Close()

	c := NewClient(backend.URL, newMemTripStore(), discardLogger())
	if _, err := c.Start(context.Background(), testQuestions(), model.Responses{}, true); err == nil {
		t.Fatal("expected error for unrecognized stage")
	}
}

func TestStartRejectedEnvelope(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "quota exceeded"})
	}))
	defer backend.Close()

	c := NewClient(backend.URL, newMemTripStore(), discardLogger())
	if _, err := c.Start(context.Background(), testQuestions(), model.Responses{}, true); err == nil {
		t.Fatal("expected error for rejected envelope")
	}
}

func TestGenerateDirectPayload(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orchestrateur/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		pu, ok := req["profil_utilisateur"].(map[string]any)
		if !ok {
			t.Fatal("expected profil_utilisateur in request body")
		}
		if pu["budget_range"] != "91-2727 EUR" {
			t.Errorf("budget_range = %v", pu["budget_range"])
		}
		if pu["rythme"] != "moderate" {
			t.Errorf("rythme = %v", pu["rythme"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id_voyage":    "voyage_1",
			"titre_voyage": "Maroc Express",
			"villes":       []map[string]any{{"id_ville": "marrakech", "nom_ville": "Marrakech", "jours": []any{}}},
		})
	}))
	defer backend.Close()

	c := NewClient(backend.URL, newMemTripStore(), discardLogger())
	voyage, err := c.Generate(context.Background(), &model.Profile{
		Trip:   model.ProfileTrip{Destinations: []string{"Marrakech"}},
		Budget: model.ProfileBudget{RangeMad: "1000-30000 MAD"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if voyage.ID != "voyage_1" || len(voyage.Villes) != 1 {
		t.Errorf("unexpected voyage: %+v", voyage)
	}
}

func TestGenerateMalformedPayload(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"unexpected": true})
	}))
	defer backend.Close()

	c := NewClient(backend.URL, newMemTripStore(), discardLogger())
	if _, err := c.Generate(context.Background(), &model.Profile{}); err == nil {
		t.Fatal("expected error for unrecognized itinerary payload")
	}
}
