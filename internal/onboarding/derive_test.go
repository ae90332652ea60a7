// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package onboarding

import (
	"reflect"
	"testing"

	"github.com/nextrip/core/internal/model"
)

func TestBudgetRangeEUR(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"1000-30000 MAD", "91-2727 EUR"},
		{"500-1000 MAD", "45-91 EUR"},
		{"11-22 MAD", "1-2 EUR"},
		{"luxury", "luxury"},
		{"1000 MAD", "1000 MAD"},
		{"a-b MAD", "a-b MAD"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := BudgetRangeEUR(tc.input); got != tc.expected {
			t.Errorf("BudgetRangeEUR(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalizeRythme(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Relaxed pace", "relaxed"},
		{"très tranquille", "relaxed"},
		{"INTENSE", "intense"},
		{"rythme soutenu", "intense"},
		{"balanced", "moderate"},
		{"", "moderate"},
	}
	for _, tc := range testCases {
		if got := NormalizeRythme(tc.input); got != tc.expected {
			t.Errorf("NormalizeRythme(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestTripDays(t *testing.T) {
	testCases := []struct {
		name     string
		profile  model.Profile
		expected int
	}{
		{
			name: "inclusive date range",
			profile: model.Profile{Trip: model.ProfileTrip{
				Dates: &model.TripDates{Start: "2026-03-01", End: "2026-03-07"},
			}},
			expected: 7,
		},
		{
			name: "single day trip",
			profile: model.Profile{Trip: model.ProfileTrip{
				Dates: &model.TripDates{Start: "2026-03-01", End: "2026-03-01"},
			}},
			expected: 1,
		},
		{
			name: "no dates falls back to three per city",
			profile: model.Profile{Trip: model.ProfileTrip{
				Destinations: []string{"Marrakech", "Fès"},
			}},
			expected: 6,
		},
		{
			name: "unparseable dates fall back",
			profile: model.Profile{Trip: model.ProfileTrip{
				Destinations: []string{"Marrakech"},
				Dates:        &model.TripDates{Start: "soon", End: "later"},
			}},
			expected: 3,
		},
		{
			name:     "empty profile",
			profile:  model.Profile{},
			expected: 3,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TripDays(&tc.profile); got != tc.expected {
				t.Errorf("TripDays = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestTravellerCountPrecedence(t *testing.T) {
	profile := model.Profile{
		Preferences: model.ProfilePreferences{
			AdditionalAnswers: map[string]any{"travelers": "4"},
			FormAnswers: &model.FormAnswers{
				Dynamic: map[string]any{"nombre_personnes": float64(2)},
				Initial: map[string]any{"nombre_personnes": float64(9)},
			},
		},
	}

	// additionalAnswers wins over form answers.
	if got := travellerCount(&profile); got != 4 {
		t.Errorf("travellerCount = %d, want 4", got)
	}

	// Without it the dynamic answers are next.
	profile.Preferences.AdditionalAnswers = nil
	if got := travellerCount(&profile); got != 2 {
		t.Errorf("travellerCount = %d, want 2", got)
	}

	profile.Preferences.FormAnswers.Dynamic = nil
	if got := travellerCount(&profile); got != 9 {
		t.Errorf("travellerCount = %d, want 9", got)
	}

	profile.Preferences.FormAnswers = nil
	if got := travellerCount(&profile); got != 0 {
		t.Errorf("travellerCount = %d, want 0", got)
	}
}

func TestDeriveProfilUtilisateur(t *testing.T) {
	profile := model.Profile{
		Trip: model.ProfileTrip{
			Destinations: []string{"Marrakech", "Fès", "Chefchaouen"},
		},
		Budget: model.ProfileBudget{RangeMad: "1000-30000 MAD"},
		Preferences: model.ProfilePreferences{
			Interests:   []string{"culture", "food"},
			RythmeStyle: "plutôt relax",
			AdditionalAnswers: map[string]any{
				"nombre_personnes":          float64(2),
				"restrictions_alimentaires": []any{"halal"},
			},
		},
	}

	got := DeriveProfilUtilisateur(&profile)
	want := &model.ProfilUtilisateur{
		DureeJours:               9,
		Villes:                   []string{"Marrakech", "Fès", "Chefchaouen"},
		BudgetRange:              "91-2727 EUR",
		Rythme:                   "relaxed",
		NombrePersonnes:          2,
		CentresInteret:           []string{"culture", "food"},
		RestrictionsAlimentaires: []string{"halal"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveProfilUtilisateur = %+v, want %+v", got, want)
	}
}
