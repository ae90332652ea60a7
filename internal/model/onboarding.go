// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package model

import (
	"time"

	"github.com/google/uuid"
)

// Question is one entry of the static planning form sent to the backend.
type Question struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Responses maps question keys to the user's answers. Values are strings,
// string lists or nested objects depending on the input kind.
type Responses map[string]any

// DynamicFormQuestion is a single follow-up question generated by the
// backend. Type is one of "single", "multi", "number" or "text".
type DynamicFormQuestion struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Options   []string `json:"options,omitempty"`
	Required  bool     `json:"required"`
	MaxSelect int      `json:"maxSelect,omitempty"`
}

// DynamicForm is the optional follow-up form returned by the onboarding
// backend. Questions keep their wire order.
type DynamicForm struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Questions   []DynamicFormQuestion `json:"questions"`
}

// Profile is the traveller profile minted by the onboarding backend once
// all questions are answered.
type Profile struct {
	ID          string             `json:"id"`
	Meta        ProfileMeta        `json:"meta"`
	Trip        ProfileTrip        `json:"trip"`
	Preferences ProfilePreferences `json:"preferences"`
	Budget      ProfileBudget      `json:"budget"`
}

type ProfileMeta struct {
	CreatedAt string `json:"createdAt"`
	Locale    string `json:"locale"`
	Version   string `json:"version"`
}

type ProfileTrip struct {
	Destinations []string   `json:"destinations"`
	Dates        *TripDates `json:"dates,omitempty"`
}

type TripDates struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type ProfilePreferences struct {
	Interests         []string       `json:"interests,omitempty"`
	RythmeStyle       string         `json:"rythmeStyle,omitempty"`
	AIAssistance      any            `json:"aiAssistance,omitempty"`
	AdditionalAnswers map[string]any `json:"additionalAnswers,omitempty"`
	FormAnswers       *FormAnswers   `json:"formAnswers,omitempty"`
}

type FormAnswers struct {
	Initial map[string]any `json:"initial,omitempty"`
	Dynamic map[string]any `json:"dynamic,omitempty"`
}

type ProfileBudget struct {
	Currency           string `json:"currency"`
	RangeMad           string `json:"rangeMad,omitempty"`
	EstimatedPerDayMad int    `json:"estimatedPerDayMad,omitempty"`
}

// TripRecord is the locally persisted outcome of a finished onboarding.
type TripRecord struct {
	TripID    uuid.UUID `json:"tripId"`
	Profile   *Profile  `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
}
