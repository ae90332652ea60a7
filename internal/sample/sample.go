// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

// Package sample bundles the example itinerary the trip view falls back to
// when the backend is unreachable or returns an unusable payload.
package sample

import (
	_ "embed"
	"encoding/json"

	"github.com/nextrip/core/internal/model"
)

//go:embed voyage.json
var voyageJSON []byte

// Voyage returns a fresh copy of the bundled example itinerary.
func Voyage() (*model.Voyage, error) {
	voyage := &model.Voyage{}
	if err := json.Unmarshal(voyageJSON, voyage); err != nil {
		return nil, err
	}
	return voyage, nil
}
