// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/nextrip/core/internal/model"
)

// VoyageStore caches the last itinerary fetched for a trip. Every fetch
// overwrites the previous one, last writer wins.
type VoyageStore interface {
	PutVoyage(context.Context, uuid.UUID, *model.Voyage) error
	GetVoyageByTripID(context.Context, uuid.UUID) (*model.Voyage, error)
}
