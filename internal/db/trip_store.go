// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/nextrip/core/internal/model"
)

// TripStore persists finished onboarding results and the trip index.
type TripStore interface {
	PutTrip(context.Context, *model.TripRecord) error
	GetTripByID(context.Context, uuid.UUID) (*model.TripRecord, error)
	ListTripIDs(context.Context) ([]uuid.UUID, error)
}
