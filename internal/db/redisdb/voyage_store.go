// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/nextrip/core/internal/model"
)

func voyageKey(id uuid.UUID) string { return "voyage:" + id.String() }

func NewVoyageStore(client *redis.Client) *VoyageStore {
	return &VoyageStore{client: client}
}

type VoyageStore struct {
	client *redis.Client
}

func (v *VoyageStore) PutVoyage(ctx context.Context, tripID uuid.UUID, voyage *model.Voyage) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "PutVoyage")
	defer span.End()

	if tripID == uuid.Nil {
		err := errors.New("trip ID is required")
		span.RecordError(err)
		return err
	}

	j, err := json.Marshal(voyage)
	if err != nil {
		return err
	}

	span.AddEvent("SET voyage")
	return v.client.Set(ctx, voyageKey(tripID), j, 0).Err()
}

func (v *VoyageStore) GetVoyageByTripID(ctx context.Context, tripID uuid.UUID) (*model.Voyage, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GetVoyageByTripID")
	defer span.End()

	span.AddEvent("GET voyage")
	res, err := v.client.Get(ctx, voyageKey(tripID)).Bytes()
	if errors.Is(err, redis.Nil) {
		err = fmt.Errorf("no cached voyage for trip: %s", tripID)
		span.RecordError(err)
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	voyage := &model.Voyage{}
	return voyage, json.Unmarshal(res, voyage)
}
