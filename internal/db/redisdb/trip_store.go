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

const tripIndexKey = "trips"

func tripKey(id uuid.UUID) string { return "trip:" + id.String() }

func NewTripStore(client *redis.Client) *TripStore {
	return &TripStore{client: client}
}

type TripStore struct {
	client *redis.Client
}

func (t *TripStore) PutTrip(ctx context.Context, record *model.TripRecord) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "PutTrip")
	defer span.End()

	if record == nil || record.TripID == uuid.Nil {
		err := errors.New("trip ID is required")
		span.RecordError(err)
		return err
	}

	j, err := json.Marshal(record)
	if err != nil {
		return err
	}

	span.AddEvent("SET trip")
	if err := t.client.Set(ctx, tripKey(record.TripID), j, 0).Err(); err != nil {
		span.RecordError(err)
		return err
	}
	return t.client.SAdd(ctx, tripIndexKey, record.TripID.String()).Err()
}

func (t *TripStore) GetTripByID(ctx context.Context, tripID uuid.UUID) (*model.TripRecord, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GetTripByID")
	defer span.End()

	span.AddEvent("GET trip")
	res, err := t.client.Get(ctx, tripKey(tripID)).Bytes()
	if errors.Is(err, redis.Nil) {
		err = fmt.Errorf("could not find trip with id: %s", tripID)
		span.RecordError(err)
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	record := &model.TripRecord{}
	return record, json.Unmarshal(res, record)
}

func (t *TripStore) ListTripIDs(ctx context.Context) ([]uuid.UUID, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ListTripIDs")
	defer span.End()

	span.AddEvent("SMEMBERS trips")
	members, err := t.client.SMembers(ctx, tripIndexKey).Result()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
