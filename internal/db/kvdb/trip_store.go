// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	"github.com/nextrip/core/internal/model"
)

const bucketTrip = "trip_store"

func NewTripStore(db *bolt.DB) (*TripStore, error) {
	return &TripStore{db: db}, db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTrip))
		return err
	})
}

type TripStore struct {
	db *bolt.DB
}

func (t *TripStore) PutTrip(ctx context.Context, record *model.TripRecord) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "PutTrip")
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

	span.AddEvent("Update bucket")
	return t.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTrip)).Put(record.TripID[:], j)
	})
}

func (t *TripStore) GetTripByID(ctx context.Context, tripID uuid.UUID) (*model.TripRecord, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetTripByID")
	defer span.End()

	span.AddEvent("View bucket")
	record := &model.TripRecord{}
	return record, t.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketTrip)).Get(tripID[:])
		if res == nil {
			err := fmt.Errorf("could not find trip with id: %s", tripID)
			span.RecordError(err)
			return err
		}
		return json.Unmarshal(res, record)
	})
}

func (t *TripStore) ListTripIDs(ctx context.Context) ([]uuid.UUID, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListTripIDs")
	defer span.End()

	span.AddEvent("View bucket")
	var ids []uuid.UUID
	return ids, t.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTrip)).ForEach(func(k, _ []byte) error {
			id, err := uuid.FromBytes(k)
			if err != nil {
				span.RecordError(err)
				return err
			}
			ids = append(ids, id)
			return nil
		})
	})
}
