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

const bucketVoyage = "voyage_store"

func NewVoyageStore(db *bolt.DB) (*VoyageStore, error) {
	return &VoyageStore{db: db}, db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketVoyage))
		return err
	})
}

type VoyageStore struct {
	db *bolt.DB
}

func (v *VoyageStore) PutVoyage(ctx context.Context, tripID uuid.UUID, voyage *model.Voyage) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "PutVoyage")
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

	span.AddEvent("Update bucket")
	return v.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketVoyage)).Put(tripID[:], j)
	})
}

func (v *VoyageStore) GetVoyageByTripID(ctx context.Context, tripID uuid.UUID) (*model.Voyage, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetVoyageByTripID")
	defer span.End()

	span.AddEvent("View bucket")
	voyage := &model.Voyage{}
	return voyage, v.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketVoyage)).Get(tripID[:])
		if res == nil {
			err := fmt.Errorf("no cached voyage for trip: %s", tripID)
			span.RecordError(err)
			return err
		}
		return json.Unmarshal(res, voyage)
	})
}
