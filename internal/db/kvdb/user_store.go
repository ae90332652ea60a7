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

const (
	bucketUser      = "user_store"
	bucketUserEmail = "user_email_index"
)

func NewUserStore(db *bolt.DB) (*UserStore, error) {
	return &UserStore{db: db}, db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketUser)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(bucketUserEmail))
		return err
	})
}

type UserStore struct {
	db *bolt.DB
}

func (u *UserStore) CreateUser(ctx context.Context, user *model.User) (uuid.UUID, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateUser")
	defer span.End()

	if user.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new a new id")
		user.ID = uuid.New()
	}

	j, err := json.Marshal(user)
	if err != nil {
		return uuid.Nil, err
	}

	span.AddEvent("Update bucket")
	return user.ID, u.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket([]byte(bucketUserEmail))
		if index.Get([]byte(user.Email)) != nil {
			err := fmt.Errorf("user with email %q already exists", user.Email)
			span.RecordError(err)
			return err
		}
		if err := index.Put([]byte(user.Email), user.ID[:]); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketUser)).Put(user.ID[:], j)
	})
}

func (u *UserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByID")
	defer span.End()

	span.AddEvent("View bucket")
	user := &model.User{}
	return user, u.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket([]byte(bucketUser)).Get(id[:])
		if res == nil {
			err := fmt.Errorf("could not find user with id: %s", id)
			span.RecordError(err)
			return err
		}
		return json.Unmarshal(res, user)
	})
}

func (u *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByEmail")
	defer span.End()

	span.AddEvent("View bucket")
	user := &model.User{}
	return user, u.db.View(func(tx *bolt.Tx) error {
		idBytes := tx.Bucket([]byte(bucketUserEmail)).Get([]byte(email))
		if idBytes == nil {
			err := fmt.Errorf("could not find user with email: %s", email)
			span.RecordError(err)
			return err
		}
		res := tx.Bucket([]byte(bucketUser)).Get(idBytes)
		if res == nil {
			return errors.New("user index points at missing record")
		}
		return json.Unmarshal(res, user)
	})
}

func (u *UserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListUsers")
	defer span.End()

	span.AddEvent("View bucket")
	var users []*model.User
	return users, u.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketUser)).ForEach(func(_, v []byte) error {
			user := &model.User{}
			if err := json.Unmarshal(v, user); err != nil {
				span.RecordError(err)
				return err
			}
			users = append(users, user)
			return nil
		})
	})
}
