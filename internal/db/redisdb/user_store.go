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

const userIndexKey = "users"

func userKey(id uuid.UUID) string      { return "user:" + id.String() }
func userEmailKey(email string) string { return "user_email:" + email }

func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

type UserStore struct {
	client *redis.Client
}

func (u *UserStore) CreateUser(ctx context.Context, user *model.User) (uuid.UUID, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateUser")
	defer span.End()

	if user.ID == uuid.Nil {
		span.AddEvent("uuid is nil, generate a new a new id")
		user.ID = uuid.New()
	}

	span.AddEvent("SETNX email index")
	ok, err := u.client.SetNX(ctx, userEmailKey(user.Email), user.ID.String(), 0).Result()
	if err != nil {
		span.RecordError(err)
		return uuid.Nil, err
	}
	if !ok {
		err := fmt.Errorf("user with email %q already exists", user.Email)
		span.RecordError(err)
		return uuid.Nil, err
	}

	j, err := json.Marshal(user)
	if err != nil {
		return uuid.Nil, err
	}

	span.AddEvent("SET user")
	if err := u.client.Set(ctx, userKey(user.ID), j, 0).Err(); err != nil {
		span.RecordError(err)
		return uuid.Nil, err
	}
	return user.ID, u.client.SAdd(ctx, userIndexKey, user.ID.String()).Err()
}

func (u *UserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GetUserByID")
	defer span.End()

	span.AddEvent("GET user")
	res, err := u.client.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		err = fmt.Errorf("could not find user with id: %s", id)
		span.RecordError(err)
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	user := &model.User{}
	return user, json.Unmarshal(res, user)
}

func (u *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "GetUserByEmail")
	defer span.End()

	span.AddEvent("GET email index")
	idStr, err := u.client.Get(ctx, userEmailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		err = fmt.Errorf("could not find user with email: %s", email)
		span.RecordError(err)
		return nil, err
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return u.GetUserByID(ctx, id)
}

func (u *UserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ListUsers")
	defer span.End()

	span.AddEvent("SMEMBERS users")
	members, err := u.client.SMembers(ctx, userIndexKey).Result()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	users := make([]*model.User, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		user, err := u.GetUserByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
