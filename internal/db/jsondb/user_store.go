// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/nextrip/core/internal/model"
)

func NewUserStore(filename string) (*UserStore, error) {
	store := &UserStore{
		users:    make(map[uuid.UUID]*model.User),
		filename: filename,
	}
	if err := store.loadFromFile(); err != nil {
		return nil, err
	}
	return store, nil
}

type UserStore struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]*model.User
	filename string
}

func (u *UserStore) CreateUser(ctx context.Context, user *model.User) (uuid.UUID, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "CreateUser")
	defer span.End()

	span.AddEvent("Lock")
	u.mu.Lock()
	defer span.AddEvent("Unlock")
	defer u.mu.Unlock()

	for _, existing := range u.users {
		if existing.Email == user.Email {
			err := fmt.Errorf("user with email %q already exists", user.Email)
			span.RecordError(err)
			return uuid.Nil, err
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	u.users[user.ID] = user
	if err := u.saveToFile(ctx); err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

func (u *UserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByID")
	defer span.End()

	span.AddEvent("RLock")
	u.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer u.mu.RUnlock()

	user, ok := u.users[id]
	if !ok {
		err := fmt.Errorf("could not find user with id: %s", id)
		span.RecordError(err)
		return nil, err
	}
	return user, nil
}

func (u *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetUserByEmail")
	defer span.End()

	span.AddEvent("RLock")
	u.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer u.mu.RUnlock()

	for _, user := range u.users {
		if user.Email == email {
			return user, nil
		}
	}
	err := fmt.Errorf("could not find user with email: %s", email)
	span.RecordError(err)
	return nil, err
}

func (u *UserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListUsers")
	defer span.End()

	span.AddEvent("RLock")
	u.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer u.mu.RUnlock()

	users := make([]*model.User, 0, len(u.users))
	for _, user := range u.users {
		users = append(users, user)
	}
	return users, nil
}

func (u *UserStore) saveToFile(ctx context.Context) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SaveToFile")
	defer span.End()

	fileData, err := json.MarshalIndent(u.users, "", "  ")
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := os.WriteFile(u.filename, fileData, 0644); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (u *UserStore) loadFromFile() error {
	if _, err := os.Stat(u.filename); os.IsNotExist(err) {
		return nil
	}

	fileData, err := os.ReadFile(u.filename)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	return json.Unmarshal(fileData, &u.users)
}
