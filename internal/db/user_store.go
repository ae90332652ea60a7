// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/nextrip/core/internal/model"
)

// UserStore holds the demo accounts of the signin portal.
type UserStore interface {
	CreateUser(context.Context, *model.User) (uuid.UUID, error)
	GetUserByID(context.Context, uuid.UUID) (*model.User, error)
	GetUserByEmail(context.Context, string) (*model.User, error)
	ListUsers(context.Context) ([]*model.User, error)
}
