// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a demo-grade account. PasswordSum is a non-cryptographic
// checksum, it never leaves the user store.
type User struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	CreatedAt   *time.Time `json:"created_at"`
	PasswordSum string     `json:"password_sum,omitempty"`
}

// AuthToken pairs a signed session token with its user.
type AuthToken struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
