// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nextrip/core/internal/db"
	"github.com/nextrip/core/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

func NewService(users db.UserStore, secret []byte, logger *slog.Logger) *Service {
	return &Service{users: users, secret: secret, logger: logger}
}

// Service implements the demo account flow of the portal. The password
// checksum is NOT a cryptographic hash, the whole signin surface exists to
// demo the product and must never guard real accounts.
type Service struct {
	users  db.UserStore
	secret []byte
	logger *slog.Logger
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*model.AuthToken, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user := &model.User{
		Email:       email,
		CreatedAt:   &now,
		PasswordSum: passwordSum(password),
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.InfoContext(ctx, "user signed up", "user_id", id)
	return s.mintToken(user)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*model.AuthToken, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordSum != passwordSum(password) {
		return nil, ErrInvalidCredentials
	}

	s.logger.InfoContext(ctx, "user signed in", "user_id", user.ID)
	return s.mintToken(user)
}

// Verify parses a minted token and loads the user it belongs to.
func (s *Service) Verify(ctx context.Context, token string) (*model.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.users.GetUserByID(ctx, id)
}

func (s *Service) mintToken(user *model.User) (*model.AuthToken, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &model.AuthToken{Token: signed, User: user}, nil
}

// passwordSum is the non-cryptographic checksum the original demo used,
// ((h<<5)-h+c) folded over the characters, truncated to 32 bit.
func passwordSum(password string) string {
	var h int32
	for _, c := range password {
		h = (h << 5) - h + c
	}
	return strconv.FormatInt(int64(h), 10)
}
