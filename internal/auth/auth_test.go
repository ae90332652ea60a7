// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/nextrip/core/internal/model"
)

type memUserStore struct {
	users map[uuid.UUID]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*model.User)}
}

func (m *memUserStore) CreateUser(_ context.Context, user *model.User) (uuid.UUID, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return uuid.Nil, fmt.Errorf("user with email %q already exists", user.Email)
		}
	}
	user.ID = uuid.New()
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *memUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("no user: %s", id)
	}
	return user, nil
}

func (m *memUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("no user: %s", email)
}

func (m *memUserStore) ListUsers(_ context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func testService() *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(newMemUserStore(), []byte("test-secret"), logger)
}

func TestSignUpAndSignIn(t *testing.T) {
	s := testService()
	ctx := context.Background()

	token, err := s.SignUp(ctx, "aya@example.ma", "s3cret")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if token.Token == "" || token.User.ID == uuid.Nil {
		t.Fatalf("incomplete auth token: %+v", token)
	}

	signin, err := s.SignIn(ctx, "aya@example.ma", "s3cret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if signin.User.ID != token.User.ID {
		t.Errorf("signin user = %s, want %s", signin.User.ID, token.User.ID)
	}

	if _, err := s.SignIn(ctx, "aya@example.ma", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("SignIn with wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.SignIn(ctx, "nobody@example.ma", "s3cret"); err != ErrInvalidCredentials {
		t.Errorf("SignIn with unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	s := testService()
	ctx := context.Background()

	if _, err := s.SignUp(ctx, "aya@example.ma", "s3cret"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := s.SignUp(ctx, "aya@example.ma", "other"); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestVerify(t *testing.T) {
	s := testService()
	ctx := context.Background()

	token, err := s.SignUp(ctx, "aya@example.ma", "s3cret")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	user, err := s.Verify(ctx, token.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user.ID != token.User.ID {
		t.Errorf("verified user = %s, want %s", user.ID, token.User.ID)
	}

	if _, err := s.Verify(ctx, "not.a.token"); err != ErrInvalidToken {
		t.Errorf("Verify garbage = %v, want ErrInvalidToken", err)
	}
}

func TestPasswordSumStable(t *testing.T) {
	if passwordSum("s3cret") != passwordSum("s3cret") {
		t.Error("checksum must be deterministic")
	}
	if passwordSum("s3cret") == passwordSum("s3cret!") {
		t.Error("different passwords should not collide on trivial inputs")
	}
	if passwordSum("") != "0" {
		t.Errorf("empty password sum = %q, want 0", passwordSum(""))
	}
}
