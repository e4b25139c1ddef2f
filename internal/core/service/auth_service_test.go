package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: map[string]*domain.User{}}
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.users[user.Username] = user
	return user, nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)

	user, err := svc.Register(context.Background(), "ops.riya", "s3cret-pass", "riya@craftkart.in", domain.RoleOps)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}

	token, got, err := svc.Login(context.Background(), "ops.riya", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.Username != "ops.riya" {
		t.Fatalf("user = %+v", got)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["username"] != "ops.riya" || claims["role"] != domain.RoleOps {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "x", "password123", "", "superuser"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "ops.riya", "s3cret-pass", "", domain.RoleOps); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "ops.riya", "other-pass99", "", domain.RoleOps); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)
	if _, err := svc.Register(context.Background(), "ops.riya", "s3cret-pass", "", domain.RoleOps); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ops.riya", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "wrong"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
