package ports

import (
	"context"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

// AuthRepository defines persistence for dashboard operator accounts.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// AuthService implements registration and login for dashboard operators.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
