package ports

import (
	"context"

	"github.com/shopstack/catalog-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenService issues and verifies bearer tokens. Verification failures of
// any shape (bad signature, malformed payload, missing subject, expired)
// are reported as domain.ErrInvalidToken so callers cannot distinguish a
// forged token from an expired one.
type TokenService interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}
