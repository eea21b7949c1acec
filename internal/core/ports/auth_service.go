package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/assignhub/assignment-api/internal/core/domain"
)

// TokenData is the decoded session token payload.
type TokenData struct {
	ID       uuid.UUID
	Username string
	Admin    bool
}

// AuthService defines password hashing and the session token lifecycle.
// Tokens move from issued to expired; there is no server-side revocation.
// Logout is client-side cookie deletion only.
type AuthService interface {
	// HashPassword returns the one-way adaptive digest of plain.
	HashPassword(plain string) (string, error)

	// VerifyPassword reports whether plain matches digest. A mismatch is
	// (false, nil); only a primitive failure returns an error.
	VerifyPassword(plain, digest string) (bool, error)

	// CreateToken issues a signed token embedding subject, admin flag, id,
	// and an expiry of now plus the configured TTL.
	CreateToken(user *domain.User) (string, error)

	// DecodeToken verifies signature and expiry and extracts the claims.
	DecodeToken(token string) (*TokenData, error)

	// Login authenticates by username (case-normalized) and password,
	// returning a signed token.
	Login(ctx context.Context, username, password string) (string, error)
}
