package ports

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	// Compare returns nil when password matches hash.
	Compare(hash []byte, password string) error
}

// TokenIssuer issues and verifies the bearer tokens that carry the caller identity.
type TokenIssuer interface {
	Issue(actor kernel.Actor) (token string, expiresAt time.Time, err error)
	Verify(token string) (kernel.Actor, error)
}
