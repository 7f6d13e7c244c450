package admin

import (
	"context"

	domain "spinstudio/internal/domain/admin"
)

// Store persists the admin credential.
type Store interface {
	Get(ctx context.Context) (domain.Credentials, error)
	Save(ctx context.Context, value domain.Credentials) error
}
