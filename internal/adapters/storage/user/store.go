package user

import (
	"context"

	domain "spinstudio/internal/domain/user"
)

// Store persists the rider roster.
type Store interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Save(ctx context.Context, value domain.User) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, values []domain.User) error
}
