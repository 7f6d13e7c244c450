package class

import (
	"context"

	domain "spinstudio/internal/domain/class"
)

// Store persists the class schedule.
type Store interface {
	List(ctx context.Context) ([]domain.Class, error)
	GetByID(ctx context.Context, id int64) (domain.Class, error)
	Save(ctx context.Context, value domain.Class) error
	Delete(ctx context.Context, id int64) error
	ReplaceAll(ctx context.Context, values []domain.Class) error
	NextID(ctx context.Context) (int64, error)
}
