package instructor

import (
	"context"

	domain "spinstudio/internal/domain/instructor"
)

// Store persists instructors together with their reviews.
type Store interface {
	List(ctx context.Context) ([]domain.Instructor, error)
	GetByID(ctx context.Context, id string) (domain.Instructor, error)
	Save(ctx context.Context, value domain.Instructor) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, values []domain.Instructor) error
}
