package bike

import (
	"context"

	domain "spinstudio/internal/domain/bike"
)

// Store persists the studio floor plan.
type Store interface {
	List(ctx context.Context) ([]domain.Bike, error)
	ReplaceAll(ctx context.Context, values []domain.Bike) error
}
