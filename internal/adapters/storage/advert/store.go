package advert

import (
	"context"

	domain "spinstudio/internal/domain/advert"
)

// Store persists home-screen advertisements.
type Store interface {
	List(ctx context.Context) ([]domain.Advertisement, error)
	Save(ctx context.Context, value domain.Advertisement) error
	Delete(ctx context.Context, id int64) error
	ReplaceAll(ctx context.Context, values []domain.Advertisement) error
	NextID(ctx context.Context) (int64, error)
}
