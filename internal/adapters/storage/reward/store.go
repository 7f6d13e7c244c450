package reward

import (
	"context"

	domain "spinstudio/internal/domain/reward"
)

// Store persists the loyalty ladder.
type Store interface {
	List(ctx context.Context) ([]domain.Reward, error)
	Save(ctx context.Context, value domain.Reward) error
	Delete(ctx context.Context, id int64) error
	ReplaceAll(ctx context.Context, values []domain.Reward) error
	NextID(ctx context.Context) (int64, error)
}
