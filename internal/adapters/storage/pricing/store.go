package pricing

import (
	"context"

	domain "spinstudio/internal/domain/pricing"
)

// Store persists the single pricing record.
type Store interface {
	Get(ctx context.Context) (domain.Pricing, error)
	Save(ctx context.Context, value domain.Pricing) error
}
