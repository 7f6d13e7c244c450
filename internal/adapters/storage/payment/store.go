package payment

import (
	"context"

	domain "spinstudio/internal/domain/payment"
)

// Store persists payment records.
type Store interface {
	List(ctx context.Context) ([]domain.Record, error)
	GetByID(ctx context.Context, id string) (domain.Record, error)
	Save(ctx context.Context, value domain.Record) error
	ReplaceAll(ctx context.Context, values []domain.Record) error
}
