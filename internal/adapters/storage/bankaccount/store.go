package bankaccount

import (
	"context"

	domain "spinstudio/internal/domain/bankaccount"
)

// Store persists transfer destinations.
type Store interface {
	List(ctx context.Context) ([]domain.BankAccount, error)
	Save(ctx context.Context, value domain.BankAccount) error
	Delete(ctx context.Context, id int64) error
	ReplaceAll(ctx context.Context, values []domain.BankAccount) error
	NextID(ctx context.Context) (int64, error)
}
