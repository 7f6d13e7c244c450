package pricing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/pricing"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the pricing record, or zero prices if none has been saved.
func (s *SQLiteStore) Get(ctx context.Context) (domain.Pricing, error) {
	var individual, group2, group3 string
	err := s.db.QueryRowContext(ctx,
		`SELECT individual, group2, group3 FROM pricing WHERE id = 1`).Scan(&individual, &group2, &group3)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Pricing{}, nil
	}
	if err != nil {
		return domain.Pricing{}, err
	}
	var p domain.Pricing
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{{&p.Individual, individual}, {&p.Group2, group2}, {&p.Group3, group3}} {
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return domain.Pricing{}, fmt.Errorf("bad price %q: %w", f.src, err)
		}
		*f.dst = d
	}
	return p, nil
}

// Save replaces the pricing record as a whole.
// PRE: value has been validated
// POST: Get returns value
func (s *SQLiteStore) Save(ctx context.Context, p domain.Pricing) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pricing (id, individual, group2, group3) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   individual=excluded.individual, group2=excluded.group2, group3=excluded.group3`,
		p.Individual.String(), p.Group2.String(), p.Group3.String())
	return err
}
