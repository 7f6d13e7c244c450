package bike

import (
	"context"
	"database/sql"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/bike"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns the layout in floor order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Bike, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, status FROM bike ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var bikes []domain.Bike
	for rows.Next() {
		var b domain.Bike
		if err := rows.Scan(&b.ID, &b.Status); err != nil {
			return nil, err
		}
		bikes = append(bikes, b)
	}
	return bikes, rows.Err()
}

// ReplaceAll writes the whole layout in one transaction.
// Every bike mutation goes through here; the layout is always replaced as a unit.
// POST: List returns exactly values, in order
func (s *SQLiteStore) ReplaceAll(ctx context.Context, values []domain.Bike) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bike`); err != nil {
			return err
		}
		for i, b := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO bike (id, position, status) VALUES (?, ?, ?)`, b.ID, i, b.Status); err != nil {
				return err
			}
		}
		return nil
	})
}
