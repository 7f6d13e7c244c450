package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/payment"
)

const selectColumns = `SELECT id, user_name, class_name, amount, method, status, date FROM payment`

// SQLiteStore implements Store using SQLite.
// Amounts are stored as decimal strings so no precision is lost.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every payment in the order it was recorded.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetByID retrieves a Record by its ID.
// PRE: id is non-empty
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	return scanRecord(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
}

// Save persists a Record. New records are appended to the history.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, r domain.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment (id, position, user_name, class_name, amount, method, status, date)
		 VALUES (?, (SELECT COALESCE(MAX(position) + 1, 0) FROM payment), ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   user_name=excluded.user_name, class_name=excluded.class_name, amount=excluded.amount,
		   method=excluded.method, status=excluded.status, date=excluded.date`,
		r.ID, r.UserName, r.ClassName, r.Amount.String(), r.Method, r.Status, r.Date)
	return err
}

// ReplaceAll swaps the payment history in one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, values []domain.Record) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payment`); err != nil {
			return err
		}
		for i, r := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO payment (id, position, user_name, class_name, amount, method, status, date)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ID, i, r.UserName, r.ClassName, r.Amount.String(), r.Method, r.Status, r.Date); err != nil {
				return err
			}
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (domain.Record, error) {
	var r domain.Record
	var amount string
	if err := row.Scan(&r.ID, &r.UserName, &r.ClassName, &amount, &r.Method, &r.Status, &r.Date); err != nil {
		return domain.Record{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Record{}, fmt.Errorf("payment %s: bad amount %q: %w", r.ID, amount, err)
	}
	r.Amount = d
	return r, nil
}
