package admin

import (
	"context"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/admin"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the stored credential.
// POST: Returns sql.ErrNoRows if no credential has been seeded
func (s *SQLiteStore) Get(ctx context.Context) (domain.Credentials, error) {
	var c domain.Credentials
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM admin_credential WHERE id = 1`).Scan(&c.PasswordHash)
	return c, err
}

// Save replaces the stored credential.
// PRE: PasswordHash is a bcrypt hash
func (s *SQLiteStore) Save(ctx context.Context, c domain.Credentials) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_credential (id, password_hash) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET password_hash=excluded.password_hash`, c.PasswordHash)
	return err
}
