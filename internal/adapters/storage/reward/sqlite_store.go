package reward

import (
	"context"
	"database/sql"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/reward"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns rewards ordered by threshold, then id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Reward, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, required_classes FROM reward ORDER BY required_classes, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var rewards []domain.Reward
	for rows.Next() {
		var r domain.Reward
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.RequiredClasses); err != nil {
			return nil, err
		}
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

// Save persists a Reward.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, r domain.Reward) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reward (id, title, description, required_classes)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, description=excluded.description,
		   required_classes=excluded.required_classes`,
		r.ID, r.Title, r.Description, r.RequiredClasses)
	return err
}

// Delete removes a Reward.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM reward WHERE id = ?`, id)
	return err
}

// ReplaceAll swaps the ladder in one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, values []domain.Reward) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM reward`); err != nil {
			return err
		}
		for _, r := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO reward (id, title, description, required_classes) VALUES (?, ?, ?, ?)`,
				r.ID, r.Title, r.Description, r.RequiredClasses); err != nil {
				return err
			}
		}
		return nil
	})
}

// NextID returns one more than the highest reward id.
func (s *SQLiteStore) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM reward`).Scan(&id)
	return id, err
}
