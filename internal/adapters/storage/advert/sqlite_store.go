package advert

import (
	"context"
	"database/sql"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/advert"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every advertisement ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Advertisement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, media_url, thumbnail_url FROM advertisement ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ads []domain.Advertisement
	for rows.Next() {
		var a domain.Advertisement
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.MediaURL, &a.ThumbnailURL); err != nil {
			return nil, err
		}
		ads = append(ads, a)
	}
	return ads, rows.Err()
}

// Save persists an Advertisement.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, a domain.Advertisement) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO advertisement (id, type, title, media_url, thumbnail_url)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   type=excluded.type, title=excluded.title,
		   media_url=excluded.media_url, thumbnail_url=excluded.thumbnail_url`,
		a.ID, a.Type, a.Title, a.MediaURL, a.ThumbnailURL)
	return err
}

// Delete removes an Advertisement.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM advertisement WHERE id = ?`, id)
	return err
}

// ReplaceAll swaps every advertisement in one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, values []domain.Advertisement) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM advertisement`); err != nil {
			return err
		}
		for _, a := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO advertisement (id, type, title, media_url, thumbnail_url) VALUES (?, ?, ?, ?, ?)`,
				a.ID, a.Type, a.Title, a.MediaURL, a.ThumbnailURL); err != nil {
				return err
			}
		}
		return nil
	})
}

// NextID returns one more than the highest advertisement id.
func (s *SQLiteStore) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM advertisement`).Scan(&id)
	return id, err
}
