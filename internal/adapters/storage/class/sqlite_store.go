package class

import (
	"context"
	"database/sql"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/class"
)

const selectColumns = `SELECT id, name, instructor_id, time, duration, spots_left FROM class`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every class ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Class, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var classes []domain.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// GetByID retrieves a Class by its ID.
// PRE: id > 0
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Class, error) {
	return scanClass(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
}

// Save persists a Class to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Class) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO class (id, name, instructor_id, time, duration, spots_left)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, instructor_id=excluded.instructor_id, time=excluded.time,
		   duration=excluded.duration, spots_left=excluded.spots_left`,
		c.ID, c.Name, c.InstructorID, c.Time, c.Duration, c.SpotsLeft)
	return err
}

// Delete removes a Class from the database.
// POST: Entity with given id is removed; unknown ids are ignored
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM class WHERE id = ?`, id)
	return err
}

// ReplaceAll swaps the whole schedule in one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, values []domain.Class) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM class`); err != nil {
			return err
		}
		for _, c := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO class (id, name, instructor_id, time, duration, spots_left) VALUES (?, ?, ?, ?, ?, ?)`,
				c.ID, c.Name, c.InstructorID, c.Time, c.Duration, c.SpotsLeft); err != nil {
				return err
			}
		}
		return nil
	})
}

// NextID returns one more than the highest class id, or 1 when empty.
func (s *SQLiteStore) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM class`).Scan(&id)
	return id, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClass(row scanner) (domain.Class, error) {
	var c domain.Class
	err := row.Scan(&c.ID, &c.Name, &c.InstructorID, &c.Time, &c.Duration, &c.SpotsLeft)
	return c, err
}
