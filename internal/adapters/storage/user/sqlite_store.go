package user

import (
	"context"
	"database/sql"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/user"
)

const selectColumns = `SELECT id, name, email, level, classes_completed, avatar_url FROM app_user`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every user in roster order.
// POST: Returns users ordered by insertion position
func (s *SQLiteStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
}

// Save inserts or updates a User. New users go to the end of the roster.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_user (id, position, name, email, level, classes_completed, avatar_url)
		 VALUES (?, (SELECT COALESCE(MAX(position) + 1, 0) FROM app_user), ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email, level=excluded.level,
		   classes_completed=excluded.classes_completed, avatar_url=excluded.avatar_url`,
		u.ID, u.Name, u.Email, u.Level, u.ClassesCompleted, u.AvatarURL)
	return err
}

// Delete removes a User from the roster.
// PRE: id is non-empty
// POST: Entity with given id is removed; unknown ids are ignored
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM app_user WHERE id = ?`, id)
	return err
}

// ReplaceAll swaps the whole roster in one transaction.
// POST: List returns exactly values, in order
func (s *SQLiteStore) ReplaceAll(ctx context.Context, values []domain.User) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM app_user`); err != nil {
			return err
		}
		for i, u := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO app_user (id, position, name, email, level, classes_completed, avatar_url)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				u.ID, i, u.Name, u.Email, u.Level, u.ClassesCompleted, u.AvatarURL); err != nil {
				return err
			}
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Level, &u.ClassesCompleted, &u.AvatarURL)
	return u, err
}
