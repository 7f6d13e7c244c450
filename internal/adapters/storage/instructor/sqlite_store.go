package instructor

import (
	"context"
	"database/sql"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/instructor"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every instructor with reviews, in insertion order.
// POST: Returns instructors ordered by position, reviews in append order
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Instructor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, avatar_url, bio, rating FROM instructor ORDER BY position`)
	if err != nil {
		return nil, err
	}
	var instructors []domain.Instructor
	index := make(map[string]int)
	for rows.Next() {
		var in domain.Instructor
		if err := rows.Scan(&in.ID, &in.Name, &in.AvatarURL, &in.Bio, &in.Rating); err != nil {
			rows.Close()
			return nil, err
		}
		index[in.ID] = len(instructors)
		instructors = append(instructors, in)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reviews, err := s.db.QueryContext(ctx,
		`SELECT instructor_id, user_name, rating, comment FROM instructor_review ORDER BY instructor_id, position`)
	if err != nil {
		return nil, err
	}
	defer reviews.Close()
	for reviews.Next() {
		var id string
		var r domain.Review
		if err := reviews.Scan(&id, &r.UserName, &r.Rating, &r.Comment); err != nil {
			return nil, err
		}
		if i, ok := index[id]; ok {
			instructors[i].Reviews = append(instructors[i].Reviews, r)
		}
	}
	return instructors, reviews.Err()
}

// GetByID retrieves an Instructor and its reviews.
// PRE: id is non-empty
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Instructor, error) {
	var in domain.Instructor
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, avatar_url, bio, rating FROM instructor WHERE id = ?`, id).
		Scan(&in.ID, &in.Name, &in.AvatarURL, &in.Bio, &in.Rating)
	if err != nil {
		return domain.Instructor{}, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_name, rating, comment FROM instructor_review WHERE instructor_id = ? ORDER BY position`, id)
	if err != nil {
		return domain.Instructor{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.UserName, &r.Rating, &r.Comment); err != nil {
			return domain.Instructor{}, err
		}
		in.Reviews = append(in.Reviews, r)
	}
	return in, rows.Err()
}

// Save inserts or replaces an Instructor and rewrites its reviews.
// PRE: entity has been validated
// POST: Entity and reviews are persisted atomically
func (s *SQLiteStore) Save(ctx context.Context, in domain.Instructor) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO instructor (id, position, name, avatar_url, bio, rating)
			 VALUES (?, (SELECT COALESCE(MAX(position) + 1, 0) FROM instructor), ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   name=excluded.name, avatar_url=excluded.avatar_url,
			   bio=excluded.bio, rating=excluded.rating`,
			in.ID, in.Name, in.AvatarURL, in.Bio, in.Rating); err != nil {
			return err
		}
		return writeReviews(ctx, tx, in)
	})
}

// Delete removes an Instructor and its reviews. Classes keep their reference.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM instructor_review WHERE instructor_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM instructor WHERE id = ?`, id)
		return err
	})
}

// ReplaceAll swaps every instructor in one transaction.
// POST: List returns exactly values, in order
func (s *SQLiteStore) ReplaceAll(ctx context.Context, values []domain.Instructor) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM instructor_review`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM instructor`); err != nil {
			return err
		}
		for i, in := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO instructor (id, position, name, avatar_url, bio, rating) VALUES (?, ?, ?, ?, ?, ?)`,
				in.ID, i, in.Name, in.AvatarURL, in.Bio, in.Rating); err != nil {
				return err
			}
			if err := writeReviews(ctx, tx, in); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeReviews(ctx context.Context, tx *sql.Tx, in domain.Instructor) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM instructor_review WHERE instructor_id = ?`, in.ID); err != nil {
		return err
	}
	for i, r := range in.Reviews {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO instructor_review (instructor_id, position, user_name, rating, comment) VALUES (?, ?, ?, ?, ?)`,
			in.ID, i, r.UserName, r.Rating, r.Comment); err != nil {
			return err
		}
	}
	return nil
}
