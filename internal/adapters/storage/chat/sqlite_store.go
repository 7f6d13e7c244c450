package chat

import (
	"context"
	"database/sql"
	"time"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/chat"
)

const timeLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetThread retrieves the support thread with messages oldest first.
// POST: Returns sql.ErrNoRows if no thread has been seeded
func (s *SQLiteStore) GetThread(ctx context.Context) (domain.Thread, error) {
	var th domain.Thread
	var unread int
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, user_name, unread FROM chat_thread ORDER BY rowid LIMIT 1`).
		Scan(&th.UserID, &th.UserName, &unread)
	if err != nil {
		return domain.Thread{}, err
	}
	th.Unread = unread != 0

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sender, text, sent_at, attachment_type, attachment_url, attachment_name
		 FROM chat_message WHERE user_id = ? ORDER BY position`, th.UserID)
	if err != nil {
		return domain.Thread{}, err
	}
	defer rows.Close()
	th.Messages, err = scanMessages(rows)
	return th, err
}

// SaveThread replaces the thread header and all of its messages.
// PRE: value.UserID is non-empty
// POST: GetThread returns value
func (s *SQLiteStore) SaveThread(ctx context.Context, th domain.Thread) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chat_thread (user_id, user_name, unread) VALUES (?, ?, ?)
			 ON CONFLICT(user_id) DO UPDATE SET user_name=excluded.user_name, unread=excluded.unread`,
			th.UserID, th.UserName, boolInt(th.Unread)); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM chat_message WHERE user_id = ?`, th.UserID); err != nil {
			return err
		}
		for i, m := range th.Messages {
			if err := insertMessage(ctx, tx, th.UserID, i, m); err != nil {
				return err
			}
		}
		return nil
	})
}

// AppendMessage adds a message to the end of the thread and clears unread.
// PRE: m has been validated
// POST: Message is persisted after every existing message
func (s *SQLiteStore) AppendMessage(ctx context.Context, userID string, m domain.Message) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM chat_message WHERE user_id = ?`, userID).Scan(&next); err != nil {
			return err
		}
		if err := insertMessage(ctx, tx, userID, next, m); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE chat_thread SET unread = 0 WHERE user_id = ?`, userID)
		return err
	})
}

// SetUnread sets the thread's unread flag.
func (s *SQLiteStore) SetUnread(ctx context.Context, userID string, unread bool) error {
	_, err := s.db.ExecContext(ctx, `UPDATE chat_thread SET unread = ? WHERE user_id = ?`, boolInt(unread), userID)
	return err
}

func insertMessage(ctx context.Context, tx *sql.Tx, userID string, position int, m domain.Message) error {
	var attType, attURL, attName any
	if m.Attachment != nil {
		attType = m.Attachment.Type
		attURL = m.Attachment.URL
		attName = nullStr(m.Attachment.FileName)
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO chat_message (id, user_id, position, sender, text, sent_at, attachment_type, attachment_url, attachment_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, userID, position, m.Sender, m.Text, m.Timestamp.Format(timeLayout), attType, attURL, attName)
	return err
}

func scanMessages(rows *sql.Rows) ([]domain.Message, error) {
	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var sentAt string
		var attType, attURL, attName sql.NullString
		if err := rows.Scan(&m.ID, &m.Sender, &m.Text, &sentAt, &attType, &attURL, &attName); err != nil {
			return nil, err
		}
		m.Timestamp, _ = time.Parse(timeLayout, sentAt)
		if attType.Valid {
			m.Attachment = &domain.Attachment{Type: attType.String, URL: attURL.String, FileName: attName.String}
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
