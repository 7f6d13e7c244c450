package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

// Table names, in creation order.
var Tables = []string{
	"admin_credential",
	"advertisement",
	"app_user",
	"bank_account",
	"bike",
	"chat_message",
	"chat_thread",
	"class",
	"instructor",
	"instructor_review",
	"payment",
	"pricing",
	"reward",
}

const schema = `
CREATE TABLE IF NOT EXISTS app_user (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	level TEXT NOT NULL DEFAULT '',
	classes_completed INTEGER NOT NULL DEFAULT 0,
	avatar_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS instructor (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	avatar_url TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	rating REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS instructor_review (
	instructor_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	user_name TEXT NOT NULL,
	rating INTEGER NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (instructor_id, position)
);

CREATE TABLE IF NOT EXISTS class (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	instructor_id TEXT NOT NULL DEFAULT '',
	time TEXT NOT NULL DEFAULT '',
	duration INTEGER NOT NULL,
	spots_left INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS advertisement (
	id INTEGER PRIMARY KEY,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	media_url TEXT NOT NULL DEFAULT '',
	thumbnail_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS reward (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	required_classes INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bank_account (
	id INTEGER PRIMARY KEY,
	bank_name TEXT NOT NULL,
	identification_type TEXT NOT NULL,
	identification_number TEXT NOT NULL DEFAULT '',
	account_type TEXT NOT NULL,
	account_number TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS payment (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	user_name TEXT NOT NULL,
	class_name TEXT NOT NULL,
	amount TEXT NOT NULL,
	method TEXT NOT NULL,
	status TEXT NOT NULL,
	date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pricing (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	individual TEXT NOT NULL,
	group2 TEXT NOT NULL,
	group3 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bike (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_thread (
	user_id TEXT PRIMARY KEY,
	user_name TEXT NOT NULL,
	unread INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS chat_message (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	sender TEXT NOT NULL,
	text TEXT NOT NULL DEFAULT '',
	sent_at TEXT NOT NULL,
	attachment_type TEXT,
	attachment_url TEXT,
	attachment_name TEXT
);

CREATE INDEX IF NOT EXISTS idx_chat_message_user ON chat_message(user_id, position);

CREATE TABLE IF NOT EXISTS admin_credential (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	password_hash TEXT NOT NULL
);
`

// InitDB creates the sandbox schema.
// References between tables (class -> instructor, review -> instructor) are
// deliberately not foreign keys: admins may delete an instructor that classes
// still point at.
// PRE: db is a valid database connection
// POST: All tables exist
func InitDB(ctx context.Context, db SQLDB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// OpenSandbox opens a private in-memory database named name and creates the schema.
// Every studio instance gets its own sandbox; closing the returned DB discards it.
// PRE: name is unique among open sandboxes
// POST: Returns a single-connection DB with all tables created
func OpenSandbox(ctx context.Context, name string) (*sql.DB, error) {
	dsn := "file:" + url.PathEscape(name) + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox %s: %w", name, err)
	}
	// One connection keeps the in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sandbox %s unreachable: %w", name, err)
	}
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// WithTx runs fn inside a transaction, committing on success.
// PRE: fn must only use tx, never db, while it runs
// POST: Changes made by fn are committed, or rolled back if fn fails
func WithTx(ctx context.Context, db SQLDB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
