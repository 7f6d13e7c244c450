package bankaccount

import (
	"context"
	"database/sql"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/bankaccount"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every bank account ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.BankAccount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, bank_name, identification_type, identification_number, account_type, account_number
		 FROM bank_account ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []domain.BankAccount
	for rows.Next() {
		var b domain.BankAccount
		if err := rows.Scan(&b.ID, &b.BankName, &b.IdentificationType, &b.IdentificationNumber, &b.AccountType, &b.AccountNumber); err != nil {
			return nil, err
		}
		accounts = append(accounts, b)
	}
	return accounts, rows.Err()
}

// Save persists a BankAccount.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, b domain.BankAccount) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bank_account (id, bank_name, identification_type, identification_number, account_type, account_number)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   bank_name=excluded.bank_name, identification_type=excluded.identification_type,
		   identification_number=excluded.identification_number,
		   account_type=excluded.account_type, account_number=excluded.account_number`,
		b.ID, b.BankName, b.IdentificationType, b.IdentificationNumber, b.AccountType, b.AccountNumber)
	return err
}

// Delete removes a BankAccount.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM bank_account WHERE id = ?`, id)
	return err
}

// ReplaceAll swaps every bank account in one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, values []domain.BankAccount) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bank_account`); err != nil {
			return err
		}
		for _, b := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO bank_account (id, bank_name, identification_type, identification_number, account_type, account_number)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				b.ID, b.BankName, b.IdentificationType, b.IdentificationNumber, b.AccountType, b.AccountNumber); err != nil {
				return err
			}
		}
		return nil
	})
}

// NextID returns one more than the highest bank account id.
func (s *SQLiteStore) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM bank_account`).Scan(&id)
	return id, err
}
