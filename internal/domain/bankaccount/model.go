package bankaccount

import "errors"

// Domain errors
var (
	ErrInvalidID         = errors.New("bank account ID must be positive")
	ErrEmptyBankName     = errors.New("bank name cannot be empty")
	ErrInvalidIDType     = errors.New("identification type must be ruc or cédula")
	ErrInvalidAccountTyp = errors.New("account type must be corriente or ahorro")
)

// Identification types
const (
	IDTypeRUC    = "ruc"
	IDTypeCedula = "cédula"
)

// Account types
const (
	AccountChecking = "corriente"
	AccountSavings  = "ahorro"
)

// DefaultBankName is used for accounts created from the admin dashboard.
const DefaultBankName = "Nuevo Banco"

// BankAccount is a destination riders can transfer booking payments to.
type BankAccount struct {
	ID                   int64
	BankName             string
	IdentificationType   string
	IdentificationNumber string
	AccountType          string
	AccountNumber        string
}

// Validate checks if the BankAccount has valid data.
// PRE: BankAccount struct is populated
// POST: Returns nil if valid, error otherwise
func (b *BankAccount) Validate() error {
	if b.ID <= 0 {
		return ErrInvalidID
	}
	if b.BankName == "" {
		return ErrEmptyBankName
	}
	if b.IdentificationType != IDTypeRUC && b.IdentificationType != IDTypeCedula {
		return ErrInvalidIDType
	}
	if b.AccountType != AccountChecking && b.AccountType != AccountSavings {
		return ErrInvalidAccountTyp
	}
	return nil
}

// New returns a checking account placeholder with a RUC identification.
func New(id int64) BankAccount {
	return BankAccount{
		ID:                 id,
		BankName:           DefaultBankName,
		IdentificationType: IDTypeRUC,
		AccountType:        AccountChecking,
	}
}
