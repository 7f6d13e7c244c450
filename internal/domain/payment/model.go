package payment

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrEmptyID        = errors.New("payment ID is required")
	ErrInvalidMethod  = errors.New("payment method must be card or transfer")
	ErrInvalidStatus  = errors.New("payment status must be completed, pending or rejected")
	ErrNegativeAmount = errors.New("payment amount cannot be negative")
	ErrInvalidDate    = errors.New("payment date must be YYYY-MM-DD")
)

// Methods
const (
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

// Statuses
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusRejected  = "rejected"
)

// DateLayout is the calendar-date format used for Record.Date.
const DateLayout = "2006-01-02"

// Record is a booking payment as seen by the admin dashboard.
type Record struct {
	ID        string
	UserName  string
	ClassName string
	Amount    decimal.Decimal
	Method    string
	Status    string
	Date      string // local calendar date
}

// Validate checks if the Record has valid data.
// PRE: Record struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Record) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if r.Method != MethodCard && r.Method != MethodTransfer {
		return ErrInvalidMethod
	}
	switch r.Status {
	case StatusCompleted, StatusPending, StatusRejected:
	default:
		return ErrInvalidStatus
	}
	if r.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if len(r.Date) != len(DateLayout) {
		return ErrInvalidDate
	}
	return nil
}

// Accept moves a pending payment to completed.
// PRE: none
// POST: Status is completed if it was pending; otherwise unchanged
// INVARIANT: completed and rejected are terminal
func (r *Record) Accept() bool {
	if r.Status != StatusPending {
		return false
	}
	r.Status = StatusCompleted
	return true
}

// InitialStatus returns the status a freshly finalized payment starts in.
// Card payments settle immediately; transfers wait for proof.
func InitialStatus(method string) string {
	if method == MethodTransfer {
		return StatusPending
	}
	return StatusCompleted
}
