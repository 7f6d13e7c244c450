package payment_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"spinstudio/internal/domain/payment"
)

func validRecord() payment.Record {
	return payment.Record{
		ID:        "pay2",
		UserName:  "Ana P.",
		ClassName: "Morning Ride",
		Amount:    decimal.NewFromInt(26),
		Method:    payment.MethodTransfer,
		Status:    payment.StatusPending,
		Date:      "2024-07-28",
	}
}

// TestRecord_Validate tests validation of Record.
func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *payment.Record)
		want   error
	}{
		{"valid", func(r *payment.Record) {}, nil},
		{"empty id", func(r *payment.Record) { r.ID = "" }, payment.ErrEmptyID},
		{"cash", func(r *payment.Record) { r.Method = "cash" }, payment.ErrInvalidMethod},
		{"unknown status", func(r *payment.Record) { r.Status = "refunded" }, payment.ErrInvalidStatus},
		{"negative", func(r *payment.Record) { r.Amount = decimal.NewFromInt(-5) }, payment.ErrNegativeAmount},
		{"bad date", func(r *payment.Record) { r.Date = "28/07/2024" }, payment.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)
			if err := r.Validate(); err != tt.want {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestRecord_Accept verifies pending -> completed and idempotence.
func TestRecord_Accept(t *testing.T) {
	r := validRecord()
	if !r.Accept() {
		t.Fatal("accepting a pending payment should report a change")
	}
	if r.Status != payment.StatusCompleted {
		t.Fatalf("Status = %s, want completed", r.Status)
	}
	if r.Accept() {
		t.Error("accepting twice should be a no-op")
	}
	if r.Status != payment.StatusCompleted {
		t.Errorf("Status = %s after second accept, want completed", r.Status)
	}

	rejected := validRecord()
	rejected.Status = payment.StatusRejected
	if rejected.Accept() || rejected.Status != payment.StatusRejected {
		t.Error("rejected payments must stay rejected")
	}
}

// TestInitialStatus maps methods to their starting status.
func TestInitialStatus(t *testing.T) {
	if got := payment.InitialStatus(payment.MethodCard); got != payment.StatusCompleted {
		t.Errorf("card = %s, want completed", got)
	}
	if got := payment.InitialStatus(payment.MethodTransfer); got != payment.StatusPending {
		t.Errorf("transfer = %s, want pending", got)
	}
}
