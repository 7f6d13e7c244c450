package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"spinstudio/internal/adapters/storage"
	domain "spinstudio/internal/domain/payment"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.OpenSandbox(context.Background(), "payment-"+t.Name())
	if err != nil {
		t.Fatalf("OpenSandbox: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db)
}

// TestSQLiteStore_AmountPrecision verifies decimals survive the round trip.
func TestSQLiteStore_AmountPrecision(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	r := domain.Record{
		ID: "pay-1", UserName: "Alex Morgan", ClassName: "Sunset Flow",
		Amount: decimal.RequireFromString("30.30"), Method: domain.MethodCard,
		Status: domain.StatusCompleted, Date: "2024-07-28",
	}
	if err := s.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.GetByID(ctx, "pay-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Amount.Equal(r.Amount) {
		t.Errorf("Amount = %s, want %s", got.Amount, r.Amount)
	}
}

// TestSQLiteStore_OrderAndUpdate verifies updates keep the record's place in history.
func TestSQLiteStore_OrderAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	first := domain.Record{ID: "pay1", UserName: "Carlos G.", ClassName: "Morning Ride", Amount: decimal.NewFromInt(15), Method: domain.MethodCard, Status: domain.StatusCompleted, Date: "2024-07-28"}
	second := domain.Record{ID: "pay2", UserName: "Ana P.", ClassName: "Morning Ride", Amount: decimal.NewFromInt(26), Method: domain.MethodTransfer, Status: domain.StatusPending, Date: "2024-07-28"}
	if err := s.ReplaceAll(ctx, []domain.Record{first, second}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	second.Accept()
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[1].ID != "pay2" || list[1].Status != domain.StatusCompleted {
		t.Errorf("List = %+v", list)
	}
}
