package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/domain/admin"
	"spinstudio/internal/domain/bike"
	"spinstudio/internal/domain/payment"
	"spinstudio/internal/domain/pricing"
)

// --- Admin credentials ---

// CredentialStore defines the store interface needed by admin credential orchestrators.
type CredentialStore interface {
	Get(ctx context.Context) (admin.Credentials, error)
	Save(ctx context.Context, value admin.Credentials) error
}

// ExecuteAdminLogin checks the admin password.
// PRE: none
// POST: Returns admin.ErrWrongPassword on mismatch
func ExecuteAdminLogin(ctx context.Context, password string, store CredentialStore) error {
	creds, err := store.Get(ctx)
	if err != nil {
		return fmt.Errorf("load admin credentials: %w", err)
	}
	if err := creds.Check(password); err != nil {
		log.Info().Str("event", "admin_login_failed").Msg("auth_event")
		return err
	}
	log.Info().Str("event", "admin_login_success").Msg("auth_event")
	return nil
}

// ChangeAdminPasswordInput carries input for the change-password orchestrator.
type ChangeAdminPasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ExecuteChangeAdminPassword replaces the admin password.
// PRE: none
// POST: Checks run in order: current password, confirmation, minimum length.
// The stored credential changes only when every check passes.
func ExecuteChangeAdminPassword(ctx context.Context, input ChangeAdminPasswordInput, store CredentialStore) error {
	creds, err := store.Get(ctx)
	if err != nil {
		return fmt.Errorf("load admin credentials: %w", err)
	}
	if err := creds.Change(input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		return err
	}
	if err := store.Save(ctx, creds); err != nil {
		return fmt.Errorf("save admin credentials: %w", err)
	}
	log.Info().Str("event", "admin_password_changed").Msg("auth_event")
	return nil
}

// --- Pricing ---

// PricingStore defines the store interface needed by SavePricing.
type PricingStore interface {
	Save(ctx context.Context, value pricing.Pricing) error
}

// ExecuteSavePricing replaces the pricing record as a whole.
// POST: Returns pricing.ErrNegativePrice when any tier is negative
func ExecuteSavePricing(ctx context.Context, p pricing.Pricing, store PricingStore) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := store.Save(ctx, p); err != nil {
		return fmt.Errorf("save pricing: %w", err)
	}
	log.Info().
		Str("individual", p.Individual.String()).
		Str("group2", p.Group2.String()).
		Str("group3", p.Group3.String()).
		Msg("pricing_saved")
	return nil
}

// --- Bikes ---

// ExecuteSetBikeCount regenerates the floor with n fresh available bikes.
// PRE: none; counts outside 0..bike.MaxCount are rejected before any write
// POST: Bikes are "1".."n", all available; every previous status is discarded
func ExecuteSetBikeCount(ctx context.Context, n int, store BikeStoreForBooking) ([]bike.Bike, error) {
	bikes, err := bike.GenerateLayout(n)
	if err != nil {
		return nil, err
	}
	if err := store.ReplaceAll(ctx, bikes); err != nil {
		return nil, fmt.Errorf("save bikes: %w", err)
	}
	log.Info().Int("count", n).Msg("bike_layout_regenerated")
	return bikes, nil
}

// ExecuteToggleMaintenance flips a bike between available and maintenance.
// POST: Taken and selected bikes are unchanged; returns bike.ErrUnknownBike for unknown ids
func ExecuteToggleMaintenance(ctx context.Context, bikeID string, store BikeStoreForBooking) error {
	bikes, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("load bikes: %w", err)
	}
	next, err := bike.ToggleMaintenance(bikes, bikeID)
	if err != nil {
		return err
	}
	if err := store.ReplaceAll(ctx, next); err != nil {
		return fmt.Errorf("save bikes: %w", err)
	}
	return nil
}

// --- Payments ---

// PaymentStoreForAccept defines the store interface needed by AcceptPayment.
type PaymentStoreForAccept interface {
	GetByID(ctx context.Context, id string) (payment.Record, error)
	Save(ctx context.Context, r payment.Record) error
}

// ExecuteAcceptPayment moves a pending payment to completed.
// PRE: none
// POST: Idempotent; unknown ids and non-pending payments are left unchanged.
// Reports whether the payment changed.
func ExecuteAcceptPayment(ctx context.Context, id string, store PaymentStoreForAccept) (bool, error) {
	rec, err := store.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load payment: %w", err)
	}
	if !rec.Accept() {
		return false, nil
	}
	if err := store.Save(ctx, rec); err != nil {
		return false, fmt.Errorf("save payment: %w", err)
	}
	log.Info().Str("event", "payment_accepted").Str("payment_id", id).Msg("payment_event")
	return true, nil
}
