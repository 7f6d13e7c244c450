package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/domain/bike"
	"spinstudio/internal/domain/class"
	"spinstudio/internal/domain/instructor"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/payment"
	"spinstudio/internal/domain/pricing"
)

// Booking errors
var (
	ErrClassNotFound      = errors.New("class not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrEmptySelection     = errors.New("no bikes selected")
	ErrInvalidMethod      = errors.New("payment method must be card or transfer")
)

// Final screen texts
const (
	FinalTitle           = "¡Reserva Exitosa!"
	FinalMessageCard     = "Tu clase ha sido confirmada. ¡Prepárate para pedalear!"
	FinalMessageTransfer = "Tu reserva está pendiente. Por favor, envía el comprobante por el chat para confirmar."
)

// ClassLookup defines the class reads needed by the booking flow.
type ClassLookup interface {
	GetByID(ctx context.Context, id int64) (class.Class, error)
}

// InstructorLookup defines the instructor reads needed by the booking flow.
type InstructorLookup interface {
	GetByID(ctx context.Context, id string) (instructor.Instructor, error)
}

// BikeStoreForBooking defines the bike layout access needed by the booking flow.
type BikeStoreForBooking interface {
	List(ctx context.Context) ([]bike.Bike, error)
	ReplaceAll(ctx context.Context, values []bike.Bike) error
}

// --- Select Class ---

// SelectClassDeps holds dependencies for SelectClass.
type SelectClassDeps struct {
	ClassStore      ClassLookup
	InstructorStore InstructorLookup
}

// ExecuteSelectClass resolves a class and its instructor into a booking screen.
// PRE: none
// POST: Returns ErrClassNotFound or ErrInstructorNotFound when either side is missing
// INVARIANT: A Booking screen always carries a resolved instructor
func ExecuteSelectClass(ctx context.Context, classID int64, deps SelectClassDeps) (navigation.Booking, error) {
	c, err := deps.ClassStore.GetByID(ctx, classID)
	if errors.Is(err, sql.ErrNoRows) {
		return navigation.Booking{}, ErrClassNotFound
	}
	if err != nil {
		return navigation.Booking{}, fmt.Errorf("load class %d: %w", classID, err)
	}

	inst, err := deps.InstructorStore.GetByID(ctx, c.InstructorID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().Int64("class_id", c.ID).Str("instructor_id", c.InstructorID).Msg("dangling_instructor")
		return navigation.Booking{}, ErrInstructorNotFound
	}
	if err != nil {
		return navigation.Booking{}, fmt.Errorf("load instructor %q: %w", c.InstructorID, err)
	}

	return navigation.Booking{Class: c, Instructor: inst}, nil
}

// ExecuteSelectInstructor resolves an instructor profile screen.
// POST: Returns ErrInstructorNotFound for unknown ids
func ExecuteSelectInstructor(ctx context.Context, instructorID string, store InstructorLookup) (navigation.InstructorProfile, error) {
	inst, err := store.GetByID(ctx, instructorID)
	if errors.Is(err, sql.ErrNoRows) {
		return navigation.InstructorProfile{}, ErrInstructorNotFound
	}
	if err != nil {
		return navigation.InstructorProfile{}, fmt.Errorf("load instructor %q: %w", instructorID, err)
	}
	return navigation.InstructorProfile{Instructor: inst}, nil
}

// --- Toggle Bike ---

// ToggleBikeResult reports the selection after a toggle.
type ToggleBikeResult struct {
	Changed   bool
	BikeIDs   []string
	PartySize int
}

// ExecuteToggleBike adds or removes a bike from the rider's selection.
// PRE: none
// POST: Unknown, taken and maintenance bikes are ignored; at most bike.MaxSelection are selected
func ExecuteToggleBike(ctx context.Context, bikeID string, store BikeStoreForBooking) (ToggleBikeResult, error) {
	bikes, err := store.List(ctx)
	if err != nil {
		return ToggleBikeResult{}, fmt.Errorf("load bikes: %w", err)
	}

	next, changed := bike.Toggle(bikes, bikeID)
	if changed {
		if err := store.ReplaceAll(ctx, next); err != nil {
			return ToggleBikeResult{}, fmt.Errorf("save bikes: %w", err)
		}
	}

	ids := bike.SelectedIDs(next)
	return ToggleBikeResult{Changed: changed, BikeIDs: ids, PartySize: len(ids)}, nil
}

// ExecuteClearSelection returns every selected bike to available.
// POST: No bike is selected; taken and maintenance bikes are unchanged
func ExecuteClearSelection(ctx context.Context, store BikeStoreForBooking) error {
	bikes, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("load bikes: %w", err)
	}
	if len(bike.SelectedIDs(bikes)) == 0 {
		return nil
	}
	return store.ReplaceAll(ctx, bike.ClearSelection(bikes))
}

// --- Confirm Booking ---

// ExecuteConfirmBooking captures the current selection for the payment screen.
// PRE: b is the booking screen the rider is on
// POST: Returns ErrEmptySelection when no bike is selected
func ExecuteConfirmBooking(ctx context.Context, b navigation.Booking, store BikeStoreForBooking) (navigation.Payment, error) {
	bikes, err := store.List(ctx)
	if err != nil {
		return navigation.Payment{}, fmt.Errorf("load bikes: %w", err)
	}
	ids := bike.SelectedIDs(bikes)
	if len(ids) == 0 {
		return navigation.Payment{}, ErrEmptySelection
	}
	return navigation.Payment{Booking: b, BikeIDs: ids, PartySize: len(ids)}, nil
}

// --- Finalize Payment ---

// PricingReader defines the pricing read needed to charge a booking.
type PricingReader interface {
	Get(ctx context.Context) (pricing.Pricing, error)
}

// PaymentStoreForFinalize defines the payment writes needed by FinalizePayment.
type PaymentStoreForFinalize interface {
	Save(ctx context.Context, r payment.Record) error
}

// FinalizePaymentInput carries input for the finalize orchestrator.
type FinalizePaymentInput struct {
	Payment  navigation.Payment
	Method   string
	UserName string
}

// FinalizePaymentDeps holds dependencies for FinalizePayment.
type FinalizePaymentDeps struct {
	BikeStore    BikeStoreForBooking
	PricingStore PricingReader
	PaymentStore PaymentStoreForFinalize
	GenerateID   func() string
	Now          func() time.Time
}

// FinalizePaymentResult carries the final screen and the recorded payment.
type FinalizePaymentResult struct {
	Final  navigation.Final
	Record payment.Record
}

// ExecuteFinalizePayment settles a booking.
// PRE: input.Payment came from ExecuteConfirmBooking
// POST: Exactly the booked bikes become taken; a payment record is stored
// (card completed, transfer pending); the final screen carries the method's message
func ExecuteFinalizePayment(ctx context.Context, input FinalizePaymentInput, deps FinalizePaymentDeps) (FinalizePaymentResult, error) {
	if input.Method != payment.MethodCard && input.Method != payment.MethodTransfer {
		return FinalizePaymentResult{}, ErrInvalidMethod
	}

	prices, err := deps.PricingStore.Get(ctx)
	if err != nil {
		return FinalizePaymentResult{}, fmt.Errorf("load pricing: %w", err)
	}

	bikes, err := deps.BikeStore.List(ctx)
	if err != nil {
		return FinalizePaymentResult{}, fmt.Errorf("load bikes: %w", err)
	}
	if err := deps.BikeStore.ReplaceAll(ctx, bike.MarkTaken(bikes, input.Payment.BikeIDs)); err != nil {
		return FinalizePaymentResult{}, fmt.Errorf("save bikes: %w", err)
	}

	rec := payment.Record{
		ID:        deps.GenerateID(),
		UserName:  input.UserName,
		ClassName: input.Payment.Booking.Class.Name,
		Amount:    prices.PriceForPartySize(input.Payment.PartySize),
		Method:    input.Method,
		Status:    payment.InitialStatus(input.Method),
		Date:      deps.Now().Format(payment.DateLayout),
	}
	if err := rec.Validate(); err != nil {
		return FinalizePaymentResult{}, err
	}
	if err := deps.PaymentStore.Save(ctx, rec); err != nil {
		return FinalizePaymentResult{}, fmt.Errorf("save payment: %w", err)
	}

	msg := FinalMessageCard
	if input.Method == payment.MethodTransfer {
		msg = FinalMessageTransfer
	}

	log.Info().
		Str("event", "booking_finalized").
		Str("payment_id", rec.ID).
		Str("method", rec.Method).
		Strs("bikes", input.Payment.BikeIDs).
		Str("amount", rec.Amount.StringFixed(2)).
		Msg("booking_event")

	return FinalizePaymentResult{
		Final:  navigation.Final{Title: FinalTitle, Message: msg},
		Record: rec,
	}, nil
}

// --- Reset Booking ---

// ExecuteResetBooking prepares the floor for the next booking after the final screen.
// POST: every bike not under maintenance is available
func ExecuteResetBooking(ctx context.Context, store BikeStoreForBooking) error {
	bikes, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("load bikes: %w", err)
	}
	return store.ReplaceAll(ctx, bike.ResetForNewBooking(bikes))
}
