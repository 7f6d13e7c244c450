package projections

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"spinstudio/internal/domain/bankaccount"
	"spinstudio/internal/domain/bike"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/pricing"
)

// BikeView is one seat on the floor plan.
type BikeView struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// BookingView is the floor plan for the chosen class.
type BookingView struct {
	Class        ClassCard      `json:"class"`
	Instructor   InstructorCard `json:"instructor"`
	Rows         [][]BikeView   `json:"rows"`
	SelectedIDs  []string       `json:"selectedIds"`
	PartySize    int            `json:"partySize"`
	MaxSelection int            `json:"maxSelection"`
	PerPerson    string         `json:"perPerson"`
	Total        string         `json:"total"`
	CanConfirm   bool           `json:"canConfirm"`
}

// GetBookingDeps holds dependencies for GetBooking.
type GetBookingDeps struct {
	BikeStore    BikeLister
	PricingStore PricingReader
}

// QueryGetBooking lays out the floor and prices the current selection.
// PRE: screen came from a resolved class and instructor
// POST: Rows follow bike.RowPattern; Total = PriceForPartySize(PartySize)
func QueryGetBooking(ctx context.Context, screen navigation.Booking, deps GetBookingDeps) (BookingView, error) {
	bikes, err := deps.BikeStore.List(ctx)
	if err != nil {
		return BookingView{}, fmt.Errorf("list bikes: %w", err)
	}
	prices, err := deps.PricingStore.Get(ctx)
	if err != nil {
		return BookingView{}, fmt.Errorf("load pricing: %w", err)
	}

	ids := bike.SelectedIDs(bikes)
	n := len(ids)
	c, i := screen.Class, screen.Instructor
	return BookingView{
		Class: ClassCard{
			ID: c.ID, Name: c.Name, Time: c.Time, Duration: c.Duration, SpotsLeft: c.SpotsLeft,
			InstructorID: i.ID, InstructorName: i.Name, InstructorAvatar: i.AvatarURL, Bookable: true,
		},
		Instructor:   InstructorCard{ID: i.ID, Name: i.Name, AvatarURL: i.AvatarURL, Rating: i.Rating},
		Rows:         bikeRows(bikes),
		SelectedIDs:  nonNil(ids),
		PartySize:    n,
		MaxSelection: bike.MaxSelection,
		PerPerson:    money(prices.PerPerson(n)),
		Total:        money(prices.PriceForPartySize(n)),
		CanConfirm:   n > 0,
	}, nil
}

func bikeRows(bikes []bike.Bike) [][]BikeView {
	rows := bike.Rows(bikes)
	out := make([][]BikeView, len(rows))
	for r, row := range rows {
		out[r] = make([]BikeView, len(row))
		for c, b := range row {
			out[r][c] = BikeView{ID: b.ID, Status: b.Status}
		}
	}
	return out
}

// BankAccountView is a transfer destination.
type BankAccountView struct {
	ID                   int64  `json:"id"`
	BankName             string `json:"bankName"`
	IdentificationType   string `json:"identificationType"`
	IdentificationNumber string `json:"identificationNumber"`
	AccountType          string `json:"accountType"`
	AccountNumber        string `json:"accountNumber"`
}

func bankAccountViews(accounts []bankaccount.BankAccount) []BankAccountView {
	out := make([]BankAccountView, 0, len(accounts))
	for _, b := range accounts {
		out = append(out, BankAccountView{
			ID:                   b.ID,
			BankName:             b.BankName,
			IdentificationType:   b.IdentificationType,
			IdentificationNumber: b.IdentificationNumber,
			AccountType:          b.AccountType,
			AccountNumber:        b.AccountNumber,
		})
	}
	return out
}

// PaymentView summarises the booking being paid for.
type PaymentView struct {
	ClassName      string            `json:"className"`
	ClassTime      string            `json:"classTime"`
	InstructorName string            `json:"instructorName"`
	BikeIDs        []string          `json:"bikeIds"`
	PartySize      int               `json:"partySize"`
	PerPerson      string            `json:"perPerson"`
	Total          string            `json:"total"`
	BankAccounts   []BankAccountView `json:"bankAccounts"`
}

// GetPaymentDeps holds dependencies for GetPayment.
type GetPaymentDeps struct {
	PricingStore     PricingReader
	BankAccountStore BankAccountLister
}

// QueryGetPayment prices the captured selection and lists transfer accounts.
// PRE: screen came from a confirmed booking
// POST: Total = PriceForPartySize(PartySize) at the current prices
func QueryGetPayment(ctx context.Context, screen navigation.Payment, deps GetPaymentDeps) (PaymentView, error) {
	prices, err := deps.PricingStore.Get(ctx)
	if err != nil {
		return PaymentView{}, fmt.Errorf("load pricing: %w", err)
	}
	accounts, err := deps.BankAccountStore.List(ctx)
	if err != nil {
		return PaymentView{}, fmt.Errorf("list bank accounts: %w", err)
	}
	return PaymentView{
		ClassName:      screen.Booking.Class.Name,
		ClassTime:      screen.Booking.Class.Time,
		InstructorName: screen.Booking.Instructor.Name,
		BikeIDs:        nonNil(screen.BikeIDs),
		PartySize:      screen.PartySize,
		PerPerson:      money(prices.PerPerson(screen.PartySize)),
		Total:          money(prices.PriceForPartySize(screen.PartySize)),
		BankAccounts:   bankAccountViews(accounts),
	}, nil
}

// PricingView is the editable pricing record.
type PricingView struct {
	Individual string `json:"individual"`
	Group2     string `json:"group2"`
	Group3     string `json:"group3"`
}

func pricingView(p pricing.Pricing) PricingView {
	return PricingView{Individual: money(p.Individual), Group2: money(p.Group2), Group3: money(p.Group3)}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
