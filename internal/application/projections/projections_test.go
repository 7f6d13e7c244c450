package projections

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spinstudio/internal/application/listutil"
	"spinstudio/internal/domain/advert"
	"spinstudio/internal/domain/bankaccount"
	"spinstudio/internal/domain/bike"
	"spinstudio/internal/domain/class"
	"spinstudio/internal/domain/instructor"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/payment"
	"spinstudio/internal/domain/pricing"
	"spinstudio/internal/domain/reward"
	"spinstudio/internal/domain/user"
)

// listStore is a read-only store over a fixed slice.
type listStore[T any] struct{ items []T }

func (s listStore[T]) List(_ context.Context) ([]T, error) { return s.items, nil }

type pricingStub struct{ p pricing.Pricing }

func (s pricingStub) Get(_ context.Context) (pricing.Pricing, error) { return s.p, nil }

var (
	now    = time.Date(2024, 7, 28, 18, 30, 0, 0, time.Local)
	prices = pricing.Pricing{Individual: decimal.NewFromInt(15), Group2: decimal.NewFromInt(13), Group3: decimal.NewFromInt(11)}
	riders = []user.User{
		{ID: "user_alex_morgan", Name: "Alex Morgan", Email: "alex.morgan@example.com", ClassesCompleted: 23},
		{ID: "user_carlos_g", Name: "Carlos G.", Email: "carlos.g@example.com", ClassesCompleted: 8},
		{ID: "user_sofia_l", Name: "Sofía L.", Email: "sofia.l@example.com", ClassesCompleted: 52},
	}
	rewards = []reward.Reward{
		{ID: 3, Title: "Leyenda del Ciclismo", Description: "Completa 50 clases", RequiredClasses: 50},
		{ID: 1, Title: "Club de los 10", Description: "Completa 10 clases", RequiredClasses: 10},
		{ID: 2, Title: "Guerrero del Pedal", Description: "Completa 25 clases", RequiredClasses: 25},
	}
)

// TestTodaysRevenue verifies only completed payments dated today count.
func TestTodaysRevenue(t *testing.T) {
	payments := []payment.Record{
		{ID: "a", Amount: decimal.NewFromInt(15), Status: payment.StatusCompleted, Date: "2024-07-28"},
		{ID: "b", Amount: decimal.NewFromInt(26), Status: payment.StatusPending, Date: "2024-07-28"},
		{ID: "c", Amount: decimal.RequireFromString("33.5"), Status: payment.StatusCompleted, Date: "2024-07-28"},
		{ID: "d", Amount: decimal.NewFromInt(99), Status: payment.StatusCompleted, Date: "2024-07-27"},
	}
	if got := TodaysRevenue(payments, now); !got.Equal(decimal.RequireFromString("48.5")) {
		t.Errorf("TodaysRevenue = %s, want 48.5", got)
	}
	if got := PendingCount(payments); got != 1 {
		t.Errorf("PendingCount = %d, want 1", got)
	}
	if got := TodaysRevenue(nil, now); !got.IsZero() {
		t.Errorf("TodaysRevenue(nil) = %s, want 0", got)
	}
}

// TestQueryGetAdminPanel verifies each drill-down lists the right records.
func TestQueryGetAdminPanel(t *testing.T) {
	bikes, _ := bike.GenerateLayout(5)
	bikes = bike.MarkTaken(bikes, []string{"2", "4"})
	deps := GetAdminPanelDeps{
		PaymentStore: listStore[payment.Record]{items: []payment.Record{
			{ID: "pay1", Amount: decimal.NewFromInt(15), Method: payment.MethodCard, Status: payment.StatusCompleted, Date: "2024-07-28"},
			{ID: "pay2", Amount: decimal.NewFromInt(26), Method: payment.MethodTransfer, Status: payment.StatusPending, Date: "2024-07-28"},
		}},
		BikeStore: listStore[bike.Bike]{items: bikes},
		Now:       func() time.Time { return now },
	}

	tests := []struct {
		panel        navigation.Panel
		wantPayments []string
		wantBikes    []string
	}{
		{navigation.PanelDashboard, nil, nil},
		{navigation.PanelTodaysIncome, []string{"pay1"}, nil},
		{navigation.PanelPendingReservations, []string{"pay2"}, nil},
		{navigation.PanelOccupiedBikes, nil, []string{"2", "4"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.panel), func(t *testing.T) {
			v, err := QueryGetAdminPanel(context.Background(), tt.panel, deps)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Stats.TodaysRevenue != "15.00" || v.Stats.PendingCount != 1 || v.Stats.BikesInUse != 2 {
				t.Errorf("stats = %+v", v.Stats)
			}
			if len(v.Payments) != len(tt.wantPayments) {
				t.Fatalf("payments = %+v, want %v", v.Payments, tt.wantPayments)
			}
			for i, id := range tt.wantPayments {
				if v.Payments[i].ID != id {
					t.Errorf("payment[%d] = %s, want %s", i, v.Payments[i].ID, id)
				}
			}
			if len(v.Bikes) != len(tt.wantBikes) {
				t.Fatalf("bikes = %+v, want %v", v.Bikes, tt.wantBikes)
			}
		})
	}
}

// TestQueryGetBooking verifies rows and pricing of the current selection.
func TestQueryGetBooking(t *testing.T) {
	bikes, _ := bike.GenerateLayout(20)
	bikes, _ = bike.Toggle(bikes, "3")
	bikes, _ = bike.Toggle(bikes, "7")

	v, err := QueryGetBooking(context.Background(), navigation.Booking{
		Class:      class.Class{ID: 1, Name: "Morning Ride", InstructorID: "isabella_r", Duration: 45},
		Instructor: instructor.Instructor{ID: "isabella_r", Name: "Isabella Rodriguez"},
	}, GetBookingDeps{BikeStore: listStore[bike.Bike]{items: bikes}, PricingStore: pricingStub{p: prices}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sizes := make([]int, len(v.Rows))
	for i, r := range v.Rows {
		sizes[i] = len(r)
	}
	want := []int{4, 3, 4, 3, 4, 2}
	if len(sizes) != len(want) {
		t.Fatalf("row sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("row sizes = %v, want %v", sizes, want)
			break
		}
	}
	if v.PartySize != 2 || v.PerPerson != "13.00" || v.Total != "26.00" || !v.CanConfirm {
		t.Errorf("selection = %d / %s / %s / %v", v.PartySize, v.PerPerson, v.Total, v.CanConfirm)
	}
}

// TestQueryGetPayment verifies totals and the transfer accounts.
func TestQueryGetPayment(t *testing.T) {
	v, err := QueryGetPayment(context.Background(), navigation.Payment{
		Booking:   navigation.Booking{Class: class.Class{Name: "Sunset Flow", Time: "07:30 PM"}},
		BikeIDs:   []string{"1", "2", "3"},
		PartySize: 3,
	}, GetPaymentDeps{
		PricingStore: pricingStub{p: prices},
		BankAccountStore: listStore[bankaccount.BankAccount]{items: []bankaccount.BankAccount{
			{ID: 1, BankName: "Banco Ficticio", IdentificationType: bankaccount.IDTypeRUC, AccountType: bankaccount.AccountChecking},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Total != "33.00" || v.PerPerson != "11.00" {
		t.Errorf("total/per person = %s/%s, want 33.00/11.00", v.Total, v.PerPerson)
	}
	if len(v.BankAccounts) != 1 || v.BankAccounts[0].BankName != "Banco Ficticio" {
		t.Errorf("bank accounts = %+v", v.BankAccounts)
	}
}

// TestQueryGetProfile verifies the next reward is the lowest locked threshold.
func TestQueryGetProfile(t *testing.T) {
	store := listStore[reward.Reward]{items: rewards}

	v, err := QueryGetProfile(context.Background(), riders[0], store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.NextReward == nil {
		t.Fatal("expected a next reward")
	}
	if v.NextReward.Reward.Title != "Guerrero del Pedal" || v.NextReward.Progress != 92 || v.NextReward.Remaining != 2 {
		t.Errorf("next = %+v", *v.NextReward)
	}
	unlocked := 0
	for _, r := range v.Rewards {
		if r.Unlocked {
			unlocked++
		}
	}
	if unlocked != 1 {
		t.Errorf("unlocked = %d, want 1", unlocked)
	}

	v, _ = QueryGetProfile(context.Background(), riders[2], store)
	if v.NextReward != nil {
		t.Errorf("next = %+v, want nil with every reward unlocked", *v.NextReward)
	}
}

// TestQuerySearchUsers verifies case-insensitive search, sort and paging.
func TestQuerySearchUsers(t *testing.T) {
	store := listStore[user.User]{items: riders}
	tests := []struct {
		name    string
		params  listutil.ListParams
		wantIDs []string
	}{
		{"empty query", listutil.ListParams{Page: 1, PerPage: 20}, []string{"user_alex_morgan", "user_carlos_g", "user_sofia_l"}},
		{"upper case name", listutil.ListParams{Search: "ALEX", Page: 1, PerPage: 20}, []string{"user_alex_morgan"}},
		{"email fragment", listutil.ListParams{Search: "carlos.g@", Page: 1, PerPage: 20}, []string{"user_carlos_g"}},
		{"accented", listutil.ListParams{Search: "SOFÍA", Page: 1, PerPage: 20}, []string{"user_sofia_l"}},
		{"sorted by classes desc", listutil.ListParams{Sort: "classes", Desc: true, Page: 1, PerPage: 20}, []string{"user_sofia_l", "user_alex_morgan", "user_carlos_g"}},
		{"second page", listutil.ListParams{Page: 2, PerPage: 2}, []string{"user_sofia_l"}},
		{"no match", listutil.ListParams{Search: "zzz", Page: 1, PerPage: 20}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := QuerySearchUsers(context.Background(), tt.params, store)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(page.Users) != len(tt.wantIDs) {
				t.Fatalf("users = %+v, want %v", page.Users, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if page.Users[i].ID != id {
					t.Errorf("users[%d] = %s, want %s", i, page.Users[i].ID, id)
				}
			}
		})
	}
}

// TestQueryGetHome verifies dangling instructors are not bookable.
func TestQueryGetHome(t *testing.T) {
	v, err := QueryGetHome(context.Background(), "Alex Morgan", GetHomeDeps{
		ClassStore: listStore[class.Class]{items: []class.Class{
			{ID: 1, Name: "Morning Ride", InstructorID: "isabella_r"},
			{ID: 2, Name: "Endurance Pro", InstructorID: "javier_m"},
		}},
		InstructorStore: listStore[instructor.Instructor]{items: []instructor.Instructor{{ID: "isabella_r", Name: "Isabella Rodriguez"}}},
		AdvertStore:     listStore[advert.Advertisement]{items: []advert.Advertisement{{ID: 1, Type: advert.TypeImage, Title: "Promo"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Classes[0].Bookable || v.Classes[0].InstructorName != "Isabella Rodriguez" {
		t.Errorf("class 1 = %+v", v.Classes[0])
	}
	if v.Classes[1].Bookable {
		t.Errorf("class 2 with a dangling instructor is bookable")
	}
	if len(v.Adverts) != 1 {
		t.Errorf("adverts = %d, want 1", len(v.Adverts))
	}
}

// TestRenderMarkdown verifies formatting is rendered and raw HTML is not.
func TestRenderMarkdown(t *testing.T) {
	got := string(RenderMarkdown("**Energía** pura <script>alert(1)</script>"))
	if !strings.Contains(got, "<strong>Energía</strong>") {
		t.Errorf("missing bold: %s", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %s", got)
	}
}

// TestQueryGetInstructor verifies reviews are listed newest first.
func TestQueryGetInstructor(t *testing.T) {
	v := QueryGetInstructor(navigation.InstructorProfile{Instructor: instructor.Instructor{
		ID: "javier_m", Name: "Javier Moreno",
		Reviews: []instructor.Review{{UserName: "Sofia L.", Rating: 4}, {UserName: "Alex Morgan", Rating: 5}},
	}})
	if len(v.Reviews) != 2 || v.Reviews[0].UserName != "Alex Morgan" {
		t.Errorf("reviews = %+v", v.Reviews)
	}
}
