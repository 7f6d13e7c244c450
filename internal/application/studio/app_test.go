package studio_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"spinstudio/internal/application/listutil"
	"spinstudio/internal/application/orchestrators"
	"spinstudio/internal/application/studio"
	"spinstudio/internal/domain/admin"
	"spinstudio/internal/domain/bike"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/payment"
)

func init() {
	admin.HashCost = bcrypt.MinCost
}

var fixedTime = time.Date(2024, 7, 28, 12, 0, 0, 0, time.Local)

func newApp(t *testing.T) (*studio.App, *clockwork.FakeClock) {
	t.Helper()
	fake := clockwork.NewFakeClockAt(fixedTime)
	n := 0
	app, err := studio.New(context.Background(), t.Name(), studio.Config{
		Clock: fake,
		GenerateID: func() string {
			n++
			return fmt.Sprintf("id-%03d", n)
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app, fake
}

func dispatch(t *testing.T, app *studio.App, intents ...studio.Intent) {
	t.Helper()
	for _, in := range intents {
		if err := app.Dispatch(context.Background(), in); err != nil {
			t.Fatalf("Dispatch(%s): %v", in.IntentName(), err)
		}
	}
}

func view(t *testing.T, app *studio.App) studio.View {
	t.Helper()
	v, err := app.View(context.Background(), listutil.ListParams{Page: 1, PerPage: listutil.DefaultPerPage})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	return v
}

func wantScreen(t *testing.T, app *studio.App, want navigation.Name) {
	t.Helper()
	if got := app.Screen().Name(); got != want {
		t.Fatalf("screen = %s, want %s", got, want)
	}
}

// advanceTo moves virtual time forward and waits for the timer it fires
// to land the app on want. Timer callbacks run on the clock's goroutine.
func advanceTo(t *testing.T, app *studio.App, fake *clockwork.FakeClock, d time.Duration, want navigation.Name) {
	t.Helper()
	fake.Advance(d)
	deadline := time.Now().Add(2 * time.Second)
	for app.Screen().Name() != want {
		if time.Now().After(deadline) {
			t.Fatalf("screen = %s after %s, want %s", app.Screen().Name(), d, want)
		}
		time.Sleep(time.Millisecond)
	}
}

// wantTimers checks how many timers are armed on the fake clock.
func wantTimers(t *testing.T, fake *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := fake.BlockUntilContext(ctx, n); err != nil {
		t.Errorf("armed timers != %d: %v", n, err)
	}
}

// loggedIn skips the splash and signs in.
func loggedIn(t *testing.T) (*studio.App, *clockwork.FakeClock) {
	t.Helper()
	app, fake := newApp(t)
	advanceTo(t, app, fake, navigation.DefaultSplashDelay, navigation.NameLogin)
	dispatch(t, app, studio.Login{Email: "alex.morgan@example.com", Password: "pedal"})
	wantScreen(t, app, navigation.NameHome)
	return app, fake
}

func toDashboard(t *testing.T, app *studio.App) {
	t.Helper()
	dispatch(t, app,
		studio.SelectTab{Tab: navigation.TabProfile},
		studio.OpenAdmin{},
		studio.AdminLogin{Password: admin.DefaultPassword},
	)
	wantScreen(t, app, navigation.NameAdminDashboard)
}

// TestApp_SplashToLogin verifies the splash hands over to login exactly once.
func TestApp_SplashToLogin(t *testing.T) {
	app, fake := newApp(t)
	wantScreen(t, app, navigation.NameSplash)

	fake.Advance(navigation.DefaultSplashDelay - time.Millisecond)
	wantScreen(t, app, navigation.NameSplash)

	advanceTo(t, app, fake, time.Millisecond, navigation.NameLogin)
	wantTimers(t, fake, 0)
}

// TestApp_BookingScenario walks a two-bike card booking on a five-bike floor.
func TestApp_BookingScenario(t *testing.T) {
	app, fake := loggedIn(t)
	toDashboard(t, app)
	dispatch(t, app,
		studio.SetBikeCount{Count: 5},
		studio.Back{},
		studio.SelectTab{Tab: navigation.TabHome},
		studio.SelectClass{ClassID: 1},
		studio.ToggleBike{BikeID: "1"},
		studio.ToggleBike{BikeID: "2"},
	)

	v := view(t, app)
	if v.Booking == nil {
		t.Fatalf("booking view missing on %s", v.Screen)
	}
	if v.Booking.PartySize != 2 || v.Booking.Total != "26.00" {
		t.Errorf("party %d total %s, want 2 and 26.00", v.Booking.PartySize, v.Booking.Total)
	}

	dispatch(t, app, studio.ConfirmBooking{})
	v = view(t, app)
	if v.Payment == nil || v.Payment.Total != "26.00" {
		t.Fatalf("payment view = %+v, want total 26.00", v.Payment)
	}

	dispatch(t, app, studio.FinalizePayment{Method: payment.MethodCard})
	v = view(t, app)
	if v.Final == nil || v.Final.Title != orchestrators.FinalTitle {
		t.Fatalf("final view = %+v", v.Final)
	}
	if v.Final.Message != orchestrators.FinalMessageCard {
		t.Errorf("final message = %q", v.Final.Message)
	}
	if v.Timer != navigation.TimerFinal {
		t.Errorf("timer = %q, want %q", v.Timer, navigation.TimerFinal)
	}

	advanceTo(t, app, fake, navigation.DefaultFinalDelay, navigation.NameHome)
	if v := view(t, app); v.Tab != navigation.TabHome {
		t.Errorf("tab = %s, want home", v.Tab)
	}

	toDashboard(t, app)
	stats := view(t, app).Admin.Panel.Stats
	if stats.TodaysRevenue != "41.00" {
		t.Errorf("TodaysRevenue = %s, want 41.00 (seeded 15 + 26)", stats.TodaysRevenue)
	}
	if stats.BikesInUse != 0 {
		t.Errorf("BikesInUse = %d, want 0 after the floor reset", stats.BikesInUse)
	}
	if stats.BikeCount != 5 {
		t.Errorf("BikeCount = %d, want 5", stats.BikeCount)
	}
}

// TestApp_BackFromPaymentKeepsSelection verifies payment -> booking keeps the picked bikes.
func TestApp_BackFromPaymentKeepsSelection(t *testing.T) {
	app, _ := loggedIn(t)
	dispatch(t, app,
		studio.SelectClass{ClassID: 2},
		studio.ToggleBike{BikeID: "3"},
		studio.ConfirmBooking{},
		studio.Back{},
	)
	wantScreen(t, app, navigation.NameBooking)
	if got := view(t, app).Booking.SelectedIDs; len(got) != 1 || got[0] != "3" {
		t.Errorf("SelectedIDs = %v, want [3]", got)
	}

	dispatch(t, app, studio.Back{}, studio.SelectClass{ClassID: 3})
	if got := view(t, app).Booking.SelectedIDs; len(got) != 0 {
		t.Errorf("a new class kept selection %v", got)
	}
}

// TestApp_ConfirmWithoutBikes verifies an empty selection stays on the floor plan.
func TestApp_ConfirmWithoutBikes(t *testing.T) {
	app, _ := loggedIn(t)
	dispatch(t, app, studio.SelectClass{ClassID: 1}, studio.ConfirmBooking{})
	wantScreen(t, app, navigation.NameBooking)
}

// TestApp_AdminIdle verifies the dashboard logs out after 30 quiet minutes.
func TestApp_AdminIdle(t *testing.T) {
	app, fake := loggedIn(t)
	toDashboard(t, app)

	fake.Advance(29 * time.Minute)
	dispatch(t, app, studio.Activity{})
	fake.Advance(29 * time.Minute)
	wantScreen(t, app, navigation.NameAdminDashboard)

	advanceTo(t, app, fake, time.Minute, navigation.NameProfile)
}

// TestApp_SectionChangeRestartsIdle verifies switching sections re-arms a single idle timer.
func TestApp_SectionChangeRestartsIdle(t *testing.T) {
	app, fake := loggedIn(t)
	toDashboard(t, app)

	fake.Advance(20 * time.Minute)
	dispatch(t, app, studio.ShowSection{Section: navigation.SectionPayments})
	fake.Advance(20 * time.Minute)
	wantScreen(t, app, navigation.NameAdminDashboard)
	wantTimers(t, fake, 1)
}

// TestApp_WrongScreen verifies intents outside their screen are refused.
func TestApp_WrongScreen(t *testing.T) {
	tests := []struct {
		name   string
		intent studio.Intent
	}{
		{"toggle on splash", studio.ToggleBike{BikeID: "1"}},
		{"admin edit on splash", studio.SetBikeCount{Count: 5}},
		{"scan on splash", studio.ScanResult{Text: "x"}},
		{"back on splash", studio.Back{}},
		{"tab on splash", studio.SelectTab{Tab: navigation.TabChat}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newApp(t)
			err := app.Dispatch(context.Background(), tt.intent)
			if !errors.Is(err, studio.ErrWrongScreen) {
				t.Errorf("err = %v, want ErrWrongScreen", err)
			}
			wantScreen(t, app, navigation.NameSplash)
		})
	}
}

// TestApp_InlineErrors verifies validation failures stay on screen with a message.
func TestApp_InlineErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   []studio.Intent
		intent  studio.Intent
		screen  navigation.Name
		message string
	}{
		{
			name:    "blank login",
			intent:  studio.Login{Email: " ", Password: "x"},
			screen:  navigation.NameLogin,
			message: studio.MsgMissingCredentials,
		},
		{
			name:    "password mismatch",
			setup:   []studio.Intent{studio.ShowCreateAccount{}},
			intent:  studio.CreateAccount{Name: "A", Email: "a@b.c", Password: "one", ConfirmPassword: "two"},
			screen:  navigation.NameCreateAccount,
			message: studio.MsgPasswordMismatch,
		},
		{
			name:    "unknown class",
			setup:   []studio.Intent{studio.Login{Email: "a@b.c", Password: "x"}},
			intent:  studio.SelectClass{ClassID: 99},
			screen:  navigation.NameHome,
			message: studio.MsgClassNotFound,
		},
		{
			name: "wrong admin password",
			setup: []studio.Intent{
				studio.Login{Email: "a@b.c", Password: "x"},
				studio.SelectTab{Tab: navigation.TabProfile},
				studio.OpenAdmin{},
			},
			intent:  studio.AdminLogin{Password: "nope"},
			screen:  navigation.NameAdminLogin,
			message: studio.MsgWrongAdminPassword,
		},
		{
			name: "empty chat message",
			setup: []studio.Intent{
				studio.Login{Email: "a@b.c", Password: "x"},
				studio.SelectTab{Tab: navigation.TabChat},
			},
			intent:  studio.SendMessage{Text: "   "},
			screen:  navigation.NameChat,
			message: studio.MsgEmptyMessage,
		},
		{
			name: "oversized floor plan",
			setup: []studio.Intent{
				studio.Login{Email: "a@b.c", Password: "x"},
				studio.SelectTab{Tab: navigation.TabProfile},
				studio.OpenAdmin{},
				studio.AdminLogin{Password: admin.DefaultPassword},
			},
			intent:  studio.SetBikeCount{Count: 100000000},
			screen:  navigation.NameAdminDashboard,
			message: studio.MsgTooManyBikes,
		},
		{
			name:    "blank sign-up form",
			setup:   []studio.Intent{studio.ShowCreateAccount{}},
			intent:  studio.CreateAccount{},
			screen:  navigation.NameCreateAccount,
			message: studio.MsgMissingFields,
		},
		{
			name: "blank profile name",
			setup: []studio.Intent{
				studio.Login{Email: "a@b.c", Password: "x"},
				studio.SelectTab{Tab: navigation.TabProfile},
			},
			intent:  studio.UpdateProfile{Name: "   "},
			screen:  navigation.NameProfile,
			message: studio.MsgEmptyName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, fake := newApp(t)
			advanceTo(t, app, fake, navigation.DefaultSplashDelay, navigation.NameLogin)
			dispatch(t, app, tt.setup...)

			err := app.Dispatch(context.Background(), tt.intent)
			var ue *studio.UserError
			if !errors.As(err, &ue) {
				t.Fatalf("err = %v, want *UserError", err)
			}
			wantScreen(t, app, tt.screen)
			v := view(t, app)
			if v.Message == nil || v.Message.Text != tt.message || v.Message.Kind != studio.FlashError {
				t.Errorf("message = %+v, want error %q", v.Message, tt.message)
			}
		})
	}
}

// TestApp_CreateAccountNotice verifies sign-up lands on login with a success banner.
func TestApp_CreateAccountNotice(t *testing.T) {
	app, fake := newApp(t)
	advanceTo(t, app, fake, navigation.DefaultSplashDelay, navigation.NameLogin)
	dispatch(t, app,
		studio.ShowCreateAccount{},
		studio.CreateAccount{Name: "Ana", Email: "ana@example.com", Password: "pw", ConfirmPassword: "pw"},
	)
	v := view(t, app)
	if v.Screen != navigation.NameLogin {
		t.Fatalf("screen = %s, want login", v.Screen)
	}
	if v.Notice == nil || v.Notice.Text != orchestrators.NoticeAccountCreated {
		t.Errorf("notice = %+v", v.Notice)
	}
}

// TestApp_ChangeAdminPassword verifies the new password replaces the old one.
func TestApp_ChangeAdminPassword(t *testing.T) {
	app, _ := loggedIn(t)
	toDashboard(t, app)
	dispatch(t, app, studio.ChangeAdminPassword{
		CurrentPassword: admin.DefaultPassword,
		NewPassword:     "pedal99",
		ConfirmPassword: "pedal99",
	})
	if v := view(t, app); v.Message == nil || v.Message.Kind != studio.FlashSuccess {
		t.Errorf("message = %+v, want success flash", v.Message)
	}

	dispatch(t, app, studio.Back{}, studio.OpenAdmin{})
	err := app.Dispatch(context.Background(), studio.AdminLogin{Password: admin.DefaultPassword})
	var ue *studio.UserError
	if !errors.As(err, &ue) {
		t.Fatalf("old password err = %v, want *UserError", err)
	}
	dispatch(t, app, studio.AdminLogin{Password: "pedal99"})
	wantScreen(t, app, navigation.NameAdminDashboard)
}

// TestApp_ChangeAdminPasswordErrors verifies the check order and messages.
func TestApp_ChangeAdminPasswordErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      studio.ChangeAdminPassword
		message string
	}{
		{"wrong current", studio.ChangeAdminPassword{CurrentPassword: "x", NewPassword: "a", ConfirmPassword: "b"}, studio.MsgWrongCurrentPassword},
		{"mismatch", studio.ChangeAdminPassword{CurrentPassword: admin.DefaultPassword, NewPassword: "a", ConfirmPassword: "b"}, studio.MsgNewPasswordMismatch},
		{"too short", studio.ChangeAdminPassword{CurrentPassword: admin.DefaultPassword, NewPassword: "abc", ConfirmPassword: "abc"}, studio.MsgNewPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := loggedIn(t)
			toDashboard(t, app)
			err := app.Dispatch(context.Background(), tt.in)
			var ue *studio.UserError
			if !errors.As(err, &ue) || ue.Message != tt.message {
				t.Errorf("err = %v, want %q", err, tt.message)
			}
		})
	}
}

// TestApp_ChatUnread verifies opening the chat tab marks the thread read.
func TestApp_ChatUnread(t *testing.T) {
	app, _ := loggedIn(t)
	if !view(t, app).UnreadChat {
		t.Fatal("seeded thread should start unread")
	}
	dispatch(t, app, studio.SelectTab{Tab: navigation.TabChat})
	v := view(t, app)
	if v.UnreadChat {
		t.Error("thread still unread after opening chat")
	}
	if v.Chat == nil || len(v.Chat.Messages) != 3 {
		t.Fatalf("chat view = %+v, want 3 seeded messages", v.Chat)
	}

	dispatch(t, app, studio.SendMessage{Text: "¿Hay clase mañana?"})
	if got := len(view(t, app).Chat.Messages); got != 4 {
		t.Errorf("messages = %d, want 4", got)
	}
}

// TestApp_AdminCatalog verifies dashboard edits surface in the rider views.
func TestApp_AdminCatalog(t *testing.T) {
	app, _ := loggedIn(t)
	toDashboard(t, app)
	dispatch(t, app,
		studio.ShowSection{Section: navigation.SectionClasses},
		studio.DeleteClass{ID: 2},
		studio.ToggleMaintenance{BikeID: "4"},
	)
	v := view(t, app)
	if got := len(v.Admin.Section.Classes); got != 2 {
		t.Errorf("classes = %d, want 2", got)
	}

	err := app.Dispatch(context.Background(), studio.SavePricing{Pricing: orchestrators.SamplePricing()})
	if err != nil {
		t.Fatalf("SavePricing: %v", err)
	}

	bad := orchestrators.SamplePricing()
	bad.Group2 = bad.Group2.Neg()
	err = app.Dispatch(context.Background(), studio.SavePricing{Pricing: bad})
	var ue *studio.UserError
	if !errors.As(err, &ue) || ue.Message != studio.MsgNegativePrice {
		t.Errorf("negative pricing err = %v", err)
	}

	dispatch(t, app, studio.Back{}, studio.SelectTab{Tab: navigation.TabHome}, studio.SelectClass{ClassID: 1})
	var maint string
	for _, row := range view(t, app).Booking.Rows {
		for _, b := range row {
			if b.ID == "4" {
				maint = b.Status
			}
		}
	}
	if maint != bike.StatusMaintenance {
		t.Errorf("bike 4 status = %q, want maintenance", maint)
	}
}

// TestApp_Scanner verifies the scanner screen state and its way back.
func TestApp_Scanner(t *testing.T) {
	app, _ := loggedIn(t)
	toDashboard(t, app)
	dispatch(t, app, studio.OpenScanner{}, studio.ScanStarted{})
	if s := view(t, app).Scanner; s == nil || !s.Active {
		t.Fatalf("scanner = %+v, want active", s)
	}

	dispatch(t, app, studio.ScanResult{Text: "CHECKIN:user_alex_morgan"})
	if s := view(t, app).Scanner; s.Active || s.Result != "CHECKIN:user_alex_morgan" {
		t.Errorf("scanner = %+v", s)
	}

	dispatch(t, app, studio.ScanFailed{Err: errors.New("permission denied")})
	if s := view(t, app).Scanner; s.Error != studio.MsgCameraUnavailable {
		t.Errorf("scanner error = %q", s.Error)
	}

	dispatch(t, app, studio.Back{})
	wantScreen(t, app, navigation.NameAdminDashboard)
}

// TestApp_Close verifies a closed instance cancels its timers and refuses intents.
func TestApp_Close(t *testing.T) {
	app, fake := newApp(t)
	if err := app.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	wantTimers(t, fake, 0)
	fake.Advance(time.Hour)

	if err := app.Dispatch(context.Background(), studio.Back{}); !errors.Is(err, studio.ErrClosed) {
		t.Errorf("Dispatch err = %v, want ErrClosed", err)
	}
	if _, err := app.View(context.Background(), listutil.ListParams{}); !errors.Is(err, studio.ErrClosed) {
		t.Errorf("View err = %v, want ErrClosed", err)
	}
}
