package studio

import (
	"context"
	"fmt"

	"spinstudio/internal/application/listutil"
	"spinstudio/internal/application/projections"
	"spinstudio/internal/domain/navigation"
)

// AdminView is the dashboard: the stat tiles with the open drill-down, and
// the selected section's data.
type AdminView struct {
	Panel   projections.AdminPanelView   `json:"panel"`
	Section projections.AdminSectionView `json:"section"`
}

// FinalView is the success screen shown after a payment.
type FinalView struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// View is everything a client needs to draw the current screen.
// Exactly one of the screen payloads is set, matching Screen.
type View struct {
	Screen     navigation.Name      `json:"screen"`
	Tab        navigation.Tab       `json:"tab"`
	ShowTabBar bool                 `json:"showTabBar"`
	Timer      navigation.TimerKind `json:"timer,omitempty"`
	Message    *Flash               `json:"message,omitempty"`
	Notice     *Flash               `json:"notice,omitempty"`
	UnreadChat bool                 `json:"unreadChat"`

	Home       *projections.HomeView       `json:"home,omitempty"`
	Booking    *projections.BookingView    `json:"booking,omitempty"`
	Payment    *projections.PaymentView    `json:"payment,omitempty"`
	Profile    *projections.ProfileView    `json:"profile,omitempty"`
	Chat       *projections.ChatView       `json:"chat,omitempty"`
	Instructor *projections.InstructorView `json:"instructor,omitempty"`
	Admin      *AdminView                  `json:"admin,omitempty"`
	Scanner    *ScanState                  `json:"scanner,omitempty"`
	Final      *FinalView                  `json:"final,omitempty"`
}

// View projects the current screen.
// PRE: params only affect the admin users section
// POST: the returned View reflects a single consistent state of the instance
func (a *App) View(ctx context.Context, params listutil.ListParams) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return View{}, ErrClosed
	}

	screen := a.machine.Screen()
	v := View{
		Screen:     screen.Name(),
		Tab:        a.machine.Tab(),
		ShowTabBar: navigation.ShowsTabBar(screen),
		Timer:      a.machine.Armed(),
		Message:    a.message,
	}

	chat, err := projections.QueryGetChat(ctx, a.stores.chat)
	if err != nil {
		return View{}, err
	}
	v.UnreadChat = chat.Unread

	s := a.stores
	switch sc := screen.(type) {
	case navigation.Login:
		if sc.Notice != nil {
			v.Notice = &Flash{Kind: sc.Notice.Kind, Text: sc.Notice.Text}
		}
	case navigation.Home:
		home, err := projections.QueryGetHome(ctx, a.current.Name, projections.GetHomeDeps{
			ClassStore:      s.classes,
			InstructorStore: s.instructors,
			AdvertStore:     s.adverts,
		})
		if err != nil {
			return View{}, err
		}
		v.Home = &home
	case navigation.Booking:
		b, err := projections.QueryGetBooking(ctx, sc, projections.GetBookingDeps{
			BikeStore:    s.bikes,
			PricingStore: s.pricing,
		})
		if err != nil {
			return View{}, err
		}
		v.Booking = &b
	case navigation.Payment:
		p, err := projections.QueryGetPayment(ctx, sc, projections.GetPaymentDeps{
			PricingStore:     s.pricing,
			BankAccountStore: s.bankAccounts,
		})
		if err != nil {
			return View{}, err
		}
		v.Payment = &p
	case navigation.Profile:
		p, err := projections.QueryGetProfile(ctx, a.current, s.rewards)
		if err != nil {
			return View{}, err
		}
		v.Profile = &p
	case navigation.Chat:
		v.Chat = &chat
	case navigation.InstructorProfile:
		inst := projections.QueryGetInstructor(sc)
		v.Instructor = &inst
	case navigation.AdminDashboard:
		admin, err := a.adminView(ctx, sc, params)
		if err != nil {
			return View{}, err
		}
		v.Admin = &admin
	case navigation.QRScanner:
		scan := a.scan
		v.Scanner = &scan
	case navigation.Final:
		v.Final = &FinalView{Title: sc.Title, Message: sc.Message}
	}
	return v, nil
}

func (a *App) adminView(ctx context.Context, d navigation.AdminDashboard, params listutil.ListParams) (AdminView, error) {
	s := a.stores
	panel, err := projections.QueryGetAdminPanel(ctx, d.Panel, projections.GetAdminPanelDeps{
		PaymentStore: s.payments,
		BikeStore:    s.bikes,
		Now:          a.cfg.Clock.Now,
	})
	if err != nil {
		return AdminView{}, fmt.Errorf("admin panel %s: %w", d.Panel, err)
	}
	section, err := projections.QueryGetAdminSection(ctx, d.Section, params, projections.GetAdminSectionDeps{
		UserStore:        s.users,
		InstructorStore:  s.instructors,
		ClassStore:       s.classes,
		AdvertStore:      s.adverts,
		RewardStore:      s.rewards,
		BankAccountStore: s.bankAccounts,
		PaymentStore:     s.payments,
		PricingStore:     s.pricing,
		BikeStore:        s.bikes,
		ChatStore:        s.chat,
	})
	if err != nil {
		return AdminView{}, fmt.Errorf("admin section %s: %w", d.Section, err)
	}
	return AdminView{Panel: panel, Section: section}, nil
}
