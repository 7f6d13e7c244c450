package navigation

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrClosed is returned by transitions attempted after Close.
var ErrClosed = errors.New("navigation machine is closed")

// Default timer durations.
const (
	DefaultSplashDelay = 2500 * time.Millisecond
	DefaultFinalDelay  = 4 * time.Second
	DefaultAdminIdle   = 30 * time.Minute
)

// TimerKind identifies which screen armed a timer.
type TimerKind string

// Timer kinds
const (
	TimerSplash    TimerKind = "splash"
	TimerFinal     TimerKind = "final"
	TimerAdminIdle TimerKind = "admin_idle"
)

// Expiry is delivered to the machine's owner when a timer fires.
// Gen ties the expiry to the screen entry that armed it.
type Expiry struct {
	Kind TimerKind
	Gen  uint64
}

// Timings configures the three screen timers.
type Timings struct {
	SplashDelay time.Duration
	FinalDelay  time.Duration
	AdminIdle   time.Duration
}

// DefaultTimings returns the production durations.
func DefaultTimings() Timings {
	return Timings{
		SplashDelay: DefaultSplashDelay,
		FinalDelay:  DefaultFinalDelay,
		AdminIdle:   DefaultAdminIdle,
	}
}

// Machine holds the current screen and active tab and owns at most one live timer.
//
// Timer callbacks do not mutate the machine directly. They hand an Expiry to
// the notify func, whose owner serializes it with every other transition and
// then calls Expire. A stale Expiry (armed by a screen that has since been
// left) is ignored.
//
// Machine is not safe for concurrent use; its owner provides the lock.
type Machine struct {
	clock   clockwork.Clock
	timings Timings
	notify  func(Expiry)

	screen Screen
	tab    Tab
	timer  clockwork.Timer
	armed  TimerKind
	gen    uint64
	closed bool
}

// NewMachine creates a machine on the splash screen with the home tab active.
// The splash timer is not armed until Start.
// PRE: c and notify are non-nil
// POST: Screen() is Splash, Tab() is TabHome
func NewMachine(c clockwork.Clock, timings Timings, notify func(Expiry)) *Machine {
	return &Machine{
		clock:   c,
		timings: timings,
		notify:  notify,
		screen:  Splash{},
		tab:     TabHome,
	}
}

// Start arms the splash timer.
// PRE: machine is on the splash screen
// POST: exactly one splash timer is pending
func (m *Machine) Start() {
	m.enter(Splash{})
}

// Screen returns the current screen.
func (m *Machine) Screen() Screen {
	return m.screen
}

// Tab returns the active bottom tab.
func (m *Machine) Tab() Tab {
	return m.tab
}

// Armed returns the kind of the pending timer, or "" if none.
func (m *Machine) Armed() TimerKind {
	return m.armed
}

// Go transitions to s, cancelling the current screen's timer first.
// Entering a tab screen also activates its tab.
// PRE: s is non-nil
// POST: Screen() == s; any timer owned by the previous screen will never fire
func (m *Machine) Go(s Screen) error {
	if m.closed {
		return ErrClosed
	}
	m.enter(s)
	return nil
}

// SelectTab moves to the screen behind t.
// PRE: t.Valid()
// POST: Tab() == t
func (m *Machine) SelectTab(t Tab) error {
	return m.Go(ScreenForTab(t))
}

// Touch records user activity. On the admin dashboard it restarts the
// inactivity countdown; elsewhere it does nothing.
// POST: returns true if the countdown was restarted
func (m *Machine) Touch() bool {
	if m.closed {
		return false
	}
	if _, ok := m.screen.(AdminDashboard); !ok {
		return false
	}
	m.arm(TimerAdminIdle, m.timings.AdminIdle)
	return true
}

// Expire applies a fired timer. It reports false when e is stale.
// PRE: called by the owner under the same lock as every other transition
// POST: splash -> login, final -> home (tab home), admin idle -> profile
func (m *Machine) Expire(e Expiry) (TimerKind, bool) {
	if m.closed || e.Gen != m.gen || e.Kind != m.armed {
		return "", false
	}
	m.timer = nil
	m.armed = ""
	switch e.Kind {
	case TimerSplash:
		m.enter(Login{})
	case TimerFinal:
		m.enter(Home{})
	case TimerAdminIdle:
		m.enter(Profile{})
	default:
		return "", false
	}
	return e.Kind, true
}

// Close cancels any pending timer and refuses further transitions.
// POST: no timer callback armed by this machine will reach Expire successfully
func (m *Machine) Close() {
	if m.closed {
		return
	}
	m.cancel()
	m.closed = true
}

// enter swaps the screen and arms the timer the new screen owns.
func (m *Machine) enter(s Screen) {
	m.cancel()
	m.screen = s
	if t, ok := TabFor(s); ok {
		m.tab = t
	}
	switch s.(type) {
	case Splash:
		m.arm(TimerSplash, m.timings.SplashDelay)
	case Final:
		m.arm(TimerFinal, m.timings.FinalDelay)
	case AdminDashboard:
		m.arm(TimerAdminIdle, m.timings.AdminIdle)
	}
}

func (m *Machine) arm(kind TimerKind, d time.Duration) {
	m.cancel()
	m.gen++
	e := Expiry{Kind: kind, Gen: m.gen}
	m.armed = kind
	m.timer = m.clock.AfterFunc(d, func() { m.notify(e) })
}

// cancel stops the pending timer and bumps the generation so a callback
// that already started will be recognised as stale.
func (m *Machine) cancel() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.armed = ""
	m.gen++
}
