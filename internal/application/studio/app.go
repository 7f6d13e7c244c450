// Package studio runs one instance of the booking app: a sandboxed domain
// store, the navigation machine and its timers, driven by intents.
package studio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	emailAdapter "spinstudio/internal/adapters/email"
	"spinstudio/internal/adapters/storage"
	adminStore "spinstudio/internal/adapters/storage/admin"
	advertStore "spinstudio/internal/adapters/storage/advert"
	bankStore "spinstudio/internal/adapters/storage/bankaccount"
	bikeStore "spinstudio/internal/adapters/storage/bike"
	chatStore "spinstudio/internal/adapters/storage/chat"
	classStore "spinstudio/internal/adapters/storage/class"
	instructorStore "spinstudio/internal/adapters/storage/instructor"
	paymentStore "spinstudio/internal/adapters/storage/payment"
	pricingStore "spinstudio/internal/adapters/storage/pricing"
	rewardStore "spinstudio/internal/adapters/storage/reward"
	userStore "spinstudio/internal/adapters/storage/user"
	"spinstudio/internal/application/orchestrators"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/user"
	"spinstudio/internal/perf"
)

// Errors returned by Dispatch that are not shown inline.
var (
	ErrClosed        = errors.New("studio instance is closed")
	ErrWrongScreen   = errors.New("intent not available on the current screen")
	ErrUnknownIntent = errors.New("unknown intent")
	ErrInvalidInput  = errors.New("invalid intent payload")
)

// Flash kinds
const (
	FlashError   = "error"
	FlashSuccess = "success"
	FlashInfo    = "info"
)

// Flash is a one-shot message rendered on the current screen.
type Flash struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// UserError is a validation failure shown inline on the current screen.
// The screen and the store are unchanged.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

func inline(err error, message string) error {
	return &UserError{Err: err, Message: message}
}

// Config configures a studio instance.
type Config struct {
	Clock         clockwork.Clock
	Timings       navigation.Timings
	BikeCount     int    // 0 selects bike.DefaultCount
	AdminPassword string // "" selects admin.DefaultPassword
	Email         emailAdapter.Sender
	EmailFrom     string
	ResetURL      string
	Perf          *perf.Collector
	SlowQuery     time.Duration
	GenerateID    func() string
}

func (c Config) withDefaults() Config {
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.Timings == (navigation.Timings{}) {
		c.Timings = navigation.DefaultTimings()
	}
	if c.GenerateID == nil {
		c.GenerateID = uuid.NewString
	}
	return c
}

type stores struct {
	users        *userStore.SQLiteStore
	instructors  *instructorStore.SQLiteStore
	classes      *classStore.SQLiteStore
	adverts      *advertStore.SQLiteStore
	rewards      *rewardStore.SQLiteStore
	bankAccounts *bankStore.SQLiteStore
	payments     *paymentStore.SQLiteStore
	pricing      *pricingStore.SQLiteStore
	bikes        *bikeStore.SQLiteStore
	chat         *chatStore.SQLiteStore
	credentials  *adminStore.SQLiteStore
}

func newStores(db storage.SQLDB) stores {
	return stores{
		users:        userStore.NewSQLiteStore(db),
		instructors:  instructorStore.NewSQLiteStore(db),
		classes:      classStore.NewSQLiteStore(db),
		adverts:      advertStore.NewSQLiteStore(db),
		rewards:      rewardStore.NewSQLiteStore(db),
		bankAccounts: bankStore.NewSQLiteStore(db),
		payments:     paymentStore.NewSQLiteStore(db),
		pricing:      pricingStore.NewSQLiteStore(db),
		bikes:        bikeStore.NewSQLiteStore(db),
		chat:         chatStore.NewSQLiteStore(db),
		credentials:  adminStore.NewSQLiteStore(db),
	}
}

// ScanState is the QR scanner screen's transient state.
type ScanState struct {
	Active bool   `json:"active"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// App is one running studio instance.
//
// Dispatch and timer callbacks share one mutex, so the store and the machine
// have a single writer at any moment.
type App struct {
	mu sync.Mutex

	id      string
	cfg     Config
	db      *sql.DB
	stores  stores
	machine *navigation.Machine

	// ctx is cancelled by Close; timer callbacks use it for store access.
	ctx    context.Context
	cancel context.CancelFunc

	current user.User
	message *Flash
	scan    ScanState
	closed  bool
}

// New opens a private sandbox, seeds it and starts on the splash screen.
// PRE: id is unique among live instances
// POST: the splash timer is armed; the current user is the first sample rider
func New(ctx context.Context, id string, cfg Config) (*App, error) {
	cfg = cfg.withDefaults()

	db, err := storage.OpenSandbox(ctx, "studio-"+id)
	if err != nil {
		return nil, err
	}
	timed := storage.NewTimedDB(db, id, cfg.Perf, cfg.SlowQuery)

	actx, cancel := context.WithCancel(context.Background())
	a := &App{
		id:      id,
		cfg:     cfg,
		db:      db,
		stores:  newStores(timed),
		ctx:     actx,
		cancel:  cancel,
		current: orchestrators.SampleUsers()[0],
	}

	s := a.stores
	err = orchestrators.ExecuteSeedSampleData(ctx, orchestrators.SeedOptions{
		BikeCount:     cfg.BikeCount,
		AdminPassword: cfg.AdminPassword,
	}, orchestrators.SeedDeps{
		Users:        s.users,
		Instructors:  s.instructors,
		Classes:      s.classes,
		Adverts:      s.adverts,
		Rewards:      s.rewards,
		BankAccounts: s.bankAccounts,
		Payments:     s.payments,
		Pricing:      s.pricing,
		Bikes:        s.bikes,
		Chat:         s.chat,
		Credentials:  s.credentials,
		Now:          cfg.Clock.Now,
	})
	if err != nil {
		cancel()
		db.Close()
		return nil, fmt.Errorf("seed studio %s: %w", id, err)
	}

	a.machine = navigation.NewMachine(cfg.Clock, cfg.Timings, a.onTimer)
	a.machine.Start()

	log.Info().Str("studio", id).Msg("studio_started")
	return a, nil
}

// ID returns the instance id.
func (a *App) ID() string {
	return a.id
}

// Close stops every timer and discards the sandbox.
// POST: Dispatch returns ErrClosed; no timer callback mutates state
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	a.machine.Close()
	a.cancel()
	log.Info().Str("studio", a.id).Msg("studio_closed")
	return a.db.Close()
}

// onTimer applies a fired screen timer under the instance lock.
func (a *App) onTimer(e navigation.Expiry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	start := time.Now()
	kind, ok := a.machine.Expire(e)
	if !ok {
		log.Debug().Str("studio", a.id).Str("timer", string(e.Kind)).Msg("stale_timer_ignored")
		return
	}
	a.message = nil
	if kind == navigation.TimerFinal {
		if err := orchestrators.ExecuteResetBooking(a.ctx, a.stores.bikes); err != nil {
			log.Error().Err(err).Str("studio", a.id).Msg("booking_reset_failed")
		}
	}
	a.cfg.Perf.Since(perf.KindTimer, string(kind), start)
	log.Debug().Str("studio", a.id).Str("timer", string(kind)).Msg("timer_fired")
}

// Dispatch applies one intent.
// PRE: none
// POST: on a *UserError the screen and store are unchanged and the message
// is shown inline; ErrWrongScreen when the intent is not offered on screen
func (a *App) Dispatch(ctx context.Context, in Intent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}

	start := time.Now()
	defer a.cfg.Perf.Since(perf.KindIntent, in.IntentName(), start)

	a.message = nil

	err := a.dispatch(ctx, in)

	// Any input on the dashboard counts as activity.
	a.machine.Touch()

	var ue *UserError
	if errors.As(err, &ue) {
		a.message = &Flash{Kind: FlashError, Text: ue.Message}
		log.Debug().Str("studio", a.id).Str("intent", in.IntentName()).Err(ue.Err).Msg("intent_rejected")
	}
	return err
}

// Screen returns the current screen.
func (a *App) Screen() navigation.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.machine.Screen()
}

// CurrentUser returns the session's rider.
func (a *App) CurrentUser() user.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *App) on(names ...navigation.Name) error {
	cur := a.machine.Screen().Name()
	for _, n := range names {
		if cur == n {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongScreen, cur)
}
