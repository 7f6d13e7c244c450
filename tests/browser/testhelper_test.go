package browser_test

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	web "spinstudio/internal/adapters/http"
	"spinstudio/internal/adapters/http/middleware"
	"spinstudio/internal/application/studio"
	"spinstudio/internal/domain/admin"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/perf"
)

func init() {
	admin.HashCost = bcrypt.MinCost
}

// Short screen timers keep the suite fast while still exercising real time.
var testTimings = navigation.Timings{
	SplashDelay: 300 * time.Millisecond,
	FinalDelay:  500 * time.Millisecond,
	AdminIdle:   2 * time.Minute,
}

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL  string
	Server   *http.Server
	Registry *middleware.Registry
	PW       *playwright.Playwright
	Browser  playwright.Browser
}

// newTestApp starts the full router on a free port and a headless Chromium.
// The test is skipped when the Playwright driver or browsers are not installed.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)

	collector := perf.NewCollector(0)
	reg := middleware.NewRegistry(func(ctx context.Context, id string) (*studio.App, error) {
		return studio.New(ctx, id, studio.Config{Timings: testTimings, Perf: collector})
	}, time.Hour)

	srv := &http.Server{
		Handler: web.NewRouter(web.Deps{
			Registry:       reg,
			Perf:           collector,
			CSRFKey:        bytes.Repeat([]byte{42}, 32),
			AllowedOrigins: []string{baseURL},
		}),
	}
	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			log.Error().Err(err).Msg("test_server_failed")
		}
	}()

	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		srv.Close()
		reg.Stop()
		t.Skipf("playwright driver unavailable: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		srv.Close()
		reg.Stop()
		t.Skipf("chromium unavailable: %v", err)
	}

	app := &testApp{BaseURL: baseURL, Server: srv, Registry: reg, PW: pw, Browser: browser}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		reg.Stop()
	})
	return app
}

// newPage creates a new browser page (tab). Each page has its own cookies
// and therefore its own studio instance.
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	ctx, err := a.Browser.NewContext()
	if err != nil {
		t.Fatalf("failed to create browser context: %v", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return page
}

// waitScreen blocks until the client has drawn the named screen.
func waitScreen(t *testing.T, page playwright.Page, name navigation.Name) {
	t.Helper()
	_, err := page.WaitForSelector(fmt.Sprintf(`main[data-screen="%s"]`, name), playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	})
	if err != nil {
		t.Fatalf("screen %s never appeared: %v", name, err)
	}
}

// login opens the app, waits out the splash and signs in as the sample rider.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/"); err != nil {
		t.Fatalf("failed to open app: %v", err)
	}
	waitScreen(t, page, navigation.NameLogin)
	if err := page.Locator("input[name=email]").Fill("alex.morgan@example.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("pedal"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("[data-testid=login-form] button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit login: %v", err)
	}
	waitScreen(t, page, navigation.NameHome)
}

func click(t *testing.T, page playwright.Page, selector string) {
	t.Helper()
	if err := page.Locator(selector).First().Click(); err != nil {
		t.Fatalf("click %s: %v", selector, err)
	}
}
