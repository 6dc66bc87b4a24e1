package inkwell

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// newTestApp builds a fully initialized App on a throwaway database and
// uploads directory. Handlers are exercised directly (wrapped in the session
// middleware) rather than through the router, so CSRF stays out of the way.
func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	dir := t.TempDir()

	var cfg Config
	cfg.setDefaults()
	cfg.Admin = AdminSection{
		Username:      "admin",
		Password:      "correct-horse",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	}
	cfg.Database.Path = filepath.Join(dir, "blog.db")
	cfg.Uploads.Dir = filepath.Join(dir, "uploads")

	a := New(cfg, opts...)
	if a.Sender == nil {
		a.Sender = NoopSender{}
	}
	if err := a.init(); err != nil {
		t.Fatalf("app init failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

// call invokes a handler wrapped in the session middleware. When asAdmin is
// set the request carries the admin identity, as withIdentity would resolve.
func call(t *testing.T, a *App, handler echo.HandlerFunc, c echo.Context, asAdmin bool) error {
	t.Helper()
	if asAdmin {
		c.Set(identityKey, &Identity{Username: a.Config.Admin.Username})
	}
	return session.Middleware(a.newSessionStore())(handler)(c)
}

// formRequest builds an Echo context for a POST with URL-encoded form values.
func formRequest(a *App, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	return a.Echo.NewContext(req, rec), rec
}

// getRequest builds an Echo context for a GET.
func getRequest(a *App, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest("GET", target, nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	return a.Echo.NewContext(req, rec), rec
}

// withCookies copies cookies set on a previous response onto the request, so
// a test can follow a redirect the way a browser would. A browser replaces
// same-named cookies, so only the last Set-Cookie per name is kept.
func withCookies(c echo.Context, rec *httptest.ResponseRecorder) {
	latest := make(map[string]*http.Cookie)
	var names []string
	for _, cookie := range rec.Result().Cookies() {
		if _, seen := latest[cookie.Name]; !seen {
			names = append(names, cookie.Name)
		}
		latest[cookie.Name] = cookie
	}
	for _, name := range names {
		c.Request().AddCookie(latest[name])
	}
}

// recordingSender captures notifications and optionally fails.
type recordingSender struct {
	sent []Submission
	fail bool
}

func (r *recordingSender) Notify(_ context.Context, s Submission) error {
	if r.fail {
		return errors.New("smtp unavailable")
	}
	r.sent = append(r.sent, s)
	return nil
}
