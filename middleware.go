package inkwell

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/inkwell/views"
)

const (
	sessionName = "inkwell_session"
	identityKey = "inkwell.identity"
)

// Identity is the authenticated admin principal for the current request.
// It is resolved once per request by withIdentity and carried in the Echo
// context instead of being re-read from ambient session state in handlers.
type Identity struct {
	Username string
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))
	e.Use(a.withIdentity)

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:  middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup: "header:X-CSRF-Token,form:_csrf",
		CookieName:  "_csrf",
		CookiePath:  "/",
		CookieSameSite: func() http.SameSite {
			return http.SameSiteLaxMode
		}(),
		CookieSecure: a.Config.Server.CookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public") || path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt"
		},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case strings.HasPrefix(path, "/dashboard") || strings.HasPrefix(path, "/edit") || strings.HasPrefix(path, "/uploader"):
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.Admin.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.Server.CookieSecure,
	}
	return store
}

// withIdentity resolves the session once and stores the admin identity in the
// request context. The session carries a username; it only counts as the
// admin when it matches the configured admin username.
func (a *App) withIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(sessionName, c)
		if err == nil {
			if name, ok := sess.Values["user"].(string); ok && name != "" && name == a.Config.Admin.Username {
				c.Set(identityKey, &Identity{Username: name})
			}
		}
		return next(c)
	}
}

// currentIdentity returns the admin identity for the request, or nil.
func currentIdentity(c echo.Context) *Identity {
	id, _ := c.Get(identityKey).(*Identity)
	return id
}

func isAdmin(c echo.Context) bool {
	return currentIdentity(c) != nil
}

func setAdminSession(c echo.Context, username string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["user"] = username
	return sess.Save(c.Request(), c.Response())
}

func clearAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// setFlash queues a one-shot notification for the next rendered page.
func setFlash(c echo.Context, level, text string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(level + "|" + text)
	return sess.Save(c.Request(), c.Response())
}

// popFlash returns the pending flash, if any, and discards it. Handlers queue
// at most one flash per redirect; should several pile up, the newest wins and
// the rest are dropped with it.
func popFlash(c echo.Context) *views.Flash {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())
	raw, ok := flashes[len(flashes)-1].(string)
	if !ok {
		return nil
	}
	level, text, found := strings.Cut(raw, "|")
	if !found {
		return &views.Flash{Level: "success", Text: raw}
	}
	return &views.Flash{Level: level, Text: text}
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
