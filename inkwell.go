// Package inkwell is a single-admin personal blog built with Go, Echo, and
// templ-style components: a public listing with pagination, slug-addressed
// posts, a contact form that persists submissions and emails the owner, and
// a session-gated dashboard for post CRUD and file uploads.
package inkwell

import (
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/views"
)

// App is the central application. It wires together the config, store,
// cache, notification sender, middleware, and routes.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Sender NotificationSender

	site         views.SiteConfig
	loginLimiter *LoginLimiter
	staticDir    string
}

// Option configures additional App behavior.
type Option func(*App)

// WithSender overrides the notification sender; useful for queued delivery
// and for tests.
func WithSender(s NotificationSender) Option {
	return func(a *App) {
		a.Sender = s
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// New creates an App from a validated Config.
func New(cfg Config, opts ...Option) *App {
	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
		site: views.SiteConfig{
			Name:        cfg.Site.Name,
			URL:         cfg.Site.URL,
			Description: cfg.Site.Description,
			Author:      cfg.Site.Author,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// init prepares everything short of listening: store, cache, limiter,
// sender, uploads directory, middleware, and routes.
func (a *App) init() error {
	store, err := NewStore(a.Config.Database.Path)
	if err != nil {
		return err
	}
	a.Store = store
	a.Cache = NewPostCache(store, a.Config.Blog.CacheTTL.Std())
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Sender == nil {
		if a.Config.Mail.Enabled {
			a.Sender = NewSMTPSender(a.Config.Mail)
		} else {
			a.Sender = NoopSender{}
		}
	}

	if err := os.MkdirAll(a.Config.Uploads.Dir, 0o755); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Start initializes the app and runs the HTTP server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Server.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/about/", a.handleAbout)
	e.GET("/post/:slug/", a.handlePost)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)

	// Admin routes
	e.GET("/dashboard/", a.handleDashboard)
	e.POST("/dashboard/", a.handleLogin)
	e.GET("/dashboard/messages/", a.handleMessages)
	e.GET("/logout/", a.handleLogout)
	e.GET("/edit/:id/", a.handleEdit)
	e.POST("/edit/:id/", a.handleEditSave)
	e.POST("/delete/:id/", a.handleDelete)
	e.GET("/uploader/", a.handleUploader)
	e.POST("/uploader/", a.handleUpload)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
