package inkwell

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/views"
)

// newPostID is the path identifier for the "create a new post" editor.
const newPostID = "0"

func (a *App) handleDashboard(c echo.Context) error {
	if !isAdmin(c) {
		return Render(c, views.AdminLogin(a.site, false, CsrfToken(c)))
	}
	return a.renderDashboard(c)
}

func (a *App) renderDashboard(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.site, posts, popFlash(c), CsrfToken(c)))
}

// handleLogin checks the submitted credentials against the configured admin
// account. Comparison is constant-time and rate-limited per IP.
func (a *App) handleLogin(c echo.Context) error {
	if isAdmin(c) {
		return a.renderDashboard(c)
	}
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	username := c.FormValue("username")
	password := c.FormValue("password")
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Config.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Config.Admin.Password)) == 1
	if userOK && passOK {
		if err := setAdminSession(c, username); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/dashboard/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, views.AdminLogin(a.site, true, CsrfToken(c)))
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard/")
}

// handleEdit renders the post editor: a blank form for the new-post id,
// otherwise the stored post's fields. A missing post is a 404, not a blank
// form pretending the post exists.
func (a *App) handleEdit(c echo.Context) error {
	if !isAdmin(c) {
		return Render(c, views.AdminLogin(a.site, false, CsrfToken(c)))
	}
	rawID := c.Param("id")
	if rawID == newPostID {
		return Render(c, views.AdminEdit(a.site, views.Post{}, true, "", popFlash(c), CsrfToken(c)))
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	post, err := a.Store.GetPost(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminEdit(a.site, post, false, "", popFlash(c), CsrfToken(c)))
}

// postForm carries submitted editor fields through validation.
type postForm struct {
	Title   string
	Tagline string
	Slug    string
	Body    string
	Image   string
}

func (f postForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Tagline, validation.Required),
		validation.Field(&f.Body, validation.Required),
	)
}

// handleEditSave dispatches to create or update. Create assigns the id and
// redirects to the new post's edit URL; update overwrites every field and
// refreshes the date.
func (a *App) handleEditSave(c echo.Context) error {
	if !isAdmin(c) {
		return Render(c, views.AdminLogin(a.site, false, CsrfToken(c)))
	}
	form := postForm{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Tagline: strings.TrimSpace(c.FormValue("tagline")),
		Slug:    strings.TrimSpace(c.FormValue("slug")),
		Body:    c.FormValue("body"),
		Image:   strings.TrimSpace(c.FormValue("image")),
	}
	if form.Slug == "" {
		form.Slug = Slugify(form.Title)
	}

	rawID := c.Param("id")
	isNew := rawID == newPostID

	post := views.Post{
		Title:   form.Title,
		Tagline: form.Tagline,
		Slug:    form.Slug,
		Body:    form.Body,
		Image:   form.Image,
		Date:    time.Now().Format(timeLayout),
	}

	if err := form.Validate(); err != nil {
		return Render(c, views.AdminEdit(a.site, post, isNew, err.Error(), nil, CsrfToken(c)))
	}
	if form.Slug == "" {
		return Render(c, views.AdminEdit(a.site, post, isNew, "Slug is required. Add a title or slug.", nil, CsrfToken(c)))
	}

	if isNew {
		id, err := a.Store.CreatePost(post)
		if err != nil {
			if errors.Is(err, ErrSlugTaken) {
				return Render(c, views.AdminEdit(a.site, post, true, "That slug is already in use.", nil, CsrfToken(c)))
			}
			return err
		}
		a.Cache.Invalidate()
		if err := setFlash(c, "success", "Post created."); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit/%d/", id))
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	post.ID = id
	if err := a.Store.UpdatePost(post); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound)
		case errors.Is(err, ErrSlugTaken):
			return Render(c, views.AdminEdit(a.site, post, false, "That slug is already in use.", nil, CsrfToken(c)))
		}
		return err
	}
	a.Cache.Invalidate()
	if err := setFlash(c, "success", "Post saved."); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit/%d/", id))
}

// handleDelete removes a post. Deleting a nonexistent id is a no-op; either
// way the admin lands back on the dashboard.
func (a *App) handleDelete(c echo.Context) error {
	if !isAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard/")
	}
	deleted, err := a.Store.DeletePost(id)
	if err != nil {
		return err
	}
	if deleted {
		a.Cache.Invalidate()
		if err := setFlash(c, "success", "Post deleted."); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard/")
}

// handleMessages shows the contact inbox.
func (a *App) handleMessages(c echo.Context) error {
	if !isAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard/")
	}
	msgs, err := a.Store.ListContacts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminMessages(a.site, msgs))
}
