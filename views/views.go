// Package views renders the site's pages as templ components backed by
// html/template files embedded at build time.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"body": bodyHTML,
}).ParseFS(templateFS, "templates/*.html"))

// component wraps a named embedded template as a templ.Component so handlers
// render views the same way regardless of how they are authored.
func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, data)
	})
}

type homeData struct {
	Site  SiteConfig
	Posts []Post
	Pg    Pagination
}

// Home renders the paginated post listing.
func Home(site SiteConfig, posts []Post, pg Pagination) templ.Component {
	return component("home.html", homeData{Site: site, Posts: posts, Pg: pg})
}

type pageData struct {
	Site SiteConfig
}

// About renders the static informational page.
func About(site SiteConfig) templ.Component {
	return component("about.html", pageData{Site: site})
}

type postData struct {
	Site SiteConfig
	Post Post
}

// PostPage renders a single post.
func PostPage(site SiteConfig, post Post) templ.Component {
	return component("post.html", postData{Site: site, Post: post})
}

// ContactForm carries submitted contact form values back into the template
// so a failed validation does not lose the visitor's input.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type contactData struct {
	Site   SiteConfig
	Form   ContactForm
	Errors map[string]string
	Flash  *Flash
	CSRF   string
}

// Contact renders the contact form with any field errors and flash message.
func Contact(site SiteConfig, form ContactForm, errs map[string]string, flash *Flash, csrf string) templ.Component {
	return component("contact.html", contactData{Site: site, Form: form, Errors: errs, Flash: flash, CSRF: csrf})
}

type loginData struct {
	Site      SiteConfig
	ShowError bool
	CSRF      string
}

// AdminLogin renders the dashboard login form.
func AdminLogin(site SiteConfig, showError bool, csrf string) templ.Component {
	return component("login.html", loginData{Site: site, ShowError: showError, CSRF: csrf})
}

type dashboardData struct {
	Site  SiteConfig
	Posts []Post
	Flash *Flash
	CSRF  string
}

// AdminDashboard renders the admin post listing.
func AdminDashboard(site SiteConfig, posts []Post, flash *Flash, csrf string) templ.Component {
	return component("dashboard.html", dashboardData{Site: site, Posts: posts, Flash: flash, CSRF: csrf})
}

type editData struct {
	Site  SiteConfig
	Post  Post
	IsNew bool
	Error string
	Flash *Flash
	CSRF  string
}

// AdminEdit renders the post editor, blank for a new post.
func AdminEdit(site SiteConfig, post Post, isNew bool, errMsg string, flash *Flash, csrf string) templ.Component {
	return component("edit.html", editData{Site: site, Post: post, IsNew: isNew, Error: errMsg, Flash: flash, CSRF: csrf})
}

type messagesData struct {
	Site     SiteConfig
	Messages []ContactMessage
}

// AdminMessages renders the contact inbox.
func AdminMessages(site SiteConfig, messages []ContactMessage) templ.Component {
	return component("messages.html", messagesData{Site: site, Messages: messages})
}

type uploaderData struct {
	Site  SiteConfig
	Flash *Flash
	CSRF  string
}

// Uploader renders the admin file upload form.
func Uploader(site SiteConfig, flash *Flash, csrf string) templ.Component {
	return component("uploader.html", uploaderData{Site: site, Flash: flash, CSRF: csrf})
}

// NotFound renders the styled 404 page.
func NotFound(site SiteConfig) templ.Component {
	return component("notfound.html", pageData{Site: site})
}

// ServerError renders the styled 500 page.
func ServerError(site SiteConfig) templ.Component {
	return component("servererror.html", pageData{Site: site})
}
