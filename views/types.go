package views

// SiteConfig holds site-wide settings rendered into every page. Populated
// once from the config file at startup; read-only afterwards.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// Post is the core content type stored in SQLite and rendered by templates.
// Date is a string datetime in "2006-01-02 15:04:05" form, assigned by the
// server on create and refreshed on every update.
type Post struct {
	ID      int64
	Title   string
	Tagline string
	Slug    string
	Body    string
	Date    string
	Image   string // optional uploaded image filename, "" when unset
}

// Link returns the public URL path for the post.
func (p Post) Link() string {
	return "/post/" + p.Slug + "/"
}

// ContactMessage is a contact form submission as stored and shown in the
// admin inbox.
type ContactMessage struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Message string
	Date    string
}

// Pagination carries listing navigation state into the home template.
// Prev and Next are URL paths; the empty string means "no link".
type Pagination struct {
	Page int
	Last int
	Prev string
	Next string
}

// Flash is a one-shot notification shown on the next render and then
// discarded. Level is "success" or "warning".
type Flash struct {
	Level string
	Text  string
}
