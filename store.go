package inkwell

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/eringen/inkwell/views"
	_ "modernc.org/sqlite"
)

// timeLayout is the string datetime format stored in the date columns.
const timeLayout = "2006-01-02 15:04:05"

// Store wraps a SQLite database and provides CRUD operations for posts and
// contact messages.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy_timeout so writers wait
	// instead of returning SQLITE_BUSY, synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    tagline TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    body TEXT NOT NULL,
    date TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS contact_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL,
    date TEXT NOT NULL
);
`)
	return err
}

// mapConstraint translates SQLite UNIQUE violations into domain sentinels.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "posts.slug"):
		return ErrSlugTaken
	case strings.Contains(msg, "contact_messages.email"):
		return ErrDuplicateEmail
	}
	return err
}

// CreatePost inserts a new post and returns its assigned id.
func (s *Store) CreatePost(p views.Post) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO posts (title, tagline, slug, body, date, image) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Tagline, p.Slug, p.Body, p.Date, p.Image)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

// UpdatePost overwrites every field of an existing post. Returns ErrNotFound
// when no post has the given id.
func (s *Store) UpdatePost(p views.Post) error {
	res, err := s.db.Exec(`UPDATE posts SET title = ?, tagline = ?, slug = ?, body = ?, date = ?, image = ? WHERE id = ?`,
		p.Title, p.Tagline, p.Slug, p.Body, p.Date, p.Image, p.ID)
	if err != nil {
		return mapConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPost returns a single post by id.
func (s *Store) GetPost(id int64) (views.Post, error) {
	p := views.Post{ID: id}
	err := s.db.QueryRow(`SELECT title, tagline, slug, body, date, image FROM posts WHERE id = ?`, id).
		Scan(&p.Title, &p.Tagline, &p.Slug, &p.Body, &p.Date, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return views.Post{}, ErrNotFound
	}
	if err != nil {
		return views.Post{}, err
	}
	return p, nil
}

// GetPostBySlug returns a single post by its public slug.
func (s *Store) GetPostBySlug(slug string) (views.Post, error) {
	p := views.Post{Slug: slug}
	err := s.db.QueryRow(`SELECT id, title, tagline, body, date, image FROM posts WHERE slug = ?`, slug).
		Scan(&p.ID, &p.Title, &p.Tagline, &p.Body, &p.Date, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return views.Post{}, ErrNotFound
	}
	if err != nil {
		return views.Post{}, err
	}
	return p, nil
}

// ListPosts returns every post in insertion order (the order the home page
// paginates over).
func (s *Store) ListPosts() ([]views.Post, error) {
	rows, err := s.db.Query(`SELECT id, title, tagline, slug, body, date, image FROM posts ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []views.Post
	for rows.Next() {
		var p views.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Tagline, &p.Slug, &p.Body, &p.Date, &p.Image); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// DeletePost removes a post by id. Deleting a nonexistent id is a no-op;
// the returned bool reports whether a row was actually removed.
func (s *Store) DeletePost(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateContact inserts a contact message and returns its assigned id.
// A repeated sender email maps to ErrDuplicateEmail.
func (s *Store) CreateContact(m views.ContactMessage) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO contact_messages (name, email, phone, message, date) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Phone, m.Message, m.Date)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

// ListContacts returns all contact messages, newest first.
func (s *Store) ListContacts() ([]views.ContactMessage, error) {
	rows, err := s.db.Query(`SELECT id, name, email, phone, message, date FROM contact_messages ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []views.ContactMessage
	for rows.Next() {
		var m views.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.Date); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
