package inkwell

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded once from a YAML file at
// startup. ${VAR} references in the file are expanded from the environment
// before parsing, so secrets and the database path can live in the
// environment (e.g. database.path: ${INKWELL_DB_PATH}).
type Config struct {
	Site     SiteSection     `yaml:"site"`
	Server   ServerSection   `yaml:"server"`
	Admin    AdminSection    `yaml:"admin"`
	Database DatabaseSection `yaml:"database"`
	Blog     BlogSection     `yaml:"blog"`
	Uploads  UploadsSection  `yaml:"uploads"`
	Mail     MailSection     `yaml:"mail"`
}

// SiteSection holds public site branding.
type SiteSection struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
}

// ServerSection holds HTTP server settings.
type ServerSection struct {
	Addr         string `yaml:"addr"`
	CookieSecure bool   `yaml:"cookie_secure"`
}

// AdminSection holds the single admin account and session settings.
type AdminSection struct {
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	SessionSecret string `yaml:"session_secret"`
}

func (c AdminSection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.SessionSecret, validation.Required, validation.Length(16, 0)),
	)
}

// DatabaseSection holds the SQLite database location.
type DatabaseSection struct {
	Path string `yaml:"path"`
}

func (c DatabaseSection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Path, validation.Required),
	)
}

// BlogSection holds listing behavior.
type BlogSection struct {
	PostsPerPage int      `yaml:"posts_per_page"`
	CacheTTL     Duration `yaml:"cache_ttl"`
}

func (c BlogSection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PostsPerPage, validation.Required, validation.Min(1)),
	)
}

// UploadsSection holds file upload limits. The original system accepted any
// file of any size; here both are explicit settings.
type UploadsSection struct {
	Dir               string   `yaml:"dir"`
	MaxSize           int64    `yaml:"max_size"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
	ProcessImages     bool     `yaml:"process_images"`
	MaxImageWidth     int      `yaml:"max_image_width"`
}

func (c UploadsSection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// MailSection holds SMTP settings for contact notifications. When Enabled is
// false no mail is sent and submissions are only persisted.
type MailSection struct {
	Enabled  bool     `yaml:"enabled"`
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	To       string   `yaml:"to"`
	Timeout  Duration `yaml:"timeout"`
}

func (c MailSection) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.To, validation.Required),
	)
}

// Validate checks every section; called once at startup.
func (c *Config) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return fmt.Errorf("admin: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Blog.Validate(); err != nil {
		return fmt.Errorf("blog: %w", err)
	}
	if err := c.Uploads.Validate(); err != nil {
		return fmt.Errorf("uploads: %w", err)
	}
	if err := c.Mail.Validate(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Site.Name == "" {
		c.Site.Name = "Blog"
	}
	if c.Site.URL == "" {
		c.Site.URL = "http://localhost:3000"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/blog.db"
	}
	if c.Blog.PostsPerPage == 0 {
		c.Blog.PostsPerPage = 5
	}
	if c.Blog.CacheTTL == 0 {
		c.Blog.CacheTTL = Duration(5 * time.Minute)
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "public/uploads"
	}
	if c.Uploads.MaxSize == 0 {
		c.Uploads.MaxSize = 10 << 20 // 10MB
	}
	if len(c.Uploads.AllowedExtensions) == 0 {
		c.Uploads.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".pdf"}
	}
	if c.Uploads.MaxImageWidth == 0 {
		c.Uploads.MaxImageWidth = 1200
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 465
	}
	if c.Mail.Timeout == 0 {
		c.Mail.Timeout = Duration(10 * time.Second)
	}
}

// LoadConfig reads, expands, parses, defaults, and validates the config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Duration parses YAML duration strings like "30s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
