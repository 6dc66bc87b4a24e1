package inkwell

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
admin:
  username: admin
  password: hunter2-hunter2
  session_secret: 0123456789abcdef0123456789abcdef
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Site.Name != "Blog" {
		t.Errorf("Site.Name = %q, want default %q", cfg.Site.Name, "Blog")
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, ":3000")
	}
	if cfg.Blog.PostsPerPage != 5 {
		t.Errorf("Blog.PostsPerPage = %d, want default 5", cfg.Blog.PostsPerPage)
	}
	if cfg.Blog.CacheTTL.Std() != 5*time.Minute {
		t.Errorf("Blog.CacheTTL = %v, want default 5m", cfg.Blog.CacheTTL.Std())
	}
	if cfg.Uploads.MaxSize != 10<<20 {
		t.Errorf("Uploads.MaxSize = %d, want default 10MB", cfg.Uploads.MaxSize)
	}
	if cfg.Mail.Timeout.Std() != 10*time.Second {
		t.Errorf("Mail.Timeout = %v, want default 10s", cfg.Mail.Timeout.Std())
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/tmp/test-blog.db")
	cfg, err := LoadConfig(writeConfig(t, minimalConfig+`
database:
  path: ${TEST_DB_PATH}
`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/test-blog.db" {
		t.Errorf("Database.Path = %q, want expanded env value", cfg.Database.Path)
	}
}

func TestLoadConfigParsesDurations(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig+`
blog:
  posts_per_page: 8
  cache_ttl: 90s
mail:
  timeout: 3s
`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Blog.CacheTTL.Std() != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.Blog.CacheTTL.Std())
	}
	if cfg.Mail.Timeout.Std() != 3*time.Second {
		t.Errorf("Mail.Timeout = %v, want 3s", cfg.Mail.Timeout.Std())
	}
	if cfg.Blog.PostsPerPage != 8 {
		t.Errorf("PostsPerPage = %d, want 8", cfg.Blog.PostsPerPage)
	}
}

func TestLoadConfigRejectsMissingAdmin(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, `
site:
  name: No Admin Here
`)); err == nil {
		t.Fatal("expected validation error for missing admin credentials")
	}
}

func TestLoadConfigRejectsEnabledMailWithoutHost(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, minimalConfig+`
mail:
  enabled: true
`)); err == nil {
		t.Fatal("expected validation error for enabled mail without host")
	}
}
