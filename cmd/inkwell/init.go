package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const starterConfig = `site:
  name: My Blog
  url: http://localhost:3000
  description: A personal blog.
  author: ""

server:
  addr: ":3000"
  cookie_secure: false

admin:
  username: ${INKWELL_ADMIN_USER}
  password: ${INKWELL_ADMIN_PASS}
  session_secret: ${INKWELL_SESSION_SECRET}

database:
  path: ${INKWELL_DB_PATH}

blog:
  posts_per_page: 5
  cache_ttl: 5m

uploads:
  dir: public/uploads
  max_size: 10485760
  allowed_extensions: [".jpg", ".jpeg", ".png", ".gif", ".pdf"]
  process_images: true
  max_image_width: 1200

mail:
  enabled: false
  host: smtp.gmail.com
  port: 465
  username: ${INKWELL_MAIL_USER}
  password: ${INKWELL_MAIL_PASS}
  to: ${INKWELL_MAIL_USER}
  timeout: 10s
`

const starterStyle = `:root {
  --fg: #1c1c1c;
  --muted: #6a6a6a;
  --accent: #2a5db0;
  --bg: #fdfdfc;
}

body {
  font-family: Georgia, "Times New Roman", serif;
  color: var(--fg);
  background: var(--bg);
  max-width: 44rem;
  margin: 0 auto;
  padding: 1rem;
  line-height: 1.6;
}

a { color: var(--accent); }

header nav a { margin-right: 1rem; }

article h2 { margin-bottom: 0.2rem; }

.tagline, .date { color: var(--muted); }

.flash { padding: 0.6rem 1rem; border-left: 3px solid var(--accent); }
.flash-warning { border-color: #b05a2a; }

form label { display: block; margin-top: 0.8rem; }
form input, form textarea { width: 100%; padding: 0.4rem; }
form button { margin-top: 1rem; padding: 0.4rem 1.2rem; }

footer { margin-top: 3rem; color: var(--muted); font-size: 0.9rem; }
`

const starterFavicon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16">
  <rect width="16" height="16" rx="3" fill="#2a5db0"/>
  <path d="M4 12 L11 5 l1.5 1.5 L5.5 13.5 4 14 Z" fill="#fdfdfc"/>
</svg>
`

const starterEnv = `INKWELL_ADMIN_USER=admin
INKWELL_ADMIN_PASS=change-me
INKWELL_SESSION_SECRET=change-me-to-32-random-bytes
INKWELL_DB_PATH=data/blog.db
INKWELL_MAIL_USER=
INKWELL_MAIL_PASS=
`

// runInit writes a starter config.yaml, .env, and static assets, and creates
// the data and uploads directories. Existing files are left alone.
func runInit(ctx context.Context, cmd *cli.Command) error {
	for _, dir := range []string{"data", "public/uploads"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	for name, content := range map[string]string{
		"config.yaml":        starterConfig,
		".env":               starterEnv,
		"public/style.css":   starterStyle,
		"public/favicon.svg": starterFavicon,
	} {
		if _, err := os.Stat(name); err == nil {
			fmt.Printf("skipping %s: already exists\n", name)
			continue
		}
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Printf("wrote %s\n", name)
	}
	fmt.Println("done. Edit .env, then run: inkwell")
	return nil
}
