package views

import (
	"bytes"
	"context"
	"html"
	"html/template"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic = regexp.MustCompile(`\*([^*]+)\*`)
	reLink   = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// Markdown returns a templ.Component rendering a post body as HTML.
// Post bodies support headings, paragraphs, lists, bold/italic, and links;
// everything else passes through as escaped text.
func Markdown(body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, renderBody(body))
		return err
	})
}

// bodyHTML is the template FuncMap adapter for Markdown.
func bodyHTML(body string) template.HTML {
	return template.HTML(renderBody(body))
}

func renderBody(body string) string {
	var buf bytes.Buffer
	inList := false
	inPara := false

	flushPara := func() {
		if inPara {
			buf.WriteString("</p>")
			inPara = false
		}
	}
	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}

	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flushPara()
			flushList()
		case strings.HasPrefix(trimmed, "### "):
			flushPara()
			flushList()
			buf.WriteString("<h3>" + formatInline(trimmed[4:]) + "</h3>")
		case strings.HasPrefix(trimmed, "## "):
			flushPara()
			flushList()
			buf.WriteString("<h2>" + formatInline(trimmed[3:]) + "</h2>")
		case strings.HasPrefix(trimmed, "# "):
			flushPara()
			flushList()
			buf.WriteString("<h1>" + formatInline(trimmed[2:]) + "</h1>")
		case strings.HasPrefix(trimmed, "- "):
			flushPara()
			if !inList {
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>" + formatInline(trimmed[2:]) + "</li>")
		default:
			flushList()
			if !inPara {
				buf.WriteString("<p>")
				inPara = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(formatInline(trimmed))
		}
	}
	flushPara()
	flushList()
	return buf.String()
}

func formatInline(s string) string {
	escaped := html.EscapeString(s)
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		if len(match) < 3 {
			return m
		}
		href := safeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `">` + match[1] + `</a>`
	})
	escaped = reBold.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = reItalic.ReplaceAllString(escaped, "<em>$1</em>")
	return escaped
}

// safeURL allows relative paths, fragments, and http(s)/mailto/tel links.
func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
