package inkwell

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) renderSitemap(c echo.Context, posts []views.Post) error {
	base := a.Config.Site.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "about")},
		{Loc: BuildURL(base, "contact")},
	}
	for _, p := range posts {
		lastMod := ""
		if t, err := time.Parse(timeLayout, p.Date); err == nil {
			lastMod = t.Format("2006-01-02")
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "post", p.Slug),
			LastMod: lastMod,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
