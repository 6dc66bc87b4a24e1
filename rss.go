package inkwell

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/views"
)

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) renderRSS(c echo.Context, posts []views.Post) error {
	base := a.Config.Site.URL
	items := make([]rssItem, 0, len(posts))
	// Newest first in the feed; the stored order is oldest first.
	for i := len(posts) - 1; i >= 0; i-- {
		p := posts[i]
		pubDate := ""
		if t, err := time.Parse(timeLayout, p.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(base, "post", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Tagline,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rss{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Site.Name,
			Link:        base,
			Description: a.Config.Site.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
