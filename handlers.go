package inkwell

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/views"
)

// handleHome serves the paginated post listing. The page query parameter
// defaults to 1 on anything non-numeric; a page past the end renders empty.
func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	page := ParsePage(c.QueryParam("page"))
	pagePosts, pg := Paginate(posts, page, a.Config.Blog.PostsPerPage)
	return Render(c, views.Home(a.site, pagePosts, pg))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, views.About(a.site))
}

// handlePost serves a single post by slug; unknown slugs get the 404 page.
func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
		}
		return err
	}
	return Render(c, views.PostPage(a.site, post))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /dashboard/\nDisallow: /edit/\n\nSitemap: %s/sitemap.xml\n", a.Config.Site.URL)
	return c.String(http.StatusOK, body)
}

// httpErrorHandler renders styled 404/500 pages; everything else falls
// through to Echo's default handler.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
