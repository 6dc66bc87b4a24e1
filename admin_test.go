package inkwell

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func editForm(title, slug string) url.Values {
	return url.Values{
		"title":   {title},
		"tagline": {"A tagline"},
		"slug":    {slug},
		"body":    {"Body text."},
	}
}

func TestLoginSuccess(t *testing.T) {
	a := newTestApp(t)

	c, rec := formRequest(a, "/dashboard/", url.Values{
		"username": {"admin"},
		"password": {"correct-horse"},
	})
	if err := call(t, a, a.handleLogin, c, false); err != nil {
		t.Fatalf("login errored: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard/" {
		t.Errorf("redirect = %q, want /dashboard/", loc)
	}
	if cookie := rec.Header().Get("Set-Cookie"); !strings.Contains(cookie, sessionName+"=") {
		t.Errorf("expected session cookie, got %q", cookie)
	}
}

func TestLoginFailure(t *testing.T) {
	a := newTestApp(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"wrong username", "nobody", "correct-horse"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		c, rec := formRequest(a, "/dashboard/", url.Values{
			"username": {tc.username},
			"password": {tc.password},
		})
		if err := call(t, a, a.handleLogin, c, false); err != nil {
			t.Fatalf("%s: login errored: %v", tc.name, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200 login re-render", tc.name, rec.Code)
		}
		if cookie := rec.Header().Get("Set-Cookie"); strings.Contains(cookie, sessionName+"=") {
			t.Errorf("%s: failed login must not set a session cookie", tc.name)
		}
	}
}

func TestLoginRateLimited(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	for i := 0; i < 5; i++ {
		c, _ := formRequest(a, "/dashboard/", form)
		if err := call(t, a, a.handleLogin, c, false); err != nil {
			t.Fatalf("attempt %d errored: %v", i, err)
		}
	}

	c, rec := formRequest(a, "/dashboard/", form)
	if err := call(t, a, a.handleLogin, c, false); err != nil {
		t.Fatalf("limited attempt errored: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429 after repeated failures", rec.Code)
	}
}

func TestEditSaveCreatesPost(t *testing.T) {
	a := newTestApp(t)

	c, rec := formRequest(a, "/edit/0/", editForm("Hello World", ""))
	c.SetParamNames("id")
	c.SetParamValues("0")
	if err := call(t, a, a.handleEditSave, c, true); err != nil {
		t.Fatalf("create errored: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/edit/1/" {
		t.Errorf("redirect = %q, want /edit/1/", loc)
	}

	post, err := a.Store.GetPost(1)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Title != "Hello World" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.Slug != "hello-world" {
		t.Errorf("Slug = %q, want slugified title", post.Slug)
	}
	if post.Date == "" {
		t.Error("expected a server-assigned date")
	}
}

func TestEditSaveUpdatesPost(t *testing.T) {
	a := newTestApp(t)

	id, err := a.Store.CreatePost(testPost("before"))
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}

	c, rec := formRequest(a, "/edit/1/", editForm("After", "after"))
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := call(t, a, a.handleEditSave, c, true); err != nil {
		t.Fatalf("update errored: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	post, err := a.Store.GetPost(id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.ID != id {
		t.Errorf("ID = %d, want %d (update must keep the id)", post.ID, id)
	}
	if post.Title != "After" || post.Slug != "after" {
		t.Errorf("post = %+v, want overwritten fields", post)
	}
}

func TestEditSaveMissingPostIs404(t *testing.T) {
	a := newTestApp(t)

	c, _ := formRequest(a, "/edit/42/", editForm("Ghost", "ghost"))
	c.SetParamNames("id")
	c.SetParamValues("42")
	err := call(t, a, a.handleEditSave, c, true)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing post, got %v", err)
	}
}

func TestEditSaveDuplicateSlugRerenders(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.Store.CreatePost(testPost("taken")); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	c, rec := formRequest(a, "/edit/0/", editForm("Another", "taken"))
	c.SetParamNames("id")
	c.SetParamValues("0")
	if err := call(t, a, a.handleEditSave, c, true); err != nil {
		t.Fatalf("save errored: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 form re-render", rec.Code)
	}

	posts, err := a.Store.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("got %d posts, want 1 (duplicate slug must not insert)", len(posts))
	}
}

func TestEditSaveValidation(t *testing.T) {
	a := newTestApp(t)

	c, rec := formRequest(a, "/edit/0/", url.Values{"title": {"Only a title"}})
	c.SetParamNames("id")
	c.SetParamValues("0")
	if err := call(t, a, a.handleEditSave, c, true); err != nil {
		t.Fatalf("save errored: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 form re-render", rec.Code)
	}

	posts, err := a.Store.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("invalid form stored %d posts, want 0", len(posts))
	}
}

func TestEditSaveRequiresAdmin(t *testing.T) {
	a := newTestApp(t)

	c, rec := formRequest(a, "/edit/0/", editForm("Sneaky", "sneaky"))
	c.SetParamNames("id")
	c.SetParamValues("0")
	if err := call(t, a, a.handleEditSave, c, false); err != nil {
		t.Fatalf("save errored: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 login page", rec.Code)
	}

	posts, err := a.Store.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("unauthenticated save stored %d posts, want 0", len(posts))
	}
}

func TestDeletePostHandler(t *testing.T) {
	a := newTestApp(t)

	id, err := a.Store.CreatePost(testPost("doomed"))
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}

	c, rec := formRequest(a, "/delete/1/", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := call(t, a, a.handleDelete, c, true); err != nil {
		t.Fatalf("delete errored: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if _, err := a.Store.GetPost(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("post still present after delete: %v", err)
	}
}

func TestDeleteNonexistentRedirectsQuietly(t *testing.T) {
	a := newTestApp(t)

	c, rec := formRequest(a, "/delete/99/", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := call(t, a, a.handleDelete, c, true); err != nil {
		t.Fatalf("delete errored: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}

// The deletion flash only appears when a post was actually removed; a no-op
// delete of a nonexistent id must not claim success.
func TestDeleteFlashMatchesOutcome(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.Store.CreatePost(testPost("real")); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	c, rec := formRequest(a, "/delete/99/", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := call(t, a, a.handleDelete, c, true); err != nil {
		t.Fatalf("no-op delete errored: %v", err)
	}
	c2, rec2 := getRequest(a, "/dashboard/")
	withCookies(c2, rec)
	if err := call(t, a, a.handleDashboard, c2, true); err != nil {
		t.Fatalf("dashboard errored: %v", err)
	}
	if strings.Contains(rec2.Body.String(), "Post deleted.") {
		t.Error("success flash shown for a delete that removed nothing")
	}

	c3, rec3 := formRequest(a, "/delete/1/", nil)
	c3.SetParamNames("id")
	c3.SetParamValues("1")
	if err := call(t, a, a.handleDelete, c3, true); err != nil {
		t.Fatalf("delete errored: %v", err)
	}
	c4, rec4 := getRequest(a, "/dashboard/")
	withCookies(c4, rec3)
	if err := call(t, a, a.handleDashboard, c4, true); err != nil {
		t.Fatalf("dashboard errored: %v", err)
	}
	if !strings.Contains(rec4.Body.String(), "Post deleted.") {
		t.Error("expected the success flash after a real delete")
	}
}

func TestDeleteRequiresAdmin(t *testing.T) {
	a := newTestApp(t)

	id, err := a.Store.CreatePost(testPost("protected"))
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}

	c, rec := formRequest(a, "/delete/1/", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := call(t, a, a.handleDelete, c, false); err != nil {
		t.Fatalf("delete errored: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303 to login", rec.Code)
	}
	if _, err := a.Store.GetPost(id); err != nil {
		t.Errorf("unauthenticated delete removed the post: %v", err)
	}
}

func TestEditFormMissingPostIs404(t *testing.T) {
	a := newTestApp(t)

	c, _ := getRequest(a, "/edit/42/")
	c.SetParamNames("id")
	c.SetParamValues("42")
	err := call(t, a, a.handleEdit, c, true)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing post, got %v", err)
	}
}

func TestDashboardShowsLoginWhenAnonymous(t *testing.T) {
	a := newTestApp(t)

	c, rec := getRequest(a, "/dashboard/")
	if err := call(t, a, a.handleDashboard, c, false); err != nil {
		t.Fatalf("dashboard errored: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `name="password"`) {
		t.Error("expected the login form for anonymous visitors")
	}
}
