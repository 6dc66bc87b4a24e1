package inkwell

import (
	"fmt"
	"strconv"

	"github.com/eringen/inkwell/views"
)

// ParsePage interprets the "page" query parameter. Anything that is not a
// positive integer literal defaults to page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate slices the full post list down to the requested page and computes
// the prev/next navigation links. A page past the end yields an empty slice
// without error. With zero posts both links are the no-link sentinel ("").
func Paginate(posts []views.Post, page, perPage int) ([]views.Post, views.Pagination) {
	last := (len(posts) + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > len(posts) {
		start = len(posts)
	}
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}

	pg := views.Pagination{Page: page, Last: last}
	if page > 1 {
		pg.Prev = fmt.Sprintf("/?page=%d", page-1)
	}
	if page < last {
		pg.Next = fmt.Sprintf("/?page=%d", page+1)
	}
	return posts[start:end], pg
}
