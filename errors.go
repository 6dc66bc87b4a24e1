package inkwell

import "errors"

// Sentinel errors returned by the store. Handlers check these with errors.Is
// and map them to user-visible output instead of generic 500s.
var (
	// ErrNotFound is returned when a post or message does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when saving a post whose slug is already
	// used by another post.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrDuplicateEmail is returned when a contact message is submitted
	// from an email address that has already submitted one.
	ErrDuplicateEmail = errors.New("email already submitted")
)
