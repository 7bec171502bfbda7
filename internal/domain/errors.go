package domain

import "errors"

// Errors reported when a platform call returns a non-success status.
var (
	ErrCannotSearchPosts    = errors.New("cannot search recent posts")
	ErrCannotSearchReshares = errors.New("cannot search recent reshares")
	ErrCannotFavorite       = errors.New("cannot favorite")
	ErrCannotReshare        = errors.New("cannot reshare")
)

// ResponseError is returned when a platform call completes with a
// non-success status. Its message is that of Err.
type ResponseError struct {
	Err           error
	Status        int
	StatusMessage string
}

func (e *ResponseError) Error() string {
	return e.Err.Error()
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}
