package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("catalog: not found")

// StatusError is returned for any non-2xx upstream response other than 404.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status %d", e.Code)
	}
	return fmt.Sprintf("bad status %d: %s", e.Code, e.Body)
}
