package importservice

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidURLFormat is returned for URLs that are neither a GitHub blob nor a tree
	ErrInvalidURLFormat = errors.New("invalid GitHub URL format")
	// ErrFetchFailed marks any failed network fetch
	ErrFetchFailed = errors.New("fetch failed")
	// ErrStage is returned when a batch action does not apply to the current stage
	ErrStage = errors.New("action not valid at this stage")
)

// FetchError describes a failed fetch. It matches ErrFetchFailed with errors.Is.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

func (e *FetchError) Unwrap() error { return e.Err }
