package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrFetchFailed         = errors.New("catalog: fetch failed")
	ErrNegativePage        = errors.New("catalog: page index must not be negative")
	ErrPreviousUnavailable = errors.New("catalog: already on the first page")
	ErrNextUnavailable     = errors.New("catalog: already on the last page")
	ErrNotDisplayed        = errors.New("catalog: item is not on the displayed page")
	ErrOutOfStock          = errors.New("catalog: item is out of stock")
)

// FetchFailedError is returned by Router.Fetch for transport and non-2xx failures.
type FetchFailedError struct {
	Route Route
	Err   error
}

func (e *FetchFailedError) Error() string {
	return fmt.Sprintf("catalog: fetch failed: %s: %s", e.Route, e.Err)
}

func (e *FetchFailedError) Unwrap() error {
	return e.Err
}

func (e *FetchFailedError) Is(target error) bool {
	return target == ErrFetchFailed
}
