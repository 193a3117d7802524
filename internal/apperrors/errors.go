package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput means the caller gave unusable data. Fatal to the request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means a referenced entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrExternalService means the catalog API is unreachable or erroring.
	// It must never crash the process; some callers degrade instead of
	// propagating it.
	ErrExternalService = errors.New("external service error")
)

// InsufficientDataError is not a failure: the insight aggregator reports it
// when a user has fewer combined shows than the minimum, so the UI can render
// progress toward the threshold.
type InsufficientDataError struct {
	Current int
	Minimum int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d shows in your watchlist or watch history, currently have %d", e.Minimum, e.Current)
}

// AsInsufficientData unwraps err into an InsufficientDataError if it is one.
func AsInsufficientData(err error) (*InsufficientDataError, bool) {
	var ide *InsufficientDataError
	if errors.As(err, &ide) {
		return ide, true
	}
	return nil, false
}
