package page

import (
	"errors"
	"net/http"
)

// Domain errors for the page domain. Services return these (or wrap them)
// so handlers can map them to HTTP status codes without inspecting strings.
var (
	// ErrInvalidArgument signals a caller-supplied value that fails domain
	// validation, e.g. a negative follower count or an empty identifier.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidDepth signals an acquisition depth outside 1..3.
	ErrInvalidDepth = errors.New("acquisition depth must be between 1 and 3")

	// ErrPageNotFound signals a read of a page that was never acquired.
	ErrPageNotFound = errors.New("page not found")

	// ErrPostNotFound signals a read of a post that does not exist under
	// the given page.
	ErrPostNotFound = errors.New("post not found")

	// ErrAcquisitionFailed signals that both the live path and the
	// synthetic fallback failed to produce data.
	ErrAcquisitionFailed = errors.New("page acquisition failed")

	// ErrAcquisitionConflict signals a concurrent acquisition for the same
	// identifier that the caller chose not to wait for.
	ErrAcquisitionConflict = errors.New("acquisition already in progress for this page")

	// ErrStorage wraps unexpected persistence failures.
	ErrStorage = errors.New("storage operation failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrPageNotFound) || errors.Is(err, ErrPostNotFound)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrInvalidDepth)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrAcquisitionConflict)
}

// GetHTTPStatusCode maps a domain error to its HTTP status code.
func GetHTTPStatusCode(err error) int {
	switch {
	case IsInvalidInput(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, ErrAcquisitionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCode returns the machine-readable code used in error envelopes.
func GetErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDepth):
		return "INVALID_DEPTH"
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	case errors.Is(err, ErrPageNotFound):
		return "PAGE_NOT_FOUND"
	case errors.Is(err, ErrPostNotFound):
		return "POST_NOT_FOUND"
	case errors.Is(err, ErrAcquisitionConflict):
		return "ACQUISITION_IN_PROGRESS"
	case errors.Is(err, ErrAcquisitionFailed):
		return "ACQUISITION_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}
