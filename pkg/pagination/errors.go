package pagination

import (
	"errors"
	"fmt"

	"github.com/Sternrassler/neis-client/pkg/envelope"
	"github.com/Sternrassler/neis-client/pkg/resource"
)

// Common errors wrapped by FetchError.
var (
	// ErrStatus is wrapped when the server answers with a non-2xx status.
	ErrStatus = errors.New("unexpected http status")

	// ErrResultCode is wrapped when strict mode rejects a bare RESULT.
	ErrResultCode = errors.New("neis result code")

	// ErrVariantMismatch is wrapped when strict mode rejects an envelope
	// tagged with a different resource.
	ErrVariantMismatch = errors.New("envelope variant does not match resource")
)

// ErrorClass represents a classification of fetch failures.
type ErrorClass string

const (
	// ErrorClassTransport represents network failures and cancellation.
	ErrorClassTransport ErrorClass = "transport"

	// ErrorClassHTTPStatus represents non-2xx responses.
	ErrorClassHTTPStatus ErrorClass = "http_status"

	// ErrorClassDecode represents bodies that are not a known envelope.
	ErrorClassDecode ErrorClass = "decode"

	// ErrorClassResult represents rejected result codes (strict mode only).
	ErrorClassResult ErrorClass = "result"
)

// FetchError is returned by Fetch when any page fails. It terminates the whole
// call.
type FetchError struct {
	Resource   resource.Resource
	Page       int
	Class      ErrorClass
	StatusCode int // 0 when no response was received

	// Result is the NEIS result code, set for ErrorClassResult.
	Result *envelope.ResultCode

	// Snippet is the start of the response body, if any.
	Snippet string

	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("NEIS %s error (resource %s, page %d, status %d): %v",
			e.Class, e.Resource, e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("NEIS %s error (resource %s, page %d): %v",
		e.Class, e.Resource, e.Page, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassOf returns the class of a FetchError anywhere in err's chain, or ""
// when there is none.
func ClassOf(err error) ErrorClass {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Class
	}
	return ""
}

// StatusCode returns the HTTP status carried by a FetchError in err's chain.
func StatusCode(err error) (int, bool) {
	var fe *FetchError
	if errors.As(err, &fe) && fe.StatusCode != 0 {
		return fe.StatusCode, true
	}
	return 0, false
}
