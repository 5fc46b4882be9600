package client

import (
	"errors"

	"github.com/Sternrassler/neis-client/pkg/pagination"
)

// Common errors returned by the client.
var (
	// ErrUnknownResource is returned by Fetch for a resource with no record type.
	ErrUnknownResource = errors.New("unknown resource")
)

// FetchError is the error returned by every fetch method when a page fails.
type FetchError = pagination.FetchError

// ErrorClass represents a classification of fetch failures.
type ErrorClass = pagination.ErrorClass

const (
	// ErrorClassTransport represents network failures and cancellation.
	ErrorClassTransport = pagination.ErrorClassTransport

	// ErrorClassHTTPStatus represents non-2xx responses.
	ErrorClassHTTPStatus = pagination.ErrorClassHTTPStatus

	// ErrorClassDecode represents bodies that are not a known envelope.
	ErrorClassDecode = pagination.ErrorClassDecode

	// ErrorClassResult represents rejected NEIS result codes (StrictResult only).
	ErrorClassResult = pagination.ErrorClassResult
)
