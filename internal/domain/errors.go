package domain

import "errors"

// Sentinel errors for gallery operations
var (
	// ErrServerOffline indicates the gallery server is unreachable
	ErrServerOffline = errors.New("gallery server is unreachable")

	// ErrUnexpectedStatus indicates the server answered with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected status from gallery server")

	// ErrMalformedListing indicates a directory listing could not be decoded
	ErrMalformedListing = errors.New("malformed directory listing")

	// ErrNotOpenView indicates the probed server does not speak the OpenView protocol
	ErrNotOpenView = errors.New("not an OpenView server")
)
