package twitterapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when a signed call is attempted before Init
// has derived the signing key. Reaching it indicates a call-order bug.
var ErrNotInitialized = errors.New("twitterapi: client not initialized")

// APIError is a non-success HTTP response from the API, carrying the parsed
// error body the platform returned.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitterapi: request failed with status %d: %s", e.StatusCode, string(e.Body))
}
