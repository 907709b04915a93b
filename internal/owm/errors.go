package owm

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned before any network attempt when the
// client was built without an API key.
var ErrMissingCredential = errors.New("openweather api key is not configured")

// NotFoundError means a geocode query matched no known place.
type NotFoundError struct {
	Query string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no location found for %q", e.Query)
}

// FetchError is a non-success HTTP status from the upstream API.
type FetchError struct {
	Status int
	Body   string
}

func (e FetchError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.Status)
	}
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Body)
}

// ParseError is a response body that was not well-formed JSON.
type ParseError struct {
	Err error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("decoding API response: %v", e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a failed geocode lookup.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
