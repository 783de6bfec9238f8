package ai

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse means the service answered but the payload carried no
// generated text.
var ErrEmptyResponse = errors.New("generation service returned an empty response")

// ErrMalformedResponse means the generated text was not valid JSON or did
// not match the declared output schema.
var ErrMalformedResponse = errors.New("generation service returned a malformed response")

// HTTPError is a non-success status from the generation service.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("generation service http %d: %s", e.StatusCode, e.Body)
}
