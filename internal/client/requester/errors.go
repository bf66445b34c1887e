package requester

import (
	"errors"
	"fmt"
)

var (
	ErrStatusMismatch    = errors.New("unexpected response status")
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
)

const maxBodyInError = 2048

// StatusMismatchError is returned when the response status differs from the
// one the caller declared.
type StatusMismatchError struct {
	Method   string
	URL      string
	Expected int
	Actual   int
	Body     []byte
}

func (e *StatusMismatchError) Error() string {
	body := e.Body
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError]
	}
	return fmt.Sprintf("%s %s: expected status %d, got %d; body: %s",
		e.Method, e.URL, e.Expected, e.Actual, body)
}

func (e *StatusMismatchError) Is(target error) bool {
	return target == ErrStatusMismatch
}

// AsStatusMismatch unwraps err into a *StatusMismatchError.
func AsStatusMismatch(err error) (*StatusMismatchError, bool) {
	var sm *StatusMismatchError
	ok := errors.As(err, &sm)
	return sm, ok
}
