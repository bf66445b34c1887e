package requester

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Response is the raw outcome of one call.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.Method, r.URL, err)
	}
	return nil
}

func (r *Response) Text() string { return string(r.Body) }
