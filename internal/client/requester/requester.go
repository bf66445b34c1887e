// Package requester is the single choke point for calls to Cinescope: it
// builds one request, sends it over a Session and enforces the expected status.
package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mshlentov/cinescope/internal/metrics"
)

// Request describes one call. ExpectedStatus 0 means 200.
type Request struct {
	Method         string
	Endpoint       string
	Body           any
	Query          url.Values
	ExpectedStatus int
}

type Requester struct {
	session *Session
	baseURL string
	log     zerolog.Logger
}

func New(session *Session, baseURL string, log zerolog.Logger) *Requester {
	return &Requester{
		session: session,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

func (r *Requester) BaseURL() string { return r.baseURL }

func (r *Requester) Session() *Session { return r.session }

// URL joins the base URL, endpoint and encoded query.
func (r *Requester) URL(endpoint string, query url.Values) string {
	u := r.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Send issues req. On a status mismatch both the response and a
// *StatusMismatchError are returned.
func (r *Requester) Send(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, req.Method)
	}

	expected := req.ExpectedStatus
	if expected == 0 {
		expected = http.StatusOK
	}

	var payload []byte
	if req.Body != nil {
		var err error
		if payload, err = json.Marshal(req.Body); err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, req.Endpoint, err)
		}
	}

	target := r.URL(req.Endpoint, req.Query)
	r.log.Debug().
		Str("method", method).
		Str("url", target).
		RawJSON("body", redact(payload)).
		Msg("request")

	start := time.Now()
	raw, err := r.session.execute(ctx, method, target, payload)
	elapsed := time.Since(start)
	metrics.ClientRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	if err != nil {
		metrics.ClientRequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}

	resp := &Response{
		Method:     method,
		URL:        target,
		StatusCode: raw.StatusCode(),
		Header:     raw.Header(),
		Body:       raw.Body(),
		Duration:   elapsed,
	}
	metrics.ClientRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	r.log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("response")
	r.log.Trace().Str("url", target).Bytes("body", resp.Body).Msg("response body")

	if resp.StatusCode != expected {
		metrics.ClientStatusMismatchesTotal.WithLabelValues(method).Inc()
		r.log.Warn().
			Str("method", method).
			Str("url", target).
			Int("expected", expected).
			Int("actual", resp.StatusCode).
			Msg("status mismatch")
		return resp, &StatusMismatchError{
			Method:   method,
			URL:      target,
			Expected: expected,
			Actual:   resp.StatusCode,
			Body:     resp.Body,
		}
	}
	return resp, nil
}

// secretFields are masked in logged request bodies.
var secretFields = []string{"password", "passwordRepeat"}

const mask = "***"

// redact returns b with top-level secret fields masked. Bodies that are not
// JSON objects are returned as they are.
func redact(b []byte) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	if !bytes.Contains(b, []byte(`"password`)) {
		return b
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return b
	}
	masked := json.RawMessage(strconv.Quote(mask))
	for _, k := range secretFields {
		if _, ok := obj[k]; ok {
			obj[k] = masked
		}
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return []byte(strconv.Quote(mask))
	}
	return out
}
