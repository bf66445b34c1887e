package requester

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
	"gopkg.in/resty.v1"
)

var ErrSessionClosed = errors.New("session closed")

// Session is the stateful transport of one identity: a cookie jar, a bearer
// token and a private connection pool. It is safe for concurrent use, but an
// identity is expected to drive it sequentially.
type Session struct {
	client    *resty.Client
	transport *http.Transport
	jar       http.CookieJar

	mu     sync.RWMutex
	token  string
	closed bool
}

// NewSession returns a session with its own transport and cookie jar.
func NewSession(log zerolog.Logger) *Session {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	transport := http.DefaultTransport.(*http.Transport).Clone()

	client := resty.NewWithClient(&http.Client{Jar: jar, Transport: transport})
	client.SetLogger(log.With().Str("component", "resty").Logger())
	client.SetHeaders(map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})

	return &Session{client: client, transport: transport, jar: jar}
}

// SetBearerToken makes every following request carry Authorization: Bearer token.
func (s *Session) SetBearerToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) ClearBearerToken() { s.SetBearerToken("") }

func (s *Session) BearerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Cookies returns the cookies the session would send to u.
func (s *Session) Cookies(u *url.URL) []*http.Cookie {
	return s.jar.Cookies(u)
}

func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Close drops the token and releases idle connections. A second call returns
// ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	s.token = ""
	s.transport.CloseIdleConnections()
	return nil
}

func (s *Session) execute(ctx context.Context, method, rawURL string, body []byte) (*resty.Response, error) {
	s.mu.RLock()
	closed, token := s.closed, s.token
	s.mu.RUnlock()

	if closed {
		return nil, ErrSessionClosed
	}

	req := s.client.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetBody(body)
	}
	return req.Execute(method, rawURL)
}
