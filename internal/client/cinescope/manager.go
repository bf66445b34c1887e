// Package cinescope holds the domain clients of the Cinescope services and the
// Manager that binds them to one session.
package cinescope

import (
	"github.com/rs/zerolog"

	"github.com/mshlentov/cinescope/internal/client/requester"
)

// Endpoints are the base URLs of the two Cinescope services.
type Endpoints struct {
	AuthURL string
	APIURL  string
}

// Manager aggregates the domain clients behind one session and owns it.
type Manager struct {
	session *requester.Session

	Auth   *AuthAPI
	User   *UserAPI
	Movies *MoviesAPI
	Genres *GenresAPI
}

// NewManager takes ownership of session; Close closes it.
func NewManager(session *requester.Session, endpoints Endpoints, log zerolog.Logger) *Manager {
	auth := requester.New(session, endpoints.AuthURL, log.With().Str("service", "auth").Logger())
	api := requester.New(session, endpoints.APIURL, log.With().Str("service", "api").Logger())

	return &Manager{
		session: session,
		Auth:    NewAuthAPI(auth),
		User:    NewUserAPI(auth),
		Movies:  NewMoviesAPI(api),
		Genres:  NewGenresAPI(api),
	}
}

func (m *Manager) Session() *requester.Session { return m.session }

// Close releases the session. Closing twice is reported as ErrSessionClosed.
func (m *Manager) Close() error {
	return m.session.Close()
}
