// Package apptest starts an in-memory Cinescope twin for tests.
package apptest

import (
	"context"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/mshlentov/cinescope/internal/app"
	"github.com/mshlentov/cinescope/internal/client/cinescope"
	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/infrastructure/config"
)

// Server is a twin bound to a local HTTP listener.
type Server struct {
	Twin      *app.Twin
	Config    *config.Config
	Endpoints cinescope.Endpoints
	srv       *httptest.Server
}

// SuperAdmin returns the seeded super admin credential.
func (s *Server) SuperAdmin() domain.Credential {
	return domain.NewCredential(s.Config.SuperAdmin.Email, s.Config.SuperAdmin.Password, domain.RoleSuperAdmin)
}

// Close stops the listener and releases the twin.
func (s *Server) Close() {
	s.srv.Close()
	_ = s.Twin.Close(context.Background())
}

// Config returns a memory-backed configuration with a cheap bcrypt cost.
func Config(seedMovies int) (*config.Config, error) {
	return config.LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"TWIN_BCRYPT_COST": "4",
		"TWIN_SEED_MOVIES": strconv.Itoa(seedMovies),
	}))
}

// New starts a twin from cfg. The caller owns Close.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	twin, err := app.NewTwin(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	srv := httptest.NewServer(twin.Handler())
	return &Server{
		Twin:      twin,
		Config:    cfg,
		Endpoints: cinescope.Endpoints{AuthURL: srv.URL, APIURL: srv.URL},
		srv:       srv,
	}, nil
}

// Start is New for a single test, closed at cleanup.
func Start(t testing.TB, seedMovies int) *Server {
	t.Helper()
	cfg, err := Config(seedMovies)
	if err != nil {
		t.Fatalf("twin config: %v", err)
	}
	s, err := New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("start twin: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}
