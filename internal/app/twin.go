// Package app assembles the Cinescope twin: storage, sessions, services and
// the HTTP router, seeded with a super admin and a published catalog.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/mshlentov/cinescope/internal/api"
	"github.com/mshlentov/cinescope/internal/client/datagen"
	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
	"github.com/mshlentov/cinescope/internal/core/service"
	"github.com/mshlentov/cinescope/internal/infrastructure/config"
	"github.com/mshlentov/cinescope/internal/infrastructure/db/memory"
	mongostore "github.com/mshlentov/cinescope/internal/infrastructure/db/mongo"
	redisstore "github.com/mshlentov/cinescope/internal/infrastructure/db/redis"
	"github.com/mshlentov/cinescope/internal/infrastructure/http/handlers"
	"github.com/mshlentov/cinescope/internal/pkg/token"
)

// Twin is a running-or-ready Cinescope stand-in.
type Twin struct {
	log     zerolog.Logger
	echo    *echo.Echo
	users   ports.UserRepository
	movies  ports.MovieRepository
	closers []func(context.Context) error
}

// NewTwin wires the twin from cfg and seeds it.
func NewTwin(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Twin, error) {
	t := &Twin{log: log}
	ready := map[string]handlers.Pinger{}

	switch cfg.Twin.Store {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Twin.Mongo.URI, Database: cfg.Twin.Mongo.Database})
		if err != nil {
			return nil, err
		}
		t.closers = append(t.closers, client.Disconnect)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = t.Close(ctx)
			return nil, err
		}
		t.users = mongostore.NewUserRepository(db)
		t.movies = mongostore.NewMovieRepository(db)
		ready["mongodb"] = mongostore.Pinger{Client: client}
	default:
		store := memory.NewStore()
		t.users = store.Users()
		t.movies = store.Movies()
	}

	var sessions ports.SessionCache
	switch cfg.Twin.Sessions {
	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Twin.Redis.Addr, DB: cfg.Twin.Redis.DB})
		if err != nil {
			_ = t.Close(ctx)
			return nil, err
		}
		t.closers = append(t.closers, func(context.Context) error { return client.Close() })
		sessions = redisstore.NewSessionCache(client)
		ready["redis"] = redisstore.Pinger{Client: client}
	default:
		sessions = memory.NewSessionCache()
	}

	issuer := token.NewIssuer(cfg.Twin.JWTSecret, cfg.Twin.TokenTTL)
	authSvc := service.NewAuthService(t.users, sessions, issuer, cfg.Twin.BcryptCost)
	userSvc := service.NewUserService(t.users, cfg.Twin.BcryptCost)
	movieSvc := service.NewMovieService(t.movies)

	t.echo = api.NewRouter(api.Dependencies{
		Auth:     authSvc,
		Users:    userSvc,
		Movies:   movieSvc,
		Log:      log.With().Str("component", "twin").Logger(),
		Ready:    ready,
		Registry: prometheus.NewRegistry(),
	})

	if err := seed(ctx, cfg, userSvc, movieSvc); err != nil {
		_ = t.Close(ctx)
		return nil, fmt.Errorf("seed twin: %w", err)
	}
	log.Info().
		Str("store", cfg.Twin.Store).
		Str("sessions", cfg.Twin.Sessions).
		Int("seed_movies", cfg.Twin.SeedMovies).
		Msg("twin ready")
	return t, nil
}

// seed creates the super admin and the published catalog. An existing super
// admin (a persistent store reused across runs) is left as is.
func seed(ctx context.Context, cfg *config.Config, users *service.UserService, movies *service.MovieService) error {
	_, err := users.Create(ctx, domain.NewUserInput{
		Email:    cfg.SuperAdmin.Email,
		FullName: "Super Admin",
		Password: cfg.SuperAdmin.Password,
		Verified: true,
		Roles:    []domain.Role{domain.RoleSuperAdmin},
	})
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return fmt.Errorf("super admin: %w", err)
	}

	for i := range cfg.Twin.SeedMovies {
		loc := domain.LocationMSK
		if i%2 == 1 {
			loc = domain.LocationSPB
		}
		_, err := movies.Create(ctx, &domain.Movie{
			Name:        datagen.MovieName(),
			Price:       datagen.Price(),
			Description: datagen.Description(),
			ImageURL:    datagen.ImageURL(),
			Location:    loc,
			Published:   true,
			GenreID:     domain.Genres[i%len(domain.Genres)].ID,
			Rating:      float64(1 + i%5),
		})
		if err != nil {
			return fmt.Errorf("movie %d: %w", i, err)
		}
	}
	return nil
}

// Handler is the twin's HTTP surface.
func (t *Twin) Handler() http.Handler { return t.echo }

// Records exposes the twin's storage for record-level checks.
func (t *Twin) Records() ports.RecordStore {
	return &records{users: t.users, movies: t.movies}
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (t *Twin) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           t.echo,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		t.log.Info().Str("addr", addr).Msg("twin listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the backing connections.
func (t *Twin) Close(ctx context.Context) error {
	var errs []error
	for i := len(t.closers) - 1; i >= 0; i-- {
		errs = append(errs, t.closers[i](ctx))
	}
	t.closers = nil
	return errors.Join(errs...)
}
