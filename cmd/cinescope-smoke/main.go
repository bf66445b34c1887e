// cinescope-smoke drives a short multi-actor pass against a deployed Cinescope
// (CINESCOPE_AUTH_URL / CINESCOPE_API_URL) and exits non-zero if any step fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mshlentov/cinescope/internal/client/cinescope"
	"github.com/mshlentov/cinescope/internal/client/datagen"
	"github.com/mshlentov/cinescope/internal/client/identity"
	"github.com/mshlentov/cinescope/internal/client/scenario"
	"github.com/mshlentov/cinescope/internal/client/schema"
	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/infrastructure/config"
	"github.com/mshlentov/cinescope/pkg/logger"
)

var errNoSession = errors.New("actor is not logged in")

func main() {
	os.Exit(run())
}

func run() int {
	users := flag.Int("users", 3, "number of registered users to drive")
	workers := flag.Int("workers", 4, "concurrent workers")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if !cfg.Target.Remote() {
		log.Error().Msg("CINESCOPE_AUTH_URL and CINESCOPE_API_URL are required")
		return 2
	}

	ids := identity.NewFactory(cinescope.Endpoints{AuthURL: cfg.Target.AuthURL, APIURL: cfg.Target.APIURL}, log)
	defer func() {
		if err := ids.Close(); err != nil {
			log.Warn().Err(err).Msg("session cleanup failed")
		}
	}()

	admin := domain.NewCredential(cfg.SuperAdmin.Email, cfg.SuperAdmin.Password, domain.RoleSuperAdmin)
	steps := adminSteps(ids, admin)
	for i := range *users {
		steps = append(steps, userSteps(ids, fmt.Sprintf("user-%d", i))...)
	}

	results := scenario.Run(ctx, *workers, log, steps)
	failed := scenario.Failed(results)
	for _, r := range results {
		ev := log.Info()
		if r.Err != nil {
			ev = log.Error().Err(r.Err)
		}
		ev.Str("actor", r.Actor).Str("step", r.Name).Dur("took", r.Duration).Msg("step")
	}
	log.Info().Int("steps", len(results)).Int("failed", len(failed)).Msg("smoke finished")
	if len(failed) > 0 {
		return 1
	}
	return 0
}

// adminSteps creates, reads and deletes one movie as the super admin.
func adminSteps(ids *identity.Factory, cred domain.Credential) []scenario.Step {
	const actor = "super_admin"
	var (
		id    *identity.Identity
		movie schema.Movie
	)
	return []scenario.Step{
		{Actor: actor, Name: "login", Run: func(ctx context.Context) (err error) {
			id, err = ids.Authenticated(ctx, actor, cred)
			return err
		}},
		{Actor: actor, Name: "create movie", Run: func(ctx context.Context) error {
			if id == nil {
				return errNoSession
			}
			resp, err := id.API.Movies.Create(ctx, datagen.Movie())
			if err != nil {
				return err
			}
			movie, err = schema.Decode[schema.Movie](resp.Body)
			return err
		}},
		{Actor: actor, Name: "get movie", Run: func(ctx context.Context) error {
			if id == nil {
				return errNoSession
			}
			_, err := id.API.Movies.GetByID(ctx, movie.ID)
			return err
		}},
		{Actor: actor, Name: "delete movie", Run: func(ctx context.Context) error {
			if id == nil {
				return errNoSession
			}
			_, err := id.API.Movies.Delete(ctx, movie.ID)
			return err
		}},
		{Actor: actor, Name: "movie is gone", Run: func(ctx context.Context) error {
			if id == nil {
				return errNoSession
			}
			_, err := id.API.Movies.GetByID(ctx, movie.ID, http.StatusNotFound)
			return err
		}},
	}
}

// userSteps registers a fresh account, logs in, browses, and checks that a
// plain user cannot create movies.
func userSteps(ids *identity.Factory, actor string) []scenario.Step {
	payload := datagen.RegisterUser()
	var id *identity.Identity
	return []scenario.Step{
		{Actor: actor, Name: "register", Run: func(ctx context.Context) error {
			anon := ids.Anonymous()
			resp, err := anon.API.Auth.Register(ctx, payload)
			if err != nil {
				return err
			}
			user, err := schema.Decode[schema.RegisterUserResponse](resp.Body)
			if err != nil {
				return err
			}
			if user.Email != payload.Email {
				return fmt.Errorf("registered email %q, got %q", payload.Email, user.Email)
			}
			return nil
		}},
		{Actor: actor, Name: "login", Run: func(ctx context.Context) (err error) {
			id, err = ids.Authenticated(ctx, actor, domain.NewCredential(payload.Email, payload.Password))
			return err
		}},
		{Actor: actor, Name: "list movies", Run: func(ctx context.Context) error {
			if id == nil {
				return errNoSession
			}
			resp, err := id.API.Movies.List(ctx, cinescope.MovieFilter{})
			if err != nil {
				return err
			}
			_, err = schema.Decode[schema.MoviesPage](resp.Body)
			return err
		}},
		{Actor: actor, Name: "create is forbidden", Run: func(ctx context.Context) error {
			if id == nil {
				return errNoSession
			}
			_, err := id.API.Movies.Create(ctx, datagen.Movie(), http.StatusForbidden)
			return err
		}},
	}
}
