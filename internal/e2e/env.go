// Package e2e holds the fixtures shared by the end-to-end suites: the target
// environment, role-scoped actors and tracked test data.
package e2e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/mshlentov/cinescope/internal/app/apptest"
	"github.com/mshlentov/cinescope/internal/client/cinescope"
	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
	"github.com/mshlentov/cinescope/internal/infrastructure/config"
	"github.com/mshlentov/cinescope/internal/infrastructure/db/postgres"
)

// localBcryptCost keeps password hashing cheap for an in-process twin.
const localBcryptCost = 4

// Environment is everything a suite needs to reach the system under test.
// It is built once per test binary and passed to every suite.
type Environment struct {
	Config    *config.Config
	Endpoints cinescope.Endpoints
	Log       zerolog.Logger

	// Records is nil when neither a database nor a local twin is available.
	Records ports.RecordStore
	// Accounts is set only when a Postgres collaborator is configured.
	Accounts *postgres.AccountRepository

	twin *apptest.Server
	db   *sqlx.DB
}

// Setup targets the remote deployment named in cfg, or starts an in-process
// twin when no target is configured.
func Setup(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Environment, error) {
	env := &Environment{Config: cfg, Log: log}

	if cfg.Target.Remote() {
		env.Endpoints = cinescope.Endpoints{AuthURL: cfg.Target.AuthURL, APIURL: cfg.Target.APIURL}
		log.Info().Str("auth", cfg.Target.AuthURL).Str("api", cfg.Target.APIURL).Msg("using remote target")
	} else {
		cfg.Twin.BcryptCost = localBcryptCost
		twin, err := apptest.New(ctx, cfg, log.With().Str("component", "twin").Logger())
		if err != nil {
			return nil, fmt.Errorf("e2e: start twin: %w", err)
		}
		env.twin = twin
		env.Endpoints = twin.Endpoints
		env.Records = twin.Twin.Records()
		log.Info().Str("url", twin.Endpoints.APIURL).Msg("using in-process twin")
	}

	if cfg.Postgres.Enabled() {
		db, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			_ = env.Close()
			return nil, fmt.Errorf("e2e: %w", err)
		}
		env.db = db
		env.Records = postgres.NewRecordStore(db)
		env.Accounts = postgres.NewAccountRepository(db)
	}
	return env, nil
}

// Local reports whether the suites run against an in-process twin.
func (e *Environment) Local() bool { return e.twin != nil }

// SuperAdmin is the configured privileged credential.
func (e *Environment) SuperAdmin() domain.Credential {
	return domain.NewCredential(e.Config.SuperAdmin.Email, e.Config.SuperAdmin.Password, domain.RoleSuperAdmin)
}

// NewActors starts a per-test set of identities and tracked resources.
func (e *Environment) NewActors() *Actors {
	return newActors(e)
}

func (e *Environment) Close() error {
	var errs []error
	if e.db != nil {
		errs = append(errs, e.db.Close())
	}
	if e.twin != nil {
		e.twin.Close()
	}
	return errors.Join(errs...)
}
