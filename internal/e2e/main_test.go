package e2e_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/ozontech/allure-go/pkg/allure"
	"github.com/ozontech/allure-go/pkg/framework/provider"

	"github.com/mshlentov/cinescope/internal/client/requester"
	"github.com/mshlentov/cinescope/internal/e2e"
	"github.com/mshlentov/cinescope/internal/infrastructure/config"
	"github.com/mshlentov/cinescope/pkg/logger"
)

var env *e2e.Environment

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	env, err = e2e.Setup(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		if err := env.Close(); err != nil {
			log.Warn().Err(err).Msg("environment close failed")
		}
	}()

	return m.Run()
}

// closeActors reports cleanup failures without failing the test a second time.
func closeActors(t provider.T, a *e2e.Actors) {
	if err := a.Close(context.Background()); err != nil {
		t.Logf("cleanup: %v", err)
	}
}

func attachResponse(sCtx provider.StepCtx, name string, resp *requester.Response) {
	if resp == nil || len(resp.Body) == 0 {
		return
	}
	sCtx.WithNewAttachment(name, allure.JSON, resp.Body)
}
