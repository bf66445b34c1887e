package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestDispatcher_PreservesPerActorOrder(t *testing.T) {
	var mu sync.Mutex
	seen := map[string][]int{}

	var steps []Step
	for i := range 20 {
		for _, actor := range []string{"admin", "user-1", "user-2"} {
			steps = append(steps, Step{
				Actor: actor,
				Name:  fmt.Sprintf("step-%d", i),
				Run: func(context.Context) error {
					mu.Lock()
					seen[actor] = append(seen[actor], i)
					mu.Unlock()
					return nil
				},
			})
		}
	}

	results := Run(context.Background(), 4, zerolog.Nop(), steps)
	if len(results) != len(steps) {
		t.Fatalf("expected %d results, got %d", len(steps), len(results))
	}
	for actor, order := range seen {
		for i, v := range order {
			if v != i {
				t.Fatalf("actor %s ran steps out of order: %v", actor, order)
			}
		}
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestDispatcher_ResultsInEnqueueOrder(t *testing.T) {
	boom := errors.New("boom")
	results := Run(context.Background(), 2, zerolog.Nop(), []Step{
		{Actor: "a", Name: "ok", Run: func(context.Context) error { return nil }},
		{Actor: "b", Name: "fail", Run: func(context.Context) error { return boom }},
		{Actor: "c", Name: "panic", Run: func(context.Context) error { panic("kaboom") }},
	})

	if results[0].Name != "ok" || results[0].Err != nil {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if !errors.Is(results[1].Err, boom) {
		t.Fatalf("expected boom, got %v", results[1].Err)
	}
	if results[2].Err == nil {
		t.Fatalf("expected panic to be reported")
	}
	if got := len(Failed(results)); got != 2 {
		t.Fatalf("expected 2 failures, got %d", got)
	}
}

func TestDispatcher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	results := Run(ctx, 1, zerolog.Nop(), []Step{
		{Actor: "a", Name: "never", Run: func(context.Context) error { called = true; return nil }},
	})
	if called {
		t.Fatalf("step must not run after cancellation")
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", results[0].Err)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(5, zerolog.Nop())
	for _, actor := range []string{"admin", "user", "super"} {
		first := d.shardIndex(actor)
		for range 10 {
			if d.shardIndex(actor) != first {
				t.Fatalf("shard index for %s is not stable", actor)
			}
		}
		if first < 0 || first >= 5 {
			t.Fatalf("shard index out of range: %d", first)
		}
	}
}
