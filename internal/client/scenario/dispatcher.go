// Package scenario runs multi-actor steps concurrently while keeping the steps
// of each actor in order.
package scenario

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mshlentov/cinescope/internal/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Step is one action performed by an actor.
type Step struct {
	Actor string
	Name  string
	Run   func(ctx context.Context) error
}

// Result is the outcome of one step.
type Result struct {
	Actor    string
	Name     string
	Err      error
	Duration time.Duration
}

type job struct {
	index int
	step  Step
}

// Dispatcher routes steps to a fixed set of workers using consistent hashing
// on the actor name, guaranteeing per-actor ordering.
type Dispatcher struct {
	workers []chan job
	log     zerolog.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	results []Result
	next    int
	started bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches the workers. Steps still queued when ctx is cancelled are
// reported with ctx.Err().
func (d *Dispatcher) Start(ctx context.Context) {
	d.started = true
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a step to the worker responsible for its actor.
func (d *Dispatcher) Enqueue(step Step) {
	d.mu.Lock()
	idx := d.next
	d.next++
	d.results = append(d.results, Result{Actor: step.Actor, Name: step.Name})
	d.mu.Unlock()

	shard := d.shardIndex(step.Actor)
	metrics.ScenarioQueueDepth.WithLabelValues(strconv.Itoa(shard)).Inc()
	d.workers[shard] <- job{index: idx, step: step}
}

// Wait closes the queues, waits for every worker and returns the results in
// enqueue order.
func (d *Dispatcher) Wait() []Result {
	if !d.started {
		panic("scenario: Wait called before Start")
	}
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Result(nil), d.results...)
}

// Run is Start, Enqueue for every step, and Wait.
func Run(ctx context.Context, workers int, log zerolog.Logger, steps []Step) []Result {
	d := NewDispatcher(workers, log)
	d.Start(ctx)
	for _, s := range steps {
		d.Enqueue(s)
	}
	return d.Wait()
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// shardIndex maps an actor deterministically to a worker index.
func (d *Dispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	defer d.wg.Done()
	depth := metrics.ScenarioQueueDepth.WithLabelValues(strconv.Itoa(id))

	for j := range ch {
		depth.Dec()
		res := d.execute(ctx, j.step)
		if res.Err != nil {
			metrics.ScenarioStepsTotal.WithLabelValues("failure").Inc()
			d.log.Error().Err(res.Err).
				Str("actor", j.step.Actor).
				Str("step", j.step.Name).
				Int("worker_id", id).
				Msg("scenario step failed")
		} else {
			metrics.ScenarioStepsTotal.WithLabelValues("success").Inc()
		}

		d.mu.Lock()
		d.results[j.index] = res
		d.mu.Unlock()
	}
}

func (d *Dispatcher) execute(ctx context.Context, s Step) (res Result) {
	res = Result{Actor: s.Actor, Name: s.Name}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("step %s/%s panicked: %v", s.Actor, s.Name, p)
		}
	}()
	res.Err = s.Run(ctx)
	return res
}
