// Implements the simulation harness: one full run of a single policy against
// the server pool, from reset through drain to metrics collection.

package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RunState tracks where a harness is in its lifecycle.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateResetting RunState = "resetting"
	StateRunning   RunState = "running"
	StateDraining  RunState = "draining"
	StateCompleted RunState = "completed"
)

// Harness drives one policy run: it resets every server, starts one worker
// goroutine per server plus exactly one dispatcher goroutine, submits every
// request in input order through the policy, raises the stop signal after the
// last enqueue, joins all workers, and reduces the post-run server state into
// metrics. A Harness is single-use: construct a new one for each run.
type Harness struct {
	pool   []*Server
	sizes  []float64
	policy Policy

	mu    sync.Mutex
	state RunState
}

// NewHarness prepares a run of policy over pool for the given request sizes.
// Request IDs are assigned 1-based in sizes order.
func NewHarness(pool []*Server, sizes []float64, policy Policy) *Harness {
	if policy == nil {
		panic("NewHarness: policy must not be nil")
	}
	return &Harness{pool: pool, sizes: sizes, policy: policy, state: StateIdle}
}

// State returns the harness's current lifecycle state.
func (h *Harness) State() RunState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Harness) setState(s RunState) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}

// RunResult is the immutable outcome of one completed policy run.
type RunResult struct {
	Policy    string
	Metrics   Metrics
	Latencies Distribution    // distribution over every individual result latency
	Servers   []ServerSummary // per-server reducers, in pool order
	Completed []Result        // every result record, grouped by server in pool order
	Duration  time.Duration   // dispatcher start to last worker exit
}

// Run executes the full state machine. A second call on the same harness is
// a programmer error and panics. An empty pool fails with ErrEmptyServerPool
// before any worker goroutine starts. If the dispatcher fails mid-run (for
// example an invalid request size), the stop signal is still raised so every
// worker drains and exits before the error is returned — no orphaned
// goroutines, no partial results reported.
func (h *Harness) Run() (*RunResult, error) {
	if h.State() != StateIdle {
		panic(fmt.Sprintf("Harness.Run: run already started (state %s)", h.State()))
	}
	if len(h.pool) == 0 {
		return nil, fmt.Errorf("harness: %w", ErrEmptyServerPool)
	}

	h.setState(StateResetting)
	for _, s := range h.pool {
		s.Reset()
	}

	logrus.Debugf("harness: starting %q run, %d servers, %d requests", h.policy.Name(), len(h.pool), len(h.sizes))
	h.setState(StateRunning)
	start := time.Now()

	var g errgroup.Group
	for _, s := range h.pool {
		g.Go(s.Run)
	}
	g.Go(func() error {
		// Close every server once dispatch is over, success or not: the
		// drain-before-stop contract is what lets g.Wait() join the workers.
		defer func() {
			h.setState(StateDraining)
			for _, s := range h.pool {
				s.Close()
			}
		}()
		for i, size := range h.sizes {
			target, err := h.policy.Select(h.pool)
			if err != nil {
				return fmt.Errorf("selecting server for request %d: %w", i+1, err)
			}
			if err := target.Receive(i+1, size); err != nil {
				return fmt.Errorf("dispatching request %d to %s: %w", i+1, target.Name(), err)
			}
		}
		return nil
	})

	err := g.Wait()
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", h.policy.Name(), err)
	}
	h.setState(StateCompleted)

	result := &RunResult{
		Policy:   h.policy.Name(),
		Metrics:  ComputeMetrics(h.pool, duration),
		Servers:  make([]ServerSummary, 0, len(h.pool)),
		Duration: duration,
	}
	var latencies []float64
	for _, s := range h.pool {
		result.Servers = append(result.Servers, SummarizeServer(s))
		for _, r := range s.Results() {
			result.Completed = append(result.Completed, r)
			latencies = append(latencies, r.Latency)
		}
	}
	result.Latencies = NewDistribution(latencies)
	logrus.Infof("harness: %q completed %d requests in %v (avg latency %.3fs, fairness %.4f)",
		result.Policy, len(result.Completed), duration, result.Metrics.AverageLatency, result.Metrics.FairnessIndex)
	return result, nil
}

// RunSimulation is a convenience wrapper: build a harness, run it once.
func RunSimulation(pool []*Server, sizes []float64, policy Policy) (*RunResult, error) {
	return NewHarness(pool, sizes, policy).Run()
}
