// Implements the experiment driver: the same request sequence run once per
// policy over the same server pool, merged into a comparison report.

package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/balance-sim/balance-sim/sim/trace"
)

// Experiment runs every configured policy sequentially over a shared server
// pool and a fixed request sequence. All state lives on the Experiment —
// there are no package-level servers or registries.
type Experiment struct {
	spec  *ExperimentSpec
	pool  []*Server
	sizes []float64
}

// NewExperiment validates the spec, constructs the server pool, and generates
// the request sequence. Validation covers policy names, so an unknown policy
// fails here, before any run starts.
func NewExperiment(spec *ExperimentSpec) (*Experiment, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("experiment config: %w", err)
	}
	pool := make([]*Server, 0, len(spec.Servers))
	for _, s := range spec.Servers {
		pool = append(pool, NewServer(s.Name, s.Bandwidth))
	}
	sampler, err := NewSizeSampler(spec.Requests.Distribution, spec.Seed)
	if err != nil {
		return nil, fmt.Errorf("experiment config: %w", err)
	}
	return &Experiment{
		spec:  spec,
		pool:  pool,
		sizes: GenerateSizes(sampler, spec.Requests.Count),
	}, nil
}

// Pool returns the experiment's server pool in spec order.
func (e *Experiment) Pool() []*Server { return e.pool }

// Sizes returns the generated request sizes in submission order.
func (e *Experiment) Sizes() []float64 { return e.sizes }

// Report is the complete outcome of an experiment: one RunResult per policy
// in spec order, plus the per-request cross-policy trace.
type Report struct {
	Title       string
	Description string
	Servers     []ServerSpec
	Policies    []string
	Runs        []*RunResult
	Trace       *trace.ExperimentTrace
	WallTime    time.Duration // total wall clock across all runs
}

// Run executes one harness run per configured policy, sequentially, reusing
// the same servers (reset between runs) and the same request sequence. A
// fresh policy instance is constructed for every run so rotation counters
// always start at zero. Any run failure aborts the whole experiment: a
// comparison over a partial data set is worse than no comparison.
func (e *Experiment) Run() (*Report, error) {
	report := &Report{
		Title:       e.spec.Title,
		Description: e.spec.Description,
		Servers:     e.spec.Servers,
		Policies:    e.spec.Policies,
		Trace:       trace.New(e.sizes),
	}
	start := time.Now()
	for _, name := range e.spec.Policies {
		policy, err := NewPolicy(name, e.pool)
		if err != nil {
			return nil, fmt.Errorf("constructing policy %q: %w", name, err)
		}
		result, err := NewHarness(e.pool, e.sizes, policy).Run()
		if err != nil {
			return nil, fmt.Errorf("experiment aborted: %w", err)
		}
		for _, r := range result.Completed {
			report.Trace.Record(r.RequestID, trace.Record{
				Policy:  name,
				Server:  r.Server,
				Latency: r.Latency,
				Elapsed: r.Elapsed,
			})
		}
		report.Runs = append(report.Runs, result)
	}
	report.WallTime = time.Since(start)
	logrus.Infof("experiment: %d policies x %d requests over %d servers in %v",
		len(e.spec.Policies), len(e.sizes), len(e.pool), report.WallTime)
	return report, nil
}

// Print writes the per-policy comparison summary in a fixed-width layout.
func (rep *Report) Print(w io.Writer) {
	for _, run := range rep.Runs {
		fmt.Fprintf(w, "%-22s avg latency: %.3f sec  p95: %.3f sec  throughput: %.2f req/sec  fairness: %.4f\n",
			run.Policy, run.Metrics.AverageLatency, run.Latencies.P95, run.Metrics.Throughput, run.Metrics.FairnessIndex)
		for _, s := range run.Servers {
			fmt.Fprintf(w, "    %-10s %6.0f B/s  avg latency: %.3f sec  avg time: %.3f sec  requests: %d\n",
				s.Name, s.Bandwidth, s.AvgLatency, s.AvgTime, s.TotalRequests)
		}
	}
}
