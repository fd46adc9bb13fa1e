// Package sim provides the core load-balancing policy simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - server.go: the Server model — pending queue, worker loop, drain-before-stop
//   - policy.go: the Policy interface and the four routing policies
//   - harness.go: one policy run — reset, workers, dispatch, drain, metrics
//
// # Architecture
//
// An Experiment (experiment.go) runs each configured policy sequentially over
// the same server pool and the same request-size sequence. Every run goes
// through a Harness: one goroutine per server drains its pending queue while
// a single dispatcher goroutine routes requests via the active policy. After
// the dispatcher's last enqueue it closes every server; workers drain what is
// already queued and exit, and the harness reduces the post-run server state
// into a Metrics tuple (metrics.go).
//
// Sub-packages consume the engine's read-only outputs:
//   - sim/trace/: per-request outcomes accumulated across all policy runs
//   - sim/report/: JSON persistence and chart rendering of a Report
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - Policy: select the server for the next request given the live pool
//   - SizeSampler: generate the request-size workload (workload.go)
package sim
