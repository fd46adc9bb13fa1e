// Defines the Request struct that models an individual request entering the
// simulation, and the Result record a server appends once it has processed one.

package sim

import "fmt"

// Request is a single unit of work submitted to a server: an immutable
// (id, size) pair. IDs are 1-based and dense across one experiment; Size is
// the request payload in bytes.
type Request struct {
	ID   int     // 1-based request identifier, dense across the experiment
	Size float64 // payload size in bytes (> 0)
}

func (r Request) String() string {
	return fmt.Sprintf("req#%d(%.1fB)", r.ID, r.Size)
}

// Result records the completion of one request on one server.
// Latency is the deterministic processing time size/bandwidth; Elapsed is the
// server's accumulated busy time (sum of latencies of everything it has
// processed so far, this request included), which is what makes per-server
// timing reproducible independent of wall-clock scheduling.
type Result struct {
	RequestID int     // the request that completed
	Server    string  // name of the server that processed it
	Latency   float64 // processing time in seconds (size / bandwidth)
	Elapsed   float64 // server busy time in seconds when this request finished
}
