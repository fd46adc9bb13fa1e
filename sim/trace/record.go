// Package trace provides the per-request cross-policy trace: for every
// request, the list of (policy, server, latency, elapsed) outcomes
// accumulated across all policy runs of one experiment.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Record captures one request's outcome under one policy run.
type Record struct {
	Policy  string  // policy the run was executed under
	Server  string  // server that processed the request
	Latency float64 // processing latency in seconds
	Elapsed float64 // server busy time in seconds when the request finished
}

// RequestTrace accumulates the outcomes of a single request across policy
// runs, in run order.
type RequestTrace struct {
	RequestID int     // 1-based request identifier
	Size      float64 // request payload size in bytes
	Records   []Record
}
