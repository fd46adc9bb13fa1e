package trace

import "fmt"

// ExperimentTrace holds one RequestTrace per request, indexed by the dense
// 1-based request IDs. All policy runs of an experiment record into the same
// trace, so after the experiment every request carries one Record per policy.
type ExperimentTrace struct {
	requests []RequestTrace
}

// New creates a trace for the given request sizes. Request i (0-based) is
// assigned ID i+1, matching the dispatcher's numbering.
func New(sizes []float64) *ExperimentTrace {
	requests := make([]RequestTrace, len(sizes))
	for i, size := range sizes {
		requests[i] = RequestTrace{RequestID: i + 1, Size: size}
	}
	return &ExperimentTrace{requests: requests}
}

// Record appends an outcome record to the request with the given ID.
// An out-of-range ID is a programmer error (the harness only ever completes
// requests the dispatcher numbered) and panics.
func (t *ExperimentTrace) Record(requestID int, rec Record) {
	if requestID < 1 || requestID > len(t.requests) {
		panic(fmt.Sprintf("trace.Record: request ID %d out of range [1, %d]", requestID, len(t.requests)))
	}
	rt := &t.requests[requestID-1]
	rt.Records = append(rt.Records, rec)
}

// Len returns the number of traced requests.
func (t *ExperimentTrace) Len() int {
	return len(t.requests)
}

// Request returns the trace for the request with the given 1-based ID.
func (t *ExperimentTrace) Request(requestID int) RequestTrace {
	if requestID < 1 || requestID > len(t.requests) {
		panic(fmt.Sprintf("trace.Request: request ID %d out of range [1, %d]", requestID, len(t.requests)))
	}
	return t.requests[requestID-1]
}

// Requests returns all request traces in ID order. Read-only: callers must
// not mutate the returned slice.
func (t *ExperimentTrace) Requests() []RequestTrace {
	return t.requests
}
