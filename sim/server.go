// Implements the Server: a fixed-bandwidth processing unit with its own
// pending queue and worker loop. The dispatcher is the single producer,
// the server's own worker the single consumer.

package sim

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Server models one backend with a fixed bandwidth. Identity (name,
// bandwidth) is immutable for the lifetime of the experiment; run state
// (pending queue, result history) is cleared by Reset between policy runs so
// that every policy is measured against the same server objects.
//
// Concurrency contract: Receive is called by the dispatcher, Run drains the
// queue on the server's own goroutine. Both synchronize on mu; cond wakes the
// worker when a request arrives or the server is closed. The read-only
// reducers (AvgLatency, AvgTime, TotalRequests, Results) are meant for use
// after Run has returned.
type Server struct {
	name      string
	bandwidth float64 // bytes per second, > 0 always

	mu      sync.Mutex
	cond    *sync.Cond
	pending PendingQueue
	results []Result
	busy    float64 // accumulated processing time in seconds
	closed  bool    // set once by Close; worker drains then exits
}

// NewServer constructs a server with fixed identity. A non-positive bandwidth
// is a programmer error: config validation rejects it before construction.
func NewServer(name string, bandwidth float64) *Server {
	if bandwidth <= 0 {
		logrus.Panicf("NewServer: bandwidth must be positive, got %f for %q", bandwidth, name)
	}
	s := &Server{name: name, bandwidth: bandwidth}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Name returns the server's immutable name.
func (s *Server) Name() string { return s.name }

// Bandwidth returns the server's processing rate in bytes per second.
func (s *Server) Bandwidth() float64 { return s.bandwidth }

// Reset clears the pending queue and result history so the server can be
// reused for the next policy run. Must not be called while Run is active.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Clear()
	s.results = nil
	s.busy = 0
	s.closed = false
}

// Receive enqueues a request for processing. Returns ErrInvalidRequest for a
// non-positive size — source input never produces one, but the queue invariant
// (every queued request yields exactly one positive-latency result) depends on
// rejecting it here. Calling Receive after Close is a programmer error and
// panics, mirroring send-on-closed-channel semantics.
func (s *Server) Receive(id int, size float64) error {
	if size <= 0 {
		return fmt.Errorf("%w: request %d has size %f", ErrInvalidRequest, id, size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic(fmt.Sprintf("Server.Receive: %s received request %d after Close", s.name, id))
	}
	s.pending.Enqueue(Request{ID: id, Size: size})
	s.cond.Signal()
	return nil
}

// Close raises the stop signal. The worker finishes whatever is already
// queued and then exits (drain-before-stop); it never blocks waiting for new
// requests once the signal is up. The dispatcher calls Close only after its
// final Receive has returned, which is what guarantees no request is lost.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Run is the worker body: dequeue, compute latency = size/bandwidth, record
// the result, repeat. On an empty queue it sleeps on the condition variable
// until either a request arrives or Close has been called; queue state and
// the closed flag are read under the same mutex, so a worker can never
// observe the stop signal without also observing the final enqueue that
// preceded it.
func (s *Server) Run() error {
	for {
		s.mu.Lock()
		for s.pending.Len() == 0 && !s.closed {
			s.cond.Wait()
		}
		req, ok := s.pending.Dequeue()
		if !ok {
			// Queue drained and Close observed.
			done := len(s.results)
			s.mu.Unlock()
			logrus.Debugf("server %s: drained, exiting after %d requests", s.name, done)
			return nil
		}
		// The lock is dropped between dequeue and result recording so the
		// dispatcher and the heuristic policies are never blocked behind a
		// draining worker.
		s.mu.Unlock()
		if req.Size <= 0 {
			return fmt.Errorf("%w: server %s dequeued request %d with size %f", ErrWorkerFailure, s.name, req.ID, req.Size)
		}
		latency := req.Size / s.bandwidth
		s.mu.Lock()
		s.busy += latency
		s.results = append(s.results, Result{
			RequestID: req.ID,
			Server:    s.name,
			Latency:   latency,
			Elapsed:   s.busy,
		})
		s.mu.Unlock()
	}
}

// QueueLen returns the current pending-queue length. Used by the
// least-connections policy; the value is stale the moment the lock is
// released, which the policy tolerates.
func (s *Server) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Len()
}

// EstimateLatency returns pending bytes / bandwidth: the wait-plus-service
// time a new request would see joining the back of the queue now. Used by the
// latency-optimized policy; same staleness caveat as QueueLen.
func (s *Server) EstimateLatency() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Bytes() / s.bandwidth
}

// TotalRequests returns the number of requests this server has completed.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// AvgLatency returns the mean processing latency over completed requests,
// or 0 if the server processed nothing.
func (s *Server) AvgLatency() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range s.results {
		sum += r.Latency
	}
	return sum / float64(len(s.results))
}

// AvgTime returns the mean busy-time-at-completion over completed requests,
// or 0 if the server processed nothing.
func (s *Server) AvgTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range s.results {
		sum += r.Elapsed
	}
	return sum / float64(len(s.results))
}

// Results returns a copy of the result history in processing order.
func (s *Server) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Server) String() string {
	return fmt.Sprintf("%s(%.0f B/s)", s.name, s.bandwidth)
}
