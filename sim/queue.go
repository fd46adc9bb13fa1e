// Implements the pending queue, which holds requests a server has accepted
// but not yet processed. Requests are enqueued by the dispatcher on arrival.

package sim

import (
	"fmt"
	"strings"
)

// PendingQueue is a FIFO queue of requests waiting to be processed by one
// server, with a running byte total so the latency-optimized policy can read
// the backlog without walking the queue.
//
// PendingQueue itself is not goroutine-safe: the owning Server serializes all
// access under its own mutex (single producer, single consumer).
type PendingQueue struct {
	queue []Request // FIFO queue of requests
	bytes float64   // sum of Size over queued requests
}

// Enqueue adds a request to the back of the queue.
func (pq *PendingQueue) Enqueue(r Request) {
	pq.queue = append(pq.queue, r)
	pq.bytes += r.Size
}

// Dequeue removes and returns the request at the front of the queue.
// Returns the zero Request and false if the queue is empty.
func (pq *PendingQueue) Dequeue() (Request, bool) {
	if len(pq.queue) == 0 {
		return Request{}, false
	}
	front := pq.queue[0]
	pq.queue = pq.queue[1:]
	pq.bytes -= front.Size
	return front, true
}

// Len returns the number of requests in the queue.
func (pq *PendingQueue) Len() int {
	return len(pq.queue)
}

// Bytes returns the total payload size of all queued requests.
func (pq *PendingQueue) Bytes() float64 {
	return pq.bytes
}

// Clear empties the queue.
func (pq *PendingQueue) Clear() {
	pq.queue = nil
	pq.bytes = 0
}

func (pq *PendingQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, r := range pq.queue {
		sb.WriteString(fmt.Sprint(r))
		if i < len(pq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
