package sim

import "errors"

// Sentinel errors for the failure taxonomy. Callers classify failures with
// errors.Is; every propagation step wraps with fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidRequest reports a request with a non-positive size.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptyServerPool reports a policy invoked with no servers to choose from.
	ErrEmptyServerPool = errors.New("empty server pool")

	// ErrUnknownPolicy reports a policy name that is not registered.
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrWorkerFailure reports an unexpected fault inside a server's processing loop.
	ErrWorkerFailure = errors.New("worker failure")
)
