// Package backend starts, stops and health-checks external inference server
// processes. The manager treats each backend as an opaque child process that
// exposes a readiness probe and an HTTP inference API on its assigned port.
package backend

import (
	"context"
	"errors"
	"time"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

var (
	ErrReadinessTimeout = errors.New("backend did not become ready before the deadline")
	ErrExitedEarly      = errors.New("backend exited before becoming ready")
)

// Handle is a live or exited backend process. Handles are owned by the
// manager's registry entry that created them.
type Handle interface {
	PID() int
	Port() int
	// Running reports whether the process has not yet exited.
	Running() bool
	// Exited is closed once the process has exited and been reaped.
	Exited() <-chan struct{}
	// ExitErr returns the wait error after Exited is closed.
	ExitErr() error
	// Output returns the tail of the combined stdout/stderr stream.
	Output() string
}

// Controller launches and terminates backend processes.
type Controller interface {
	Spawn(ctx context.Context, m types.Model, port int) (Handle, error)
	// Terminate stops the process gracefully, then forcibly after a grace
	// period. Terminating an exited handle is a no-op.
	Terminate(h Handle) error
}

// Prober reports whether a backend on port became ready within timeout.
type Prober interface {
	AwaitReady(ctx context.Context, port int, timeout time.Duration) bool
}

// SpawnError wraps a failure to start the backend executable.
type SpawnError struct {
	ModelID string
	Err     error
}

func (e *SpawnError) Error() string { return "spawn " + e.ModelID + ": " + e.Err.Error() }

func (e *SpawnError) Unwrap() error { return e.Err }

// IsSpawnError reports whether err is or wraps a SpawnError.
func IsSpawnError(err error) bool {
	var se *SpawnError
	return errors.As(err, &se)
}
