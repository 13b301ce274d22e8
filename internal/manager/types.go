package manager

import "time"

// State is the lifecycle state of a configuration's backend.
type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateError    State = "error"
	StateDraining State = "draining"

	// Reported only; never stored in the registry.
	StateStopped   State = "stopped"
	StateNotLoaded State = "not_loaded"
)

// Instance is an immutable snapshot of a registry entry.
type Instance struct {
	ModelID string
	Port    int
	State   State
	// Error is the retained failure message for StateError.
	Error  string
	LoadID string
	// Generation distinguishes successive entries for the same id.
	Generation uint64
	PID        int
	Running    bool
	CreatedAt  time.Time
	ReadyAt    time.Time
}

// Status is the externally reported state. A ready entry whose process has
// exited reports as stopped.
func (i Instance) Status() State {
	if i.State == StateReady && !i.Running {
		return StateStopped
	}
	return i.State
}

// Loaded reports whether the snapshot refers to a registry entry.
func (i Instance) Loaded() bool { return i.State != "" && i.State != StateNotLoaded }

type LoadStatus string

const (
	LoadAccepted      LoadStatus = "loading"
	LoadAlreadyLoaded LoadStatus = "already_loaded"
)

// LoadResult describes how a Load call was resolved.
type LoadResult struct {
	Status   LoadStatus
	Instance Instance
}
