package manager

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/backend"
)

// Registry is the single source of truth for backend instances: at most one
// entry per configuration id. All mutations are lock-scoped; readers receive
// copies.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	gen     uint64
	closed  bool
}

type entry struct {
	inst   Instance
	handle backend.Handle
	cancel context.CancelFunc
	// done is closed when the load task owning this entry has returned.
	done chan struct{}
}

func (e *entry) snapshot() Instance {
	inst := e.inst
	if e.handle != nil {
		inst.PID = e.handle.PID()
		inst.Running = e.handle.Running()
	}
	return inst
}

// unloadClaim is what an unloader or shutdown needs to tear an entry down.
type unloadClaim struct {
	inst   Instance
	handle backend.Handle
	cancel context.CancelFunc
	done   <-chan struct{}
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

func (r *Registry) Get(id string) (Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return Instance{}, false
	}
	return e.snapshot(), true
}

// TryBeginLoad atomically checks for an existing entry and, if none blocks
// the load, inserts a new loading entry. alloc is called only when the load
// is accepted, so rejected attempts consume no port. Error entries and ready
// entries whose process has exited are replaced.
func (r *Registry) TryBeginLoad(id string, alloc func() (int, error), loadID string, cancel context.CancelFunc, done chan struct{}) (Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Instance{}, ErrShuttingDown()
	}
	if e, ok := r.entries[id]; ok {
		switch e.inst.State {
		case StateLoading:
			return Instance{}, alreadyLoadingError{id: id, port: e.inst.Port}
		case StateDraining:
			return Instance{}, unloadingError{id: id}
		case StateReady:
			if e.handle == nil || e.handle.Running() {
				return Instance{}, alreadyLoadedError{inst: e.snapshot()}
			}
		}
	}
	port, err := alloc()
	if err != nil {
		return Instance{}, portsExhaustedError{id: id, err: err}
	}
	r.gen++
	e := &entry{
		inst: Instance{
			ModelID:    id,
			Port:       port,
			State:      StateLoading,
			LoadID:     loadID,
			Generation: r.gen,
			CreatedAt:  time.Now(),
		},
		cancel: cancel,
		done:   done,
	}
	r.entries[id] = e
	return e.snapshot(), nil
}

// current returns the entry for id only if it is still the given generation
// and loading. Caller holds r.mu.
func (r *Registry) current(id string, gen uint64) *entry {
	e, ok := r.entries[id]
	if !ok || e.inst.Generation != gen || e.inst.State != StateLoading {
		return nil
	}
	return e
}

// AttachHandle records the spawned process on a still-loading entry. It
// returns false when the entry was unloaded or replaced meanwhile; the caller
// then owns h and must terminate it.
func (r *Registry) AttachHandle(id string, gen uint64, h backend.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.current(id, gen)
	if e == nil {
		return false
	}
	e.handle = h
	return true
}

// SetState moves a loading entry of generation gen to state. It never
// resurrects an entry that was removed, claimed for unload or replaced.
func (r *Registry) SetState(id string, gen uint64, state State, msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.current(id, gen)
	if e == nil {
		return false
	}
	e.inst.State = state
	e.inst.Error = msg
	if state == StateReady {
		e.inst.ReadyAt = time.Now()
	}
	return true
}

// BeginUnload marks the entry draining and hands its teardown to the caller.
func (r *Registry) BeginUnload(id string) (unloadClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return unloadClaim{}, ErrNotLoaded(id)
	}
	if e.inst.State == StateDraining {
		return unloadClaim{}, unloadingError{id: id}
	}
	e.inst.State = StateDraining
	return e.claim(), nil
}

func (e *entry) claim() unloadClaim {
	return unloadClaim{inst: e.snapshot(), handle: e.handle, cancel: e.cancel, done: e.done}
}

// Remove deletes the entry if it is still generation gen.
func (r *Registry) Remove(id string, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.inst.Generation != gen {
		return false
	}
	delete(r.entries, id)
	return true
}

// Drain closes the registry to new loads, marks every entry draining and
// returns their claims. Entries already draining are included so their
// processes are terminated even if the concurrent unload is abandoned.
func (r *Registry) Drain() []unloadClaim {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	out := make([]unloadClaim, 0, len(r.entries))
	for _, e := range r.entries {
		e.inst.State = StateDraining
		out = append(out, e.claim())
	}
	return out
}

// Clear removes every entry. Used after shutdown has terminated them.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entries)
}

// SnapshotAll returns copies of all entries ordered by id.
func (r *Registry) SnapshotAll() []Instance {
	r.mu.RLock()
	out := make([]Instance, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.snapshot())
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ModelID < out[j].ModelID })
	return out
}

// Done returns the completion channel of the load task owning id's entry.
func (r *Registry) Done(id string) (<-chan struct{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.done, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
