package manager

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/backend"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/catalog"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

const testBasePort = 18002

var testModels = []types.Model{
	{ID: "fast", Name: "org/fast", MaxModelLen: 4096},
	{ID: "slow", Name: "org/slow", MaxModelLen: 8192},
	{ID: "other", Name: "org/other", MaxModelLen: 2048},
	{ID: "fourth", Name: "org/fourth", MaxModelLen: 2048},
}

// fakeHandle is an in-memory process whose exit is triggered explicitly.
type fakeHandle struct {
	pid, port int
	done      chan struct{}
	once      sync.Once
	exitErr   error
	out       string
}

func newFakeHandle(pid, port int) *fakeHandle {
	return &fakeHandle{pid: pid, port: port, done: make(chan struct{})}
}

func (h *fakeHandle) exit(err error) {
	h.once.Do(func() {
		h.exitErr = err
		close(h.done)
	})
}

func (h *fakeHandle) PID() int                { return h.pid }
func (h *fakeHandle) Port() int               { return h.port }
func (h *fakeHandle) Exited() <-chan struct{} { return h.done }
func (h *fakeHandle) Output() string          { return h.out }

func (h *fakeHandle) ExitErr() error {
	<-h.done
	return h.exitErr
}

func (h *fakeHandle) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// fakeController records spawns and terminations.
type fakeController struct {
	mu          sync.Mutex
	nextPID     int
	spawnErr    error
	exitOnStart error
	output      string
	handles     []*fakeHandle
	terminated  map[int]int

	// When gate is non-nil Spawn signals started and blocks until gate closes.
	gate    chan struct{}
	started chan string
}

func newFakeController() *fakeController {
	return &fakeController{nextPID: 1000, terminated: make(map[int]int), started: make(chan string, 16)}
}

func (c *fakeController) Spawn(ctx context.Context, m types.Model, port int) (backend.Handle, error) {
	c.mu.Lock()
	gate := c.gate
	c.mu.Unlock()
	if gate != nil {
		c.started <- m.ID
		<-gate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.spawnErr != nil {
		return nil, &backend.SpawnError{ModelID: m.ID, Err: c.spawnErr}
	}
	c.nextPID++
	h := newFakeHandle(c.nextPID, port)
	h.out = c.output
	if c.exitOnStart != nil {
		h.exit(c.exitOnStart)
	}
	c.handles = append(c.handles, h)
	return h, nil
}

func (c *fakeController) Terminate(h backend.Handle) error {
	fh := h.(*fakeHandle)
	c.mu.Lock()
	c.terminated[fh.pid]++
	c.mu.Unlock()
	fh.exit(nil)
	return nil
}

func (c *fakeController) spawned() []*fakeHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*fakeHandle(nil), c.handles...)
}

func (c *fakeController) alive() int {
	n := 0
	for _, h := range c.spawned() {
		if h.Running() {
			n++
		}
	}
	return n
}

func (c *fakeController) terminations(pid int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminated[pid]
}

// fakeProber delegates to fn, defaulting to immediately ready.
type fakeProber struct {
	mu      sync.Mutex
	fn      func(ctx context.Context, port int) bool
	started chan int
}

func newFakeProber() *fakeProber { return &fakeProber{started: make(chan int, 16)} }

func (p *fakeProber) set(fn func(ctx context.Context, port int) bool) {
	p.mu.Lock()
	p.fn = fn
	p.mu.Unlock()
}

func (p *fakeProber) AwaitReady(ctx context.Context, port int, timeout time.Duration) bool {
	p.mu.Lock()
	fn := p.fn
	p.mu.Unlock()
	select {
	case p.started <- port:
	default:
	}
	if fn == nil {
		return true
	}
	return fn(ctx, port)
}

// blockUntil returns a probe func that waits for release or ctx and then
// reports result. With ignoreCtx the probe only honours release.
func blockUntil(release <-chan struct{}, result, ignoreCtx bool) func(context.Context, int) bool {
	return func(ctx context.Context, _ int) bool {
		if ignoreCtx {
			<-release
			return result
		}
		select {
		case <-release:
			return result
		case <-ctx.Done():
			return false
		}
	}
}

type testEnv struct {
	m    *Manager
	ctrl *fakeController
	prb  *fakeProber
	pub  *MemoryPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := newFakeController()
	prb := newFakeProber()
	pub := NewMemoryPublisher()
	m := NewWithConfig(ManagerConfig{
		Catalog:      catalog.MustNew(testModels),
		Controller:   ctrl,
		Prober:       prb,
		BasePort:     testBasePort,
		ManagerPort:  testBasePort - 1,
		ReadyTimeout: time.Second,
		Publisher:    pub,
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	})
	return &testEnv{m: m, ctrl: ctrl, prb: prb, pub: pub}
}

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return c
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func recv[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting on channel")
	}
	var zero T
	return zero
}

var errBoom = errors.New("boom")
