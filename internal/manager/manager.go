package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/backend"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/catalog"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/ports"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

type Manager struct {
	catalog *catalog.Catalog
	ports   *ports.Allocator
	ctrl    backend.Controller
	prober  backend.Prober
	reg     *Registry

	log       zerolog.Logger
	publisher EventPublisher
	bus       *Broadcaster

	readyTimeout time.Duration
	publicHost   string
	probeHost    string
	managerPort  int
	startTime    time.Time

	// lifeMu orders tasks.Add against Shutdown's tasks.Wait.
	lifeMu  sync.Mutex
	closing bool
	tasks   sync.WaitGroup

	loadsTotal   atomic.Uint64
	loadFailures atomic.Uint64
}

// New returns a manager over cat using the default vLLM controller and prober.
func New(cat *catalog.Catalog, managerPort int) *Manager {
	return NewWithConfig(ManagerConfig{Catalog: cat, ManagerPort: managerPort})
}

func (m *Manager) Catalog() *catalog.Catalog { return m.catalog }

func (m *Manager) Registry() *Registry { return m.reg }

func (m *Manager) ListModels() []types.Model { return m.catalog.List() }

// SetEventPublisher installs an additional publisher; nil restores the default.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.lifeMu.Lock()
	m.publisher = p
	m.lifeMu.Unlock()
}

// Subscribe streams lifecycle events until the returned func is called.
func (m *Manager) Subscribe() (<-chan Event, func()) { return m.bus.Subscribe() }

func (m *Manager) publish(name, modelID string, fields map[string]any) {
	e := Event{Name: name, ModelID: modelID, Time: time.Now(), Fields: fields}
	m.lifeMu.Lock()
	p := m.publisher
	m.lifeMu.Unlock()
	p.Publish(e)
	m.bus.Publish(e)
}

// track reserves a background task slot unless the manager is shutting down.
func (m *Manager) track() bool {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()
	if m.closing {
		return false
	}
	m.tasks.Add(1)
	return true
}

// Wait blocks until every background load task has returned.
func (m *Manager) Wait() { m.tasks.Wait() }
