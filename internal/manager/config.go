package manager

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/backend"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/catalog"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/ports"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	DefaultManagerPort = 8001
	DefaultBasePort    = DefaultManagerPort + 1
	DefaultPublicHost  = "localhost"
	defaultProbeHost   = "127.0.0.1"
	defaultEventBuffer = 64
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Catalog defaults to catalog.Default().
	Catalog *catalog.Catalog
	// Controller defaults to a backend.ExecController running vLLM.
	Controller backend.Controller
	// Prober defaults to a backend.HTTPProber against ProbeHost.
	Prober backend.Prober
	// Ports defaults to an allocator starting at BasePort.
	Ports       *ports.Allocator
	BasePort    int
	ManagerPort int
	// ReadyTimeout bounds each load's readiness wait.
	ReadyTimeout time.Duration
	// PublicHost is used in published backend URLs.
	PublicHost string
	// ProbeHost is where the manager itself reaches backends (probing, proxying).
	ProbeHost string
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "manager").Logger()
	}
	m := &Manager{
		catalog:      cfg.Catalog,
		ctrl:         cfg.Controller,
		prober:       cfg.Prober,
		ports:        cfg.Ports,
		reg:          NewRegistry(),
		log:          log,
		publisher:    cfg.Publisher,
		bus:          NewBroadcaster(defaultEventBuffer),
		readyTimeout: cfg.ReadyTimeout,
		publicHost:   cfg.PublicHost,
		probeHost:    cfg.ProbeHost,
		managerPort:  cfg.ManagerPort,
		startTime:    time.Now(),
	}
	// Apply defaults if unset
	if m.catalog == nil {
		m.catalog = catalog.Default()
	}
	if m.managerPort <= 0 {
		m.managerPort = DefaultManagerPort
	}
	if m.ports == nil {
		base := cfg.BasePort
		if base <= 0 {
			base = m.managerPort + 1
		}
		m.ports = ports.New(base)
	}
	if m.readyTimeout <= 0 {
		m.readyTimeout = backend.DefaultReadyTimeout
	}
	if m.publicHost == "" {
		m.publicHost = DefaultPublicHost
	}
	if m.probeHost == "" {
		m.probeHost = defaultProbeHost
	}
	if m.ctrl == nil {
		m.ctrl = backend.NewExecController(log)
	}
	if m.prober == nil {
		m.prober = &backend.HTTPProber{Host: m.probeHost}
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	return m
}
