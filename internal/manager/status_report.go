package manager

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

// Status returns the registry snapshot for id, or a not_loaded instance when
// the configuration is known but has no entry.
func (m *Manager) Status(id string) (Instance, error) {
	if _, ok := m.catalog.Lookup(id); !ok {
		return Instance{}, ErrUnknownConfiguration(id, m.catalog.IDs())
	}
	inst, ok := m.reg.Get(id)
	if !ok {
		return Instance{ModelID: id, State: StateNotLoaded}, nil
	}
	return inst, nil
}

// Snapshot returns every registry entry ordered by id.
func (m *Manager) Snapshot() []Instance { return m.reg.SnapshotAll() }

// serverURL is the published backend root; backendURL adds the OpenAI API prefix.
func (m *Manager) serverURL(port int) string {
	return "http://" + hostPort(m.publicHost, port)
}

func (m *Manager) backendURL(port int) string { return m.serverURL(port) + "/v1" }

func hostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// BackendURL returns the address the manager uses to reach id's backend. It
// is rebuilt from the registry on every call so an unload/reload cycle never
// leaves callers with a stale target.
func (m *Manager) BackendURL(id string) (*url.URL, error) {
	if _, ok := m.catalog.Lookup(id); !ok {
		return nil, ErrUnknownConfiguration(id, m.catalog.IDs())
	}
	inst, ok := m.reg.Get(id)
	if !ok {
		return nil, ErrNotLoaded(id)
	}
	if inst.Status() != StateReady {
		return nil, notReadyError{id: id, state: inst.Status()}
	}
	return &url.URL{Scheme: "http", Host: hostPort(m.probeHost, inst.Port)}, nil
}

// InstanceStatus converts a snapshot to its API form.
func (m *Manager) InstanceStatus(inst Instance) types.InstanceStatus {
	out := types.InstanceStatus{
		ModelID:   inst.ModelID,
		Status:    string(inst.Status()),
		IsRunning: inst.Running,
		PID:       inst.PID,
		Error:     inst.Error,
		LoadID:    inst.LoadID,
	}
	if mdl, ok := m.catalog.Lookup(inst.ModelID); ok {
		out.ModelInfo = &mdl
	}
	if inst.Loaded() {
		port := inst.Port
		out.Port = &port
		out.URL = m.backendURL(inst.Port)
		out.VLLMURL = m.serverURL(inst.Port)
		out.CreatedUnix = inst.CreatedAt.Unix()
		if !inst.ReadyAt.IsZero() {
			out.ReadyUnix = inst.ReadyAt.Unix()
		}
	}
	return out
}

// Summary builds the manager-wide report for /status.
func (m *Manager) Summary() types.StatusResponse {
	resp := types.StatusResponse{
		ManagerStatus:     "running",
		ManagerPort:       m.managerPort,
		BasePort:          m.ports.Base(),
		NextPort:          m.ports.Peek(),
		AvailableCount:    m.catalog.Len(),
		UptimeSeconds:     int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:    time.Now().Unix(),
		LoadsTotal:        m.loadsTotal.Load(),
		LoadFailuresTotal: m.loadFailures.Load(),
	}
	if m.Closing() {
		resp.ManagerStatus = "shutting_down"
	}
	for _, inst := range m.reg.SnapshotAll() {
		resp.LoadedCount++
		if inst.Running {
			resp.RunningCount++
		}
		switch inst.Status() {
		case StateLoading:
			resp.LoadingCount++
		case StateReady:
			resp.ReadyCount++
		case StateError:
			resp.ErrorCount++
		}
	}
	return resp
}
