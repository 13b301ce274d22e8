package manager

import (
	"context"
	"time"
)

// UnloadResult describes the instance that was torn down.
type UnloadResult struct {
	Instance Instance
}

// Unload terminates id's backend and removes its registry entry. It is safe
// while the instance is still loading: the in-flight load task is canceled
// and waited for, so it can neither publish ready nor leave a process behind.
// Termination failures are logged; once attempted, the unload succeeds.
func (m *Manager) Unload(ctx context.Context, id string) (UnloadResult, error) {
	c, err := m.reg.BeginUnload(id)
	if err != nil {
		return UnloadResult{}, err
	}
	log := m.log.With().Str("model", id).Int("port", c.inst.Port).Logger()
	start := time.Now()
	log.Info().Str("event", EventUnloadStart).Str("state", string(c.inst.State)).Msg("unloading")
	m.publish(EventUnloadStart, id, map[string]any{"port": c.inst.Port})
	m.refreshInstanceGauge()

	if c.cancel != nil {
		c.cancel()
	}
	m.terminate(log, c.handle)
	select {
	case <-c.done:
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Msg("unload stopped waiting for load task")
	}
	m.reg.Remove(id, c.inst.Generation)
	m.refreshInstanceGauge()
	unloadsTotal.Inc()

	log.Info().Str("event", EventUnloadDone).Dur("took", time.Since(start)).Msg("unloaded")
	m.publish(EventUnloadDone, id, map[string]any{"port": c.inst.Port})
	return UnloadResult{Instance: c.inst}, nil
}
