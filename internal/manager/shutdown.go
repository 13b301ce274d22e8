package manager

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Shutdown stops accepting loads, terminates every backend in parallel and
// waits for in-flight load tasks. When it returns nil no process spawned by
// this manager is still running.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.lifeMu.Lock()
	m.closing = true
	m.lifeMu.Unlock()

	claims := m.reg.Drain()
	m.log.Info().Str("event", EventShutdown).Int("instances", len(claims)).Msg("shutting down backends")
	m.publish(EventShutdown, "", map[string]any{"instances": len(claims)})

	var g errgroup.Group
	for _, c := range claims {
		c := c
		if c.cancel != nil {
			c.cancel()
		}
		if c.handle == nil {
			continue
		}
		g.Go(func() error {
			if err := m.ctrl.Terminate(c.handle); err != nil {
				m.log.Warn().Str("model", c.inst.ModelID).Int("pid", c.handle.PID()).Err(err).Msg("backend termination failed")
				return err
			}
			return nil
		})
	}
	termErr := g.Wait()

	waited := make(chan struct{})
	go func() {
		m.tasks.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-ctx.Done():
		return ctx.Err()
	}
	m.reg.Clear()
	m.refreshInstanceGauge()
	return termErr
}

// Closing reports whether Shutdown has begun.
func (m *Manager) Closing() bool {
	m.lifeMu.Lock()
	defer m.lifeMu.Unlock()
	return m.closing
}
