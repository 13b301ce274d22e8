package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/backend"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

// maxErrorTail bounds the backend output retained in an error message.
const maxErrorTail = 2048

// Load accepts a load of configuration id and returns without waiting for
// the backend. Spawning and readiness probing run on a tracked background
// task whose outcome is observable through Status.
//
// A ready, running instance yields LoadAlreadyLoaded. A load already in
// flight yields an AlreadyLoading error.
func (m *Manager) Load(ctx context.Context, id string) (LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}
	mdl, ok := m.catalog.Lookup(id)
	if !ok {
		return LoadResult{}, ErrUnknownConfiguration(id, m.catalog.IDs())
	}
	if !m.track() {
		return LoadResult{}, ErrShuttingDown()
	}
	taskCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	inst, err := m.reg.TryBeginLoad(id, m.ports.Next, uuid.NewString(), cancel, done)
	if err != nil {
		cancel()
		m.tasks.Done()
		var loaded alreadyLoadedError
		if errors.As(err, &loaded) {
			return LoadResult{Status: LoadAlreadyLoaded, Instance: loaded.inst}, nil
		}
		if IsPortsExhausted(err) {
			m.log.Error().Str("model", id).Int("base_port", m.ports.Base()).Err(err).Msg("load rejected")
		}
		return LoadResult{}, err
	}
	m.loadsTotal.Add(1)
	m.log.Info().Str("event", EventLoadAccepted).Str("model", id).Int("port", inst.Port).
		Str("load_id", inst.LoadID).Msg("load accepted")
	m.publish(EventLoadAccepted, id, map[string]any{"port": inst.Port, "load_id": inst.LoadID})
	m.refreshInstanceGauge()

	go m.runLoad(taskCtx, mdl, inst, done)
	return LoadResult{Status: LoadAccepted, Instance: inst}, nil
}

// runLoad drives one accepted load to ready, error or abandonment. It only
// ever transitions the registry entry of its own generation, and only from
// loading, so an unload that raced it is never undone.
func (m *Manager) runLoad(ctx context.Context, mdl types.Model, inst Instance, done chan struct{}) {
	defer m.tasks.Done()
	defer close(done)
	defer m.refreshInstanceGauge()

	start := time.Now()
	log := m.log.With().Str("model", mdl.ID).Int("port", inst.Port).Str("load_id", inst.LoadID).Logger()

	m.publish(EventSpawnStart, mdl.ID, map[string]any{"port": inst.Port})
	h, err := m.ctrl.Spawn(ctx, mdl, inst.Port)
	if err != nil {
		if ctx.Err() != nil {
			m.abandon(log, inst, start, "canceled before spawn")
			return
		}
		m.publish(EventSpawnError, mdl.ID, map[string]any{"error": err.Error()})
		m.fail(log, inst, start, fmt.Sprintf("spawn failed: %v", err))
		return
	}
	if !m.reg.AttachHandle(mdl.ID, inst.Generation, h) {
		// Unloaded while spawning; nobody else knows about this process.
		m.terminate(log, h)
		m.abandon(log, inst, start, "unloaded during spawn")
		return
	}
	log.Info().Str("event", EventSpawnStart).Int("pid", h.PID()).Msg("backend spawned; probing readiness")

	if err := m.awaitReady(ctx, h, inst.Port); err != nil {
		if ctx.Err() != nil {
			// The unloader owns the attached handle.
			m.abandon(log, inst, start, "unloaded during readiness wait")
			return
		}
		m.terminate(log, h)
		m.fail(log, inst, start, err.Error())
		return
	}
	if !m.reg.SetState(mdl.ID, inst.Generation, StateReady, "") {
		m.abandon(log, inst, start, "unloaded before ready")
		return
	}
	dur := time.Since(start)
	loadsTotal.WithLabelValues(outcomeReady).Inc()
	loadDuration.WithLabelValues(outcomeReady).Observe(dur.Seconds())
	log.Info().Str("event", EventLoadReady).Int("pid", h.PID()).Dur("took", dur).Msg("backend ready")
	m.publish(EventLoadReady, mdl.ID, map[string]any{"port": inst.Port, "pid": h.PID(), "url": m.backendURL(inst.Port)})
}

// awaitReady probes until ready, the process exits, the timeout passes or
// ctx is canceled, returning a descriptive error for the latter three.
func (m *Manager) awaitReady(ctx context.Context, h backend.Handle, port int) error {
	pctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-h.Exited():
			cancel()
		case <-pctx.Done():
		}
	}()
	if m.prober.AwaitReady(pctx, port, m.readyTimeout) {
		return nil
	}
	select {
	case <-h.Exited():
		msg := fmt.Sprintf("%v: %v", backend.ErrExitedEarly, h.ExitErr())
		if out := tailOf(h.Output(), maxErrorTail); out != "" {
			msg += "; output tail: " + out
		}
		return errors.New(msg)
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w (%s on port %d)", backend.ErrReadinessTimeout, m.readyTimeout, port)
}

func (m *Manager) fail(log zerolog.Logger, inst Instance, start time.Time, msg string) {
	if !m.reg.SetState(inst.ModelID, inst.Generation, StateError, msg) {
		m.abandon(log, inst, start, "unloaded after failure")
		return
	}
	m.loadFailures.Add(1)
	loadsTotal.WithLabelValues(outcomeError).Inc()
	loadDuration.WithLabelValues(outcomeError).Observe(time.Since(start).Seconds())
	log.Error().Str("event", EventLoadError).Str("error", msg).Msg("load failed")
	m.publish(EventLoadError, inst.ModelID, map[string]any{"error": msg, "port": inst.Port})
}

func (m *Manager) abandon(log zerolog.Logger, inst Instance, start time.Time, reason string) {
	loadsTotal.WithLabelValues(outcomeAbandoned).Inc()
	loadDuration.WithLabelValues(outcomeAbandoned).Observe(time.Since(start).Seconds())
	log.Info().Str("event", EventLoadAbandoned).Str("reason", reason).Msg("load abandoned")
	m.publish(EventLoadAbandoned, inst.ModelID, map[string]any{"reason": reason, "port": inst.Port})
}

// terminate stops h, logging rather than returning failures.
func (m *Manager) terminate(log zerolog.Logger, h backend.Handle) {
	if h == nil {
		return
	}
	if err := m.ctrl.Terminate(h); err != nil {
		log.Warn().Int("pid", h.PID()).Err(err).Msg("backend termination failed")
	}
}

// AwaitLoad blocks until the load task for id finishes (or ctx ends) and
// returns the resulting status.
func (m *Manager) AwaitLoad(ctx context.Context, id string) (Instance, error) {
	done, ok := m.reg.Done(id)
	if !ok {
		return m.Status(id)
	}
	select {
	case <-done:
	case <-ctx.Done():
		return Instance{}, ctx.Err()
	}
	return m.Status(id)
}

func tailOf(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		s = s[len(s)-n:]
		for i := 0; i < utf8.UTFMax && s != "" && !utf8.RuneStart(s[0]); i++ {
			s = s[1:]
		}
	}
	return s
}
