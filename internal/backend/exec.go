package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/common/fsutil"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

// Defaults applied when the corresponding ExecController fields are unset.
const (
	DefaultGracePeriod = 10 * time.Second
	DefaultBindHost    = "0.0.0.0"
	// pipe copying may outlive the backend when it leaves children holding stdout.
	defaultWaitDelay = 5 * time.Second
	// maxGroupSettle bounds how long workers may outlive a stopped leader.
	maxGroupSettle    = 2 * time.Second
	groupPollInterval = 50 * time.Millisecond
)

var (
	DefaultCommand   = []string{"python", "-m", "vllm.entrypoints.openai.api_server"}
	DefaultExtraArgs = []string{"--dtype", "auto", "--trust-remote-code"}
)

// ExecController runs each backend as a local child process.
type ExecController struct {
	// Command is the executable followed by any fixed leading arguments.
	Command []string
	// ExtraArgs are appended after the per-configuration flags.
	ExtraArgs   []string
	BindHost    string
	GracePeriod time.Duration
	// LogDir, when set, receives a rotating <model-id>.log per backend.
	LogDir string
	// Env entries are added to the inherited environment.
	Env    []string
	Logger zerolog.Logger
}

// NewExecController returns a controller launching the vLLM OpenAI server.
func NewExecController(log zerolog.Logger) *ExecController {
	return &ExecController{
		Command:     append([]string(nil), DefaultCommand...),
		ExtraArgs:   append([]string(nil), DefaultExtraArgs...),
		BindHost:    DefaultBindHost,
		GracePeriod: DefaultGracePeriod,
		Logger:      log,
	}
}

// BuildArgs returns the argument vector (excluding the executable) for m on port.
// The result depends only on the controller settings, m and port.
func (c *ExecController) BuildArgs(m types.Model, port int) []string {
	host := strings.TrimSpace(c.BindHost)
	if host == "" {
		host = DefaultBindHost
	}
	var args []string
	if len(c.Command) > 1 {
		args = append(args, c.Command[1:]...)
	}
	args = append(args,
		"--model", m.Name,
		"--host", host,
		"--port", strconv.Itoa(port),
		"--max-model-len", strconv.Itoa(m.MaxModelLen),
		"--gpu-memory-utilization", strconv.FormatFloat(m.Utilization(), 'f', -1, 64),
	)
	return append(args, c.ExtraArgs...)
}

func (c *ExecController) Spawn(ctx context.Context, m types.Model, port int) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(c.Command) == 0 || strings.TrimSpace(c.Command[0]) == "" {
		return nil, &SpawnError{ModelID: m.ID, Err: errors.New("backend command is empty")}
	}
	bin, err := exec.LookPath(c.Command[0])
	if err != nil {
		return nil, &SpawnError{ModelID: m.ID, Err: err}
	}
	args := c.BuildArgs(m, port)
	cmd := exec.Command(bin, args...)
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	setProcAttr(cmd)
	cmd.WaitDelay = defaultWaitDelay

	tail := newTailBuffer(defaultTailBytes)
	var out io.Writer = tail
	var logFile *lumberjack.Logger
	if c.LogDir != "" {
		dir, err := fsutil.EnsureDir(c.LogDir, 0o755)
		if err != nil {
			return nil, &SpawnError{ModelID: m.ID, Err: err}
		}
		logFile = &lumberjack.Logger{
			Filename:   filepath.Join(dir, m.ID+".log"),
			MaxSize:    50,
			MaxBackups: 3,
			Compress:   true,
		}
		out = io.MultiWriter(tail, logFile)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, &SpawnError{ModelID: m.ID, Err: fmt.Errorf("start %s: %w", bin, err)}
	}
	h := &procHandle{
		cmd:     cmd,
		modelID: m.ID,
		pid:     cmd.Process.Pid,
		port:    port,
		out:     tail,
		done:    make(chan struct{}),
	}
	c.Logger.Info().Str("model", m.ID).Int("pid", h.pid).Int("port", port).
		Str("cmd", bin).Strs("args", args).Msg("backend started")
	go func() {
		err := cmd.Wait()
		if logFile != nil {
			_ = logFile.Close()
		}
		h.mu.Lock()
		h.waitErr = err
		h.mu.Unlock()
		close(h.done)
		c.Logger.Debug().Str("model", m.ID).Int("pid", h.pid).AnErr("exit", err).Msg("backend exited")
	}()
	return h, nil
}

// Terminate sends SIGTERM to the backend's process group, waits up to the
// grace period, then kills it and waits unconditionally. Workers left in the
// group after the leader is gone are killed too, including when the leader
// had already exited. Concurrent calls on the same handle are safe.
func (c *ExecController) Terminate(h Handle) error {
	ph, ok := h.(*procHandle)
	if !ok || ph == nil {
		return fmt.Errorf("terminate: foreign handle %T", h)
	}
	select {
	case <-ph.done:
		return c.reapGroup(ph, 0)
	default:
	}
	grace := c.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	if err := signalTerm(ph.cmd); err != nil && !errors.Is(err, os.ErrProcessDone) {
		c.Logger.Warn().Str("model", ph.modelID).Int("pid", ph.pid).Err(err).Msg("graceful stop signal failed")
	}
	start := time.Now()
	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-ph.done:
		c.Logger.Info().Str("model", ph.modelID).Int("pid", ph.pid).Msg("backend stopped")
		settle := min(grace-time.Since(start), maxGroupSettle)
		return c.reapGroup(ph, settle)
	case <-t.C:
	}
	c.Logger.Warn().Str("model", ph.modelID).Int("pid", ph.pid).Dur("grace", grace).Msg("backend ignored stop signal; killing")
	var kerr error
	if err := killProc(ph.cmd); err != nil && !errors.Is(err, os.ErrProcessDone) {
		kerr = fmt.Errorf("kill pid %d: %w", ph.pid, err)
	}
	<-ph.done
	return kerr
}

// reapGroup gives members of the exited leader's process group up to settle
// to exit on their own, then kills whatever is left.
func (c *ExecController) reapGroup(ph *procHandle, settle time.Duration) error {
	deadline := time.Now().Add(settle)
	for groupAlive(ph.pid) {
		if time.Now().Before(deadline) {
			time.Sleep(groupPollInterval)
			continue
		}
		c.Logger.Warn().Str("model", ph.modelID).Int("pgid", ph.pid).Msg("backend workers outlived it; killing process group")
		if err := killGroup(ph.pid); err != nil {
			return fmt.Errorf("kill process group %d: %w", ph.pid, err)
		}
		return nil
	}
	return nil
}

type procHandle struct {
	cmd     *exec.Cmd
	modelID string
	pid     int
	port    int
	out     *tailBuffer
	done    chan struct{}

	mu      sync.Mutex
	waitErr error
}

func (h *procHandle) PID() int                { return h.pid }
func (h *procHandle) Port() int               { return h.port }
func (h *procHandle) Exited() <-chan struct{} { return h.done }
func (h *procHandle) Output() string          { return h.out.String() }

func (h *procHandle) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

func (h *procHandle) ExitErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.waitErr
}
