//go:build linux

package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// workerScript starts a worker that ignores SIGTERM and records its pid, then
// runs leader as the group leader's remaining body.
func workerScript(pidFile, leader string) string {
	return fmt.Sprintf(`(trap '' TERM; exec sleep 300) >/dev/null 2>&1 </dev/null & echo $! > %s; %s`, pidFile, leader)
}

func shController(script string) *ExecController {
	return &ExecController{
		Command:     []string{"sh", "-c", script},
		BindHost:    "127.0.0.1",
		GracePeriod: 2 * time.Second,
		Logger:      zerolog.Nop(),
	}
}

func readWorkerPID(t *testing.T, path string) int {
	t.Helper()
	var pid int
	require.Eventually(t, func() bool {
		b, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		pid, err = strconv.Atoi(strings.TrimSpace(string(b)))
		return err == nil && pid > 0
	}, 5*time.Second, 20*time.Millisecond, "worker pid not written")
	t.Cleanup(func() { _ = syscall.Kill(pid, syscall.SIGKILL) })
	return pid
}

// processGone treats zombies awaiting their reaper as gone.
func processGone(pid int) bool {
	if err := syscall.Kill(pid, 0); errors.Is(err, syscall.ESRCH) {
		return true
	}
	b, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		return true
	}
	s := string(b)
	i := strings.LastIndexByte(s, ')')
	return i >= 0 && i+2 < len(s) && s[i+2] == 'Z'
}

func TestTerminate_KillsWorkerIgnoringSIGTERM(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	pidFile := filepath.Join(t.TempDir(), "worker.pid")
	c := shController(workerScript(pidFile, `trap 'exit 0' TERM; while :; do sleep 0.1; done`))
	h, err := c.Spawn(testCtx(t), tiny, freePort(t))
	require.NoError(t, err)
	worker := readWorkerPID(t, pidFile)

	start := time.Now()
	require.NoError(t, c.Terminate(h))
	require.False(t, h.Running())
	require.Less(t, time.Since(start), 2*c.GracePeriod)
	require.Eventually(t, func() bool { return processGone(worker) },
		3*time.Second, 20*time.Millisecond, "worker %d survived Terminate", worker)
}

func TestTerminate_ExitedLeaderStillKillsGroup(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	pidFile := filepath.Join(t.TempDir(), "worker.pid")
	c := shController(workerScript(pidFile, `exit 1`))
	h, err := c.Spawn(testCtx(t), tiny, freePort(t))
	require.NoError(t, err)
	worker := readWorkerPID(t, pidFile)

	select {
	case <-h.Exited():
	case <-time.After(10 * time.Second):
		t.Fatal("leader did not exit")
	}
	require.False(t, processGone(worker), "worker should outlive its leader")

	require.NoError(t, c.Terminate(h))
	require.Eventually(t, func() bool { return processGone(worker) },
		3*time.Second, 20*time.Millisecond, "worker %d survived Terminate of an exited leader", worker)
}
