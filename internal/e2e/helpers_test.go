package e2e

import (
	"context"
	"net"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/backend"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/catalog"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/client"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/httpapi"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/manager"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

const testKey = "e2e-secret-key"

var tiny = types.Model{ID: "tiny", Name: "org/tiny", MaxModelLen: 2048, VRAM: "1GB"}

// buildFakeBackend compiles the fake vLLM server shared with the backend tests.
func buildFakeBackend(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("short mode")
	}
	if runtime.GOOS == "windows" {
		t.Skip("process signalling differs on windows")
	}
	bin := filepath.Join(t.TempDir(), "fake_vllm_server")
	cmd := exec.Command("go", "build", "-o", bin, "../backend/testdata/fake_vllm_server.go")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build fake backend: %v: %s", err, out)
	}
	return bin
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

type stack struct {
	srv    *httptest.Server
	mgr    *manager.Manager
	client *client.Client
	base   int
}

// newStack wires a manager running the fake backend behind the real HTTP mux.
func newStack(t *testing.T, bin string, env ...string) *stack {
	t.Helper()
	base := freePort(t)
	ctrl := &backend.ExecController{
		Command:     []string{bin},
		BindHost:    "127.0.0.1",
		GracePeriod: 3 * time.Second,
		Env:         env,
		Logger:      zerolog.Nop(),
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Catalog:    catalog.MustNew([]types.Model{tiny}),
		Controller: ctrl,
		Prober: &backend.HTTPProber{
			Host:     "127.0.0.1",
			Path:     "/health",
			Interval: 50 * time.Millisecond,
		},
		BasePort:     base,
		ReadyTimeout: 20 * time.Second,
		PublicHost:   "127.0.0.1",
		ProbeHost:    "127.0.0.1",
	})
	srv := httptest.NewServer(httpapi.NewMux(mgr, httpapi.StaticKey(testKey)))
	t.Cleanup(func() {
		srv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = mgr.Shutdown(ctx)
	})
	c := client.New(srv.URL, testKey)
	c.PollInterval = 50 * time.Millisecond
	return &stack{srv: srv, mgr: mgr, client: c, base: base}
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	t.Cleanup(cancel)
	return ctx
}
