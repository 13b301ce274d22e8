package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestClient_SendsKeyAndDecodes(t *testing.T) {
	var gotKey atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.Header.Get(apiKeyHeader))
		switch r.URL.Path {
		case "/models/available":
			writeJSON(w, 200, types.ModelsResponse{Models: []types.Model{{ID: "a"}}, Count: 1})
		case "/models/a/load":
			assert.Equal(t, http.MethodPost, r.Method)
			writeJSON(w, 202, types.LoadResponse{Status: "loading", ModelID: "a", Port: 8002})
		case "/models/a/unload":
			writeJSON(w, 200, types.UnloadResponse{Status: "unloaded", ModelID: "a", Port: 8002})
		case "/status":
			writeJSON(w, 200, types.StatusResponse{ManagerStatus: "running"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "k1")
	av, err := c.Available(ctx(t))
	require.NoError(t, err)
	assert.Equal(t, 1, av.Count)
	assert.Equal(t, "k1", gotKey.Load())

	lr, err := c.Load(ctx(t), "a")
	require.NoError(t, err)
	assert.Equal(t, 8002, lr.Port)

	ur, err := c.Unload(ctx(t), "a")
	require.NoError(t, err)
	assert.Equal(t, "unloaded", ur.Status)

	s, err := c.Summary(ctx(t))
	require.NoError(t, err)
	assert.Equal(t, "running", s.ManagerStatus)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, types.ErrorResponse{Error: "model configuration not found: x", Code: 404, AvailableModels: []string{"a"}})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").Load(ctx(t), "x")
	require.Error(t, err)
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 404, ae.StatusCode)
	assert.Equal(t, []string{"a"}, ae.AvailableModels)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()
	_, err := New(srv.URL, "").Loaded(ctx(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad gateway")
}

func statusServer(t *testing.T, seq []types.InstanceStatus) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var n atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models/a/load":
			writeJSON(w, 202, types.LoadResponse{Status: "loading"})
		case "/models/a/status":
			i := int(n.Add(1)) - 1
			if i >= len(seq) {
				i = len(seq) - 1
			}
			writeJSON(w, 200, seq[i])
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &n
}

func TestWaitReady_PollsUntilReady(t *testing.T) {
	srv, n := statusServer(t, []types.InstanceStatus{{Status: "loading"}, {Status: "loading"}, {Status: "ready", IsRunning: true}})
	c := New(srv.URL, "k")
	c.PollInterval = 10 * time.Millisecond
	st, err := c.LoadAndWait(ctx(t), "a")
	require.NoError(t, err)
	assert.Equal(t, "ready", st.Status)
	assert.EqualValues(t, 3, n.Load())
}

func TestWaitReady_ErrorState(t *testing.T) {
	srv, _ := statusServer(t, []types.InstanceStatus{{Status: "error", Error: "spawn failed"}})
	c := New(srv.URL, "k")
	c.PollInterval = 10 * time.Millisecond
	_, err := c.WaitReady(ctx(t), "a")
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.Contains(t, err.Error(), "spawn failed")
}

func TestWaitReady_ContextDeadline(t *testing.T) {
	srv, _ := statusServer(t, []types.InstanceStatus{{Status: "loading"}})
	c := New(srv.URL, "k")
	c.PollInterval = 10 * time.Millisecond
	cctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.WaitReady(cctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
