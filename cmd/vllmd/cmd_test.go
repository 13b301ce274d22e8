package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/apikey"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VLLMD_CONFIG", "")
	t.Setenv("VLLMD_API_KEY", "")
	t.Setenv("VLLMD_URL", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogCmd_Default(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "qwen-14b-fast")
}

func TestCatalogCmd_JSONAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`models:
  - id: small
    name: org/small
    max_model_len: 4096
`), 0o644))

	out, err := run(t, "catalog", "--file", path, "--json")
	require.NoError(t, err)
	var models []types.Model
	require.NoError(t, json.Unmarshal([]byte(out), &models))
	require.Len(t, models, 1)
	assert.Equal(t, "small", models[0].ID)

	out, err = run(t, "catalog", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 configurations OK")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("models:\n  - id: x\n"), 0o644))
	_, err = run(t, "catalog", "validate", bad)
	assert.Error(t, err)
}

func TestKeygenCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "api_key")

	out, err := run(t, "keygen", "--api-key-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "API key saved to: "+path)
	first, err := apikey.ReadFile(path)
	require.NoError(t, err)

	_, err = run(t, "keygen", "--api-key-file", path)
	require.Error(t, err)

	_, err = run(t, "keygen", "--api-key-file", path, "--force")
	require.NoError(t, err)
	second, err := apikey.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestClientCmds_UseKeyFileAndURL(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "api_key")
	require.NoError(t, apikey.WriteFile(keyPath, "file-key"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "file-key" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Invalid API key"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/models/fast/load":
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"status":"loading","model_id":"fast","port":8002}`))
		case r.URL.Path == "/status":
			_, _ = w.Write([]byte(`{"manager_status":"running","loaded_models_count":0}`))
		case r.URL.Path == "/models/nope/status":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"model configuration not found: nope"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := run(t, "load", "fast", "--url", srv.URL, "--api-key-file", keyPath)
	require.NoError(t, err)
	var lr types.LoadResponse
	require.NoError(t, json.Unmarshal([]byte(out), &lr))
	assert.Equal(t, 8002, lr.Port)

	out, err = run(t, "status", "--url", srv.URL, "--api-key-file", keyPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"manager_status": "running"`)

	_, err = run(t, "status", "nope", "--url", srv.URL, "--api-key-file", keyPath)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"))

	_, err = run(t, "status", "--url", srv.URL, "--api-key", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestClientCmds_NoKey(t *testing.T) {
	_, err := run(t, "available", "--url", "http://127.0.0.1:1",
		"--api-key-file", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key")
}
