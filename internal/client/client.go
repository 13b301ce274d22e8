// Package client is a Go client for the vllmd control-plane API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

const (
	apiKeyHeader        = "X-API-Key"
	defaultPollInterval = 5 * time.Second
)

// Client talks to one vllmd instance.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	// PollInterval spaces status checks in WaitReady.
	PollInterval time.Duration
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response decoded from the server's error payload.
type APIError struct {
	StatusCode      int
	Message         string
	AvailableModels []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vllmd: %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == code
}

// ErrLoadFailed is returned by WaitReady when the backend lands in the error state.
var ErrLoadFailed = errors.New("vllmd: load failed")

func (c *Client) do(ctx context.Context, method, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return 0, err
	}
	if c.APIKey != "" {
		req.Header.Set(apiKeyHeader, c.APIKey)
	}
	req.Header.Set("Accept", "application/json")
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return resp.StatusCode, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er types.ErrorResponse
		if json.Unmarshal(body, &er) != nil || er.Error == "" {
			er.Error = strings.TrimSpace(string(body))
		}
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: er.Error, AvailableModels: er.AvailableModels}
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func modelPath(id, action string) string {
	return "/models/" + url.PathEscape(id) + "/" + action
}

// Available lists the catalog.
func (c *Client) Available(ctx context.Context) (types.ModelsResponse, error) {
	var out types.ModelsResponse
	_, err := c.do(ctx, http.MethodGet, "/models/available", &out)
	return out, err
}

// Loaded lists registered instances.
func (c *Client) Loaded(ctx context.Context) (types.LoadedResponse, error) {
	var out types.LoadedResponse
	_, err := c.do(ctx, http.MethodGet, "/models/loaded", &out)
	return out, err
}

// Status reports one configuration, loaded or not.
func (c *Client) Status(ctx context.Context, id string) (types.InstanceStatus, error) {
	var out types.InstanceStatus
	_, err := c.do(ctx, http.MethodGet, modelPath(id, "status"), &out)
	return out, err
}

// Summary returns the manager-wide status.
func (c *Client) Summary(ctx context.Context) (types.StatusResponse, error) {
	var out types.StatusResponse
	_, err := c.do(ctx, http.MethodGet, "/status", &out)
	return out, err
}

// Load requests a load and returns without waiting for readiness.
func (c *Client) Load(ctx context.Context, id string) (types.LoadResponse, error) {
	var out types.LoadResponse
	_, err := c.do(ctx, http.MethodPost, modelPath(id, "load"), &out)
	return out, err
}

func (c *Client) Unload(ctx context.Context, id string) (types.UnloadResponse, error) {
	var out types.UnloadResponse
	_, err := c.do(ctx, http.MethodPost, modelPath(id, "unload"), &out)
	return out, err
}

// WaitReady polls the status of id until it is ready, fails, disappears or
// ctx ends.
func (c *Client) WaitReady(ctx context.Context, id string) (types.InstanceStatus, error) {
	interval := c.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		st, err := c.Status(ctx, id)
		if err != nil {
			return st, err
		}
		switch st.Status {
		case "ready":
			return st, nil
		case "error":
			return st, fmt.Errorf("%w: %s", ErrLoadFailed, st.Error)
		case "not_loaded", "stopped":
			return st, fmt.Errorf("vllmd: %s is %s", id, st.Status)
		}
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-t.C:
		}
	}
}

// LoadAndWait loads id and blocks until its backend is ready.
func (c *Client) LoadAndWait(ctx context.Context, id string) (types.InstanceStatus, error) {
	if _, err := c.Load(ctx, id); err != nil && !IsStatus(err, http.StatusConflict) {
		return types.InstanceStatus{}, err
	}
	return c.WaitReady(ctx, id)
}
