package backend

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Defaults for HTTPProber.
const (
	DefaultHealthPath      = "/health"
	DefaultPollInterval    = 2 * time.Second
	DefaultReadyTimeout    = 300 * time.Second
	defaultProbeReqTimeout = 2 * time.Second
	defaultProbeHost       = "127.0.0.1"
)

// HTTPProber polls GET http://Host:port/Path until a 2xx response.
type HTTPProber struct {
	Host           string
	Path           string
	Interval       time.Duration
	RequestTimeout time.Duration
	Client         *http.Client
}

// HealthURL returns the probe target for port.
func (p *HTTPProber) HealthURL(port int) string {
	host := p.Host
	if host == "" {
		host = defaultProbeHost
	}
	path := p.Path
	if path == "" {
		path = DefaultHealthPath
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + path
}

// AwaitReady checks immediately and then on every interval. Connection
// errors and non-2xx responses are retried; only the deadline or ctx
// cancellation ends the loop with false.
func (p *HTTPProber) AwaitReady(ctx context.Context, port int, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := p.HealthURL(port)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if p.check(ctx, url) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}
	}
}

func (p *HTTPProber) check(ctx context.Context, url string) bool {
	rt := p.RequestTimeout
	if rt <= 0 {
		rt = defaultProbeReqTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, rt)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	cli := p.Client
	if cli == nil {
		cli = http.DefaultClient
	}
	resp, err := cli.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
