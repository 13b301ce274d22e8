// Package ports hands out backend listen ports from a monotonically
// increasing counter. Ports are never reused within the allocator's lifetime.
package ports

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"
)

// MaxPort is the highest port Next hands out.
const MaxPort = 65535

// ErrExhausted is returned by Next once every port up to MaxPort is used.
var ErrExhausted = errors.New("backend port range exhausted")

// Allocator is safe for concurrent use. The zero value is not usable; call New.
type Allocator struct {
	base int
	next atomic.Int64
}

// New returns an allocator whose first port is base.
func New(base int) *Allocator {
	a := &Allocator{base: base}
	a.next.Store(int64(base))
	return a
}

// Next returns a port no other call has returned, or ErrExhausted past
// MaxPort. It never blocks.
func (a *Allocator) Next() (int, error) {
	for {
		p := a.next.Load()
		if p > MaxPort {
			return 0, fmt.Errorf("%w: next port would be %d", ErrExhausted, p)
		}
		if a.next.CompareAndSwap(p, p+1) {
			return int(p), nil
		}
	}
}

// Remaining reports how many ports Next can still return.
func (a *Allocator) Remaining() int {
	return max(0, MaxPort+1-int(a.next.Load()))
}

// Peek reports the port the next call to Next will return.
func (a *Allocator) Peek() int { return int(a.next.Load()) }

func (a *Allocator) Base() int { return a.base }

// ListenPort extracts the numeric port from a listen address such as ":8001"
// or "0.0.0.0:8001".
func ListenPort(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("parse listen address %q: %w", addr, err)
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 0 || n > 65535 {
		return 0, fmt.Errorf("invalid port in %q", addr)
	}
	return n, nil
}

// BaseAbove returns the default backend base port for a manager listening on
// addr: one above the manager's own port.
func BaseAbove(addr string) (int, error) {
	p, err := ListenPort(addr)
	if err != nil {
		return 0, err
	}
	if p == 0 || p >= 65535 {
		return 0, fmt.Errorf("cannot derive backend base port from %q", addr)
	}
	return p + 1, nil
}
