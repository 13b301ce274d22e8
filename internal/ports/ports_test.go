package ports

import (
	"errors"
	"sync"
	"testing"
)

func TestNext_Monotonic(t *testing.T) {
	a := New(8002)
	for want := 8002; want < 8007; want++ {
		if got, err := a.Next(); err != nil || got != want {
			t.Fatalf("got %d want %d", got, want)
		}
	}
	if a.Peek() != 8007 {
		t.Fatalf("peek=%d", a.Peek())
	}
	if a.Base() != 8002 {
		t.Fatalf("base=%d", a.Base())
	}
}

func TestNext_ConcurrentDistinct(t *testing.T) {
	const n = 200
	a := New(9000)
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := a.Next()
			if err != nil {
				t.Errorf("next: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[p] {
				t.Errorf("port %d returned twice", p)
			}
			seen[p] = true
		}()
	}
	wg.Wait()
	for p := 9000; p < 9000+n; p++ {
		if !seen[p] {
			t.Fatalf("gap at %d", p)
		}
	}
}

func TestBaseAbove(t *testing.T) {
	cases := []struct {
		addr string
		want int
		err  bool
	}{
		{":8001", 8002, false},
		{"0.0.0.0:8001", 8002, false},
		{"[::1]:9000", 9001, false},
		{"localhost", 0, true},
		{":0", 0, true},
		{":65535", 0, true},
		{":abc", 0, true},
	}
	for _, c := range cases {
		got, err := BaseAbove(c.addr)
		if (err != nil) != c.err {
			t.Fatalf("%q: err=%v", c.addr, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %d want %d", c.addr, got, c.want)
		}
	}
}

func TestNext_StopsAtMaxPort(t *testing.T) {
	a := New(MaxPort - 1)
	if a.Remaining() != 2 {
		t.Fatalf("remaining=%d", a.Remaining())
	}
	for want := MaxPort - 1; want <= MaxPort; want++ {
		if got, err := a.Next(); err != nil || got != want {
			t.Fatalf("got %d, %v want %d", got, err, want)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := a.Next(); !errors.Is(err, ErrExhausted) {
			t.Fatalf("expected ErrExhausted, got %v", err)
		}
	}
	if a.Peek() != MaxPort+1 || a.Remaining() != 0 {
		t.Fatalf("peek=%d remaining=%d", a.Peek(), a.Remaining())
	}
}
