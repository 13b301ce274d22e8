package httpapi

import (
	"crypto/subtle"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// APIKeyHeader carries the shared secret on every protected request.
const APIKeyHeader = "X-API-Key"

// KeySource yields the currently valid API key. It is consulted per request so
// a rotated key takes effect without rebuilding the router.
type KeySource interface {
	Key() string
}

// StaticKey is a KeySource for a fixed key.
type StaticKey string

func (k StaticKey) Key() string { return string(k) }

// authFailuresPerMinute bounds rejected key checks per client address before
// further attempts are answered with 429. Zero disables throttling.
var authFailuresPerMinute = 30

// SetAuthFailureLimit configures failure throttling; n <= 0 disables it.
func SetAuthFailureLimit(n int) { authFailuresPerMinute = n }

// failureLimiter tracks a token bucket per client address.
type failureLimiter struct {
	mu      sync.Mutex
	perMin  int
	buckets map[string]*rate.Limiter
}

const maxTrackedClients = 4096

func newFailureLimiter(perMin int) *failureLimiter {
	return &failureLimiter{perMin: perMin, buckets: make(map[string]*rate.Limiter)}
}

// exhausted reports whether the client has used up its failure budget,
// without consuming from it.
func (l *failureLimiter) exhausted(client string) bool {
	if l.perMin <= 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[client]
	return ok && b.Tokens() < 1
}

// record consumes one token for a failed attempt.
func (l *failureLimiter) record(client string) {
	if l.perMin <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[client]
	if !ok {
		if len(l.buckets) >= maxTrackedClients {
			l.buckets = make(map[string]*rate.Limiter)
		}
		b = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)
		l.buckets[client] = b
	}
	b.Allow()
}

func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// requireAPIKey rejects requests without a valid X-API-Key: 401 when the
// header is missing, 403 when it does not match. Clients that keep failing
// are answered with 429 until their budget refills.
func requireAPIKey(keys KeySource) func(http.Handler) http.Handler {
	limiter := newFailureLimiter(authFailuresPerMinute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r)
			got := r.Header.Get(APIKeyHeader)
			want := keys.Key()
			if got != "" && want != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1 {
				next.ServeHTTP(w, r)
				return
			}
			if limiter.exhausted(client) {
				IncrementAuthFailure("throttled")
				w.Header().Set("Retry-After", "60")
				writeJSONError(w, http.StatusTooManyRequests, "too many failed authentication attempts")
				return
			}
			limiter.record(client)
			if got == "" {
				IncrementAuthFailure("missing")
				writeJSONError(w, http.StatusUnauthorized, "Missing API key. Provide X-API-Key header.")
				return
			}
			IncrementAuthFailure("invalid")
			if zlog != nil {
				zlog.Warn().Str("remote", client).Str("path", r.URL.Path).Msg("invalid API key")
			}
			writeJSONError(w, http.StatusForbidden, "Invalid API key")
		})
	}
}
