package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/diagnosis/elsabor-web/internal/http/response"
	"github.com/diagnosis/elsabor-web/pkg/logger"
)

// Store counts hits for a key inside a fixed window and returns the count
// including the current hit.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Requests int                            // Max requests per window
	Window   time.Duration                  // Time window duration
	KeyFunc  func(r *http.Request) []string // Function to generate rate limit keys
	SkipFunc func(r *http.Request) bool     // Function to skip rate limiting
	Message  func(r *http.Request) string   // Body of the 429 response
}

// RateLimiter provides rate limiting functionality
type RateLimiter struct {
	store  Store
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(store Store, config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = IPKeyFunc
	}
	return &RateLimiter{
		store:  store,
		config: config,
	}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.config.SkipFunc != nil && rl.config.SkipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			for _, key := range rl.config.KeyFunc(r) {
				if !rl.checkRateLimit(r.Context(), key) {
					msg := "Too many requests. Try again later."
					if rl.config.Message != nil {
						msg = rl.config.Message(r)
					}
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.config.Window.Seconds())))
					response.RateLimit(w, msg)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkRateLimit reports whether key is still within its quota.
func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Hash the key for privacy
	hashedKey := fmt.Sprintf("%x", sha256.Sum256([]byte(key)))

	count, err := rl.store.Hit(ctx, hashedKey, rl.config.Window)
	if err != nil {
		// fail open
		logger.WarnContext(ctx, "rate limit store unavailable", "error", err)
		return true
	}

	return count <= rl.config.Requests
}

// IPKeyFunc limits by the socket peer address. Forwarding headers are
// ignored; behind a proxy use ProxyIPKeyFunc.
func IPKeyFunc(r *http.Request) []string {
	if ip := remoteIP(r); ip != "" {
		return []string{"ip:" + ip}
	}
	return nil
}

// ProxyIPKeyFunc honours X-Forwarded-For and X-Real-IP only when the socket
// peer is inside one of the trusted networks.
func ProxyIPKeyFunc(trusted []*net.IPNet) func(r *http.Request) []string {
	return func(r *http.Request) []string {
		if ip := getClientIP(r, trusted); ip != "" {
			return []string{"ip:" + ip}
		}
		return nil
	}
}

// ParseCIDRs parses trusted proxy networks. Bare addresses are taken as
// single-host networks.
func ParseCIDRs(raw []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.Contains(s, "/") {
			ip := net.ParseIP(s)
			if ip == nil {
				return nil, fmt.Errorf("invalid proxy address %q", s)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			s = fmt.Sprintf("%s/%d", s, bits)
		}
		_, n, err := net.ParseCIDR(s)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy network %q: %w", s, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// SkipStatic exempts static assets and the health check.
func SkipStatic(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/static/") || r.URL.Path == "/healthz"
}

func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func isTrusted(ip string, trusted []*net.IPNet) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range trusted {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// getClientIP walks X-Forwarded-For from the right, skipping trusted hops,
// and returns the first untrusted address. Headers from an untrusted peer
// are ignored.
func getClientIP(r *http.Request, trusted []*net.IPNet) string {
	peer := remoteIP(r)
	if !isTrusted(peer, trusted) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" || net.ParseIP(hop) == nil {
				break
			}
			if !isTrusted(hop, trusted) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	return peer
}

type window struct {
	count int
	start time.Time
}

// MemoryStore keeps counters in process. Counters are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	sweeps  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window), now: time.Now}
}

func (s *MemoryStore) Hit(_ context.Context, key string, win time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweeps++
	if s.sweeps%1024 == 0 {
		for k, w := range s.windows {
			if now.Sub(w.start) >= win {
				delete(s.windows, k)
			}
		}
	}

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= win {
		w = &window{start: now}
		s.windows[key] = w
	}
	w.count++
	return w.count, nil
}
