package restapi

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"subwaymap.org/internal/models"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware limits requests per client address.
type RateLimitMiddleware struct {
	limiters    map[string]*clientLimiter
	mu          sync.Mutex
	rateLimit   rate.Limit
	burstSize   int
	cleanupTick *time.Ticker
	done        chan struct{}
	stopOnce    sync.Once
}

// NewRateLimitMiddleware allows ratePerSecond requests per interval for each client, with a
// burst of the same size. A non-positive rate disables limiting.
func NewRateLimitMiddleware(ratePerSecond int, interval time.Duration) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		limiters:  make(map[string]*clientLimiter),
		rateLimit: rate.Inf,
		burstSize: ratePerSecond,
		done:      make(chan struct{}),
	}
	if ratePerSecond <= 0 {
		return rl
	}

	rl.rateLimit = rate.Every(interval / time.Duration(ratePerSecond))
	rl.cleanupTick = time.NewTicker(limiterCleanupInterval)
	go rl.cleanup()

	return rl
}

func (rl *RateLimitMiddleware) getLimiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rateLimit, rl.burstSize)}
		rl.limiters[client] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// Handler wraps next with the limiter.
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	if rl.rateLimit == rate.Inf {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(clientAddress(r)).Allow() {
			rl.sendRateLimitExceeded(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter) {
	retryAfter := time.Duration(float64(time.Second) / float64(rl.rateLimit))
	seconds := int(retryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	setJSONResponseType(w)
	w.WriteHeader(http.StatusTooManyRequests)

	response := models.NewResponse(http.StatusTooManyRequests, nil, "rate limit exceeded")
	_ = json.NewEncoder(w).Encode(response)
}

// cleanup drops limiters of clients not seen for limiterIdleTimeout.
func (rl *RateLimitMiddleware) cleanup() {
	for {
		select {
		case <-rl.done:
			return
		case now := <-rl.cleanupTick.C:
			rl.mu.Lock()
			for client, cl := range rl.limiters {
				if now.Sub(cl.lastSeen) > limiterIdleTimeout {
					delete(rl.limiters, client)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() {
		if rl.cleanupTick != nil {
			rl.cleanupTick.Stop()
		}
		close(rl.done)
	})
}

// clientAddress prefers the first X-Forwarded-For hop and falls back to the remote host.
func clientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
