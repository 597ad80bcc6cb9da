package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	PerMinute       int
	Burst           int
	CleanupInterval time.Duration
	// IdleTTL is how long an unused client entry is kept.
	IdleTTL time.Duration
}

func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		PerMinute:       20,
		Burst:           5,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         10 * time.Minute,
	}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter throttles requests per client IP. It guards the login and
// signup endpoints against credential stuffing.
type RateLimiter struct {
	config  RateLimiterConfig
	limit   rate.Limit
	log     *zap.Logger
	mu      sync.Mutex
	clients map[string]*clientLimiter
	stopCh  chan struct{}
	once    sync.Once
}

// NewRateLimiter starts a background cleanup loop; call Stop to end it.
func NewRateLimiter(config RateLimiterConfig, log *zap.Logger) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultRateLimiterConfig().CleanupInterval
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = DefaultRateLimiterConfig().IdleTTL
	}
	rl := &RateLimiter{
		config:  config,
		limit:   rate.Limit(float64(config.PerMinute) / 60.0),
		log:     log,
		clients: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.limiter(ip).Allow() {
			rl.log.Warn("rate limit exceeded", zap.String("client_ip", ip), zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many attempts, please wait a moment and try again", "auth")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientCount is the number of tracked clients.
func (rl *RateLimiter) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.config.Burst)}
		rl.clients[key] = c
	}
	c.lastAccess = time.Now()
	return c.limiter
}

func (rl *RateLimiter) retryAfterSeconds() int {
	if rl.limit <= 0 {
		return 60
	}
	return int(math.Ceil(1 / float64(rl.limit)))
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, c := range rl.clients {
		if now.Sub(c.lastAccess) > rl.config.IdleTTL {
			delete(rl.clients, key)
		}
	}
}

// clientIP strips the port from RemoteAddr. Forwarding headers only count when
// chi's RealIP ran first, which the router does only for a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
