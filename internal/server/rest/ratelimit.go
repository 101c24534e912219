package rest

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// ipRateLimiter counts requests per client address in fixed windows. A
// client gets at most limit requests from the start of its window until
// window has passed; the count then starts over.
type ipRateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	clients   map[string]*rateClient
	lastSweep time.Time
	now       func() time.Time
}

type rateClient struct {
	count       int
	windowStart time.Time
}

func newIPRateLimiter(limit int, window time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*rateClient),
		now:     time.Now,
	}
}

func (l *ipRateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, ok := l.clients[key]
	if !ok || !now.Before(c.windowStart.Add(l.window)) {
		c = &rateClient{windowStart: now}
		l.clients[key] = c
	}
	if c.count >= l.limit {
		return false
	}
	c.count++
	return true
}

// sweep drops clients whose window has ended; they would start a new one on
// their next request anyway.
func (l *ipRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, c := range l.clients {
		if !now.Before(c.windowStart.Add(l.window)) {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func (l *ipRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.signupLimiter.allow(clientIP(r)) {
			s.logger.Warn(r.Context(), "signup rate limit hit",
				"remote_addr", r.RemoteAddr, "request_id", RequestIDFromContext(r.Context()))
			writeMessage(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		next(w, r)
	}
}

// clientIP is the peer address without the port. Forwarding headers are not
// trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
