package rest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newIPRateLimiter(10, 15*time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		assert.True(t, l.allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"), "other clients have their own window")

	now = now.Add(90 * time.Second)
	assert.False(t, l.allow("10.0.0.1"), "no refill inside the window")

	now = now.Add(13*time.Minute + 29*time.Second)
	assert.False(t, l.allow("10.0.0.1"), "one second before the window ends")

	now = now.Add(time.Second)
	assert.True(t, l.allow("10.0.0.1"), "count resets once the window has passed")
}

func TestIPRateLimiter_SteadyTrafficCappedPerWindow(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	l := newIPRateLimiter(10, 15*time.Minute)
	l.now = func() time.Time { return now }

	admitted := 0
	for now.Before(start.Add(15 * time.Minute)) {
		if l.allow("10.0.0.1") {
			admitted++
		}
		now = now.Add(time.Second)
	}
	assert.Equal(t, 10, admitted)
}

func TestIPRateLimiter_SweepsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	l.allow("a")
	l.allow("b")
	assert.Equal(t, 2, l.size())

	now = now.Add(2 * time.Minute)
	l.allow("c")
	assert.Equal(t, 1, l.size())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("POST", "/signup", nil)
	req.RemoteAddr = "192.0.2.7:51234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "192.0.2.7", clientIP(req))

	req.RemoteAddr = "weird"
	assert.Equal(t, "weird", clientIP(req))
}
