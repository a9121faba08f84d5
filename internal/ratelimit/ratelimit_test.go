package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"skillnaav/internal/common"
	"skillnaav/internal/config"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("ip:1.2.3.4", 3, time.Minute), "request %d", i)
	}
	assert.False(t, limiter.Allow("ip:1.2.3.4", 3, time.Minute))
	assert.True(t, limiter.Allow("ip:5.6.7.8", 3, time.Minute))

	now = now.Add(time.Minute + time.Second)
	assert.True(t, limiter.Allow("ip:1.2.3.4", 3, time.Minute))
}

func TestMemoryLimiter_DisabledInputs(t *testing.T) {
	limiter := NewMemoryLimiter()

	assert.True(t, limiter.Allow("", 1, time.Minute))
	assert.True(t, limiter.Allow("k", 0, time.Minute))
	assert.True(t, limiter.Allow("k", 1, 0))
}

func TestMemoryLimiter_SweepsExpiredBuckets(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < sweepThreshold; i++ {
		limiter.Allow(time.Duration(i).String(), 1, time.Second)
	}
	now = now.Add(2 * time.Second)
	limiter.Allow("fresh", 1, time.Second)

	assert.Len(t, limiter.buckets, 1)
}

func TestRedisLimiter_NilSafe(t *testing.T) {
	var limiter *RedisLimiter
	assert.Nil(t, NewRedisLimiter(nil, "x"))
	assert.True(t, limiter.Allow("k", 1, time.Minute))
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	limiter := NewRedisLimiter(client, "test")

	assert.True(t, limiter.Allow("k", 1, time.Minute))
	assert.True(t, limiter.Allow("k", 1, time.Minute))
}

func TestNew_FallsBackToMemory(t *testing.T) {
	_, ok := New(config.RedisConfig{Enabled: false}).(*MemoryLimiter)
	assert.True(t, ok)

	_, ok = New(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}).(*MemoryLimiter)
	assert.True(t, ok)
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimit(NewMemoryLimiter(), ClientIP, 2, time.Minute)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/savedJobs/save", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Contains(t, w.Body.String(), "rate_limited")
		}
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddleware_NilLimiter(t *testing.T) {
	handler := RateLimit(nil, ClientIP, 1, time.Minute)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{name: "host port", remoteAddr: "192.0.2.1:4321", want: "192.0.2.1"},
		{name: "bare address", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "forwarded header ignored", forwarded: "203.0.113.7", remoteAddr: "198.51.100.9:80", want: "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func TestKeyer_ClientIP(t *testing.T) {
	keyer := NewKeyer([]string{"10.0.0.2", "172.16.0.0/12", "not-an-ip"})

	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{name: "untrusted peer spoofing header", forwarded: "203.0.113.7", remoteAddr: "198.51.100.9:80", want: "198.51.100.9"},
		{name: "trusted peer", forwarded: "203.0.113.7", remoteAddr: "10.0.0.2:80", want: "203.0.113.7"},
		{name: "client prepends fake hop", forwarded: "1.1.1.1, 203.0.113.7", remoteAddr: "10.0.0.2:80", want: "203.0.113.7"},
		{name: "chain of trusted hops", forwarded: "203.0.113.7, 172.20.1.1", remoteAddr: "10.0.0.2:80", want: "203.0.113.7"},
		{name: "trusted peer without header", remoteAddr: "10.0.0.2:80", want: "10.0.0.2"},
		{name: "all hops trusted", forwarded: "172.16.0.5", remoteAddr: "10.0.0.2:80", want: "172.16.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, keyer.ClientIP(req))
		})
	}
}

func TestRateLimitMiddleware_SpoofedForwardedFor(t *testing.T) {
	handler := RateLimit(NewMemoryLimiter(), NewKeyer(nil).CallerKey, 1, time.Minute)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

	codes := make([]int, 0, 2)
	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest("POST", "/api/savedJobs/save", nil)
		req.RemoteAddr = "198.51.100.9:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestCallerKey(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:1"
	assert.Equal(t, "ip:192.0.2.1", CallerKey(req))

	ctx := common.WithIdentity(req.Context(), common.Identity{UserID: "64b7f1c2a9e4d3b2c1a09f8e"})
	assert.Equal(t, "user:64b7f1c2a9e4d3b2c1a09f8e", CallerKey(req.WithContext(ctx)))
}
