// Package ratelimit provides a per-client token-bucket rate limiter. Each
// client key (remote IP) owns one bucket; idle buckets are swept by a
// background janitor so the map does not grow unbounded.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"eventManager/internal/lib/api/response"
)

type Config struct {
	RPS     float64 // steady-state tokens per second
	Burst   int     // bucket size
	IdleTTL time.Duration
}

type keyBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Limiter struct {
	conf    Config
	mu      sync.Mutex
	buckets map[string]*keyBucket
}

func New(conf Config) *Limiter {
	if conf.IdleTTL <= 0 {
		conf.IdleTTL = 3 * time.Minute
	}

	l := &Limiter{
		conf:    conf,
		buckets: make(map[string]*keyBucket),
	}

	go l.janitor()

	return l
}

func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.conf.IdleTTL / 2)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > l.conf.IdleTTL {
				delete(l.buckets, k)
			}
		}
		l.mu.Unlock()
	}
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &keyBucket{limiter: rate.NewLimiter(rate.Limit(l.conf.RPS), l.conf.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

func (l *Limiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}

		if !l.bucket(key).Allow() {
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, response.Error("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
