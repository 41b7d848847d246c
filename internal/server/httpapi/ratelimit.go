package httpapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP. It is applied to the
// unauthenticated routes (registration and login), where credential-guessing
// traffic would land.
type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(r rate.Limit, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		visitors: make(map[string]*rate.Limiter),
		rate:     r,
		burst:    burst,
	}
}

func (l *ipRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.visitors[ip]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.visitors[ip] = limiter
	}
	return limiter
}

// Middleware rejects requests over the per-IP budget with a 429 envelope.
func (l *ipRateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !l.limiter(c.RealIP()).Allow() {
			return fail(c, http.StatusTooManyRequests, "Too many requests, try again later!")
		}
		return next(c)
	}
}
