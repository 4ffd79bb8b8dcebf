package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/davenri/RoamIO_APP_BackEnd/internal/util"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimit throttles per client IP. It guards the credential endpoints so a
// single host cannot hammer login or OTP issuance.
func RateLimit(perMinute int) echo.MiddlewareFunc {
	limiters := &ipLimiters{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiters.get(c.RealIP()).Allow() {
				return c.JSON(http.StatusTooManyRequests, util.Error("too many requests, slow down"))
			}
			return next(c)
		}
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiters struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.entries[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = entry
	}
	entry.lastSeen = now

	// Opportunistic sweep keeps the map from growing without bound.
	if len(l.entries) > 1024 {
		for key, e := range l.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(l.entries, key)
			}
		}
	}
	return entry.limiter
}
