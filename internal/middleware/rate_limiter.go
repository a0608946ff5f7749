package middleware

import (
	"net/http"
	"sync"
	"time"

	"orcaobra/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── API rate limiter ──────────────────────────────────────────────────────────

// rateEntry tracks request counts per key within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

const purgeInterval = 5 * time.Minute

type rateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	entries   map[string]*rateEntry
	nextPurge time.Time
	agora     func() time.Time
	chave     func(c *gin.Context) string
	mensagem  string
}

func newRateLimiter(limit int, window time.Duration, chave func(c *gin.Context) string, mensagem string) *rateLimiter {
	return &rateLimiter{
		limit:    limit,
		window:   window,
		entries:  make(map[string]*rateEntry),
		agora:    time.Now,
		chave:    chave,
		mensagem: mensagem,
	}
}

// allow counts one hit for key and reports whether it is within the limit.
func (rl *rateLimiter) allow(key string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.agora()
	if now.After(rl.nextPurge) {
		rl.purge(now)
		rl.nextPurge = now.Add(purgeInterval)
	}

	entry, ok := rl.entries[key]
	if !ok || now.After(entry.windowEnd) {
		entry = &rateEntry{windowEnd: now.Add(rl.window)}
		rl.entries[key] = entry
	}
	entry.count++
	return entry.count <= rl.limit, entry.windowEnd
}

// must hold rl.mu
func (rl *rateLimiter) purge(now time.Time) {
	purged := 0
	for k, e := range rl.entries {
		if now.After(e.windowEnd) {
			delete(rl.entries, k)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().
			Int("entries_purged", purged).
			Int("entries_remaining", len(rl.entries)).
			Msg("rate limiter map purged")
	}
}

func (rl *rateLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := rl.allow(rl.chave(c))
		if !ok {
			c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(rl.mensagem))
			return
		}
		c.Next()
	}
}

// RateLimiter limits every client IP to limit requests per window.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newRateLimiter(limit, window, func(c *gin.Context) string { return c.ClientIP() },
		"Muitas requisições. Tente novamente em instantes.").handler()
}

// JobRateLimiter throttles job-enqueuing routes per user, so a client cannot
// flood the recalculation queue.
func JobRateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newRateLimiter(limit, window, func(c *gin.Context) string {
		if id := userID(c); id != "" {
			return id
		}
		return c.ClientIP()
	}, "Muitos recálculos solicitados. Aguarde antes de tentar novamente.").handler()
}
