package simulator

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the client's per-request identifier.
const RequestIDHeader = "X-Request-ID"

// ipRateLimiter stores a rate limiter for each client IP.
type ipRateLimiter struct {
	mu  sync.RWMutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *ipRateLimiter) limiter(ip string) *rate.Limiter {
	i.mu.RLock()
	l, ok := i.ips[ip]
	i.mu.RUnlock()
	if ok {
		return l
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if l, ok := i.ips[ip]; ok {
		return l
	}
	l = rate.NewLimiter(i.r, i.b)
	i.ips[ip] = l
	return l
}

// RateLimiter rejects requests from a client IP beyond r per second with
// burst b.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limited"})
			return
		}
		c.Next()
	}
}

type recordedResponse struct {
	status int
	body   []byte
}

type recordingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Replay answers a repeated request ID with the response recorded for its
// first delivery, so a retried POST is not queued twice. Requests without
// an ID always reach the handler.
func Replay(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			c.Next()
			return
		}

		if v, found := store.Get(id); found {
			prev := v.(recordedResponse)
			c.Header("X-Replayed", "true")
			c.Data(prev.status, "application/json; charset=utf-8", prev.body)
			c.Abort()
			return
		}

		rw := recordingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rw
		c.Next()

		// Rate-limited and server errors may succeed on retry.
		if s := rw.Status(); s < http.StatusInternalServerError && s != http.StatusTooManyRequests {
			store.Set(id, recordedResponse{status: s, body: rw.body.Bytes()}, ttl)
		}
	}
}

// RequestLogger logs one zerolog line per request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		evt := logger.Debug()
		if c.Writer.Status() >= http.StatusBadRequest {
			evt = logger.Info()
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("request_id", c.GetHeader(RequestIDHeader)).
			Dur("elapsed", time.Since(started)).
			Msg("request")
	}
}
