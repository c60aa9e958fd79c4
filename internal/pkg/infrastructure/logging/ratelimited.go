package logging

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const DefaultRateInterval = 60 * time.Second

// RateLimitedLogger suppresses repeated log lines that share a key within an interval.
type RateLimitedLogger struct {
	log      zerolog.Logger
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

type RateLimitOption func(*RateLimitedLogger)

func WithClock(now func() time.Time) RateLimitOption {
	return func(l *RateLimitedLogger) {
		l.now = now
	}
}

func NewRateLimitedLogger(log zerolog.Logger, interval time.Duration, opts ...RateLimitOption) *RateLimitedLogger {
	if interval <= 0 {
		interval = DefaultRateInterval
	}

	l := &RateLimitedLogger{
		log:      log,
		interval: interval,
		now:      time.Now,
		limiters: map[string]*rate.Limiter{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Allow reports whether a line under key may be emitted now and, if so, consumes the slot.
func (l *RateLimitedLogger) Allow(key string) bool {
	if l == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(l.interval), 1)
		l.limiters[key] = limiter
	}

	return limiter.AllowN(l.now(), 1)
}

// LogIfAllowed writes msg at the given level unless a line with the same key
// was written within the interval. It returns true when the line was written.
func (l *RateLimitedLogger) LogIfAllowed(key string, level zerolog.Level, msg string) bool {
	if !l.Allow(key) {
		return false
	}

	l.log.WithLevel(level).Str("rate_key", key).Msg(msg)
	return true
}

// Event returns an event for key when allowed, or nil. zerolog treats calls on
// a nil event as no-ops, so callers can chain fields unconditionally.
func (l *RateLimitedLogger) Event(key string, level zerolog.Level) *zerolog.Event {
	if !l.Allow(key) {
		return nil
	}

	return l.log.WithLevel(level).Str("rate_key", key)
}
