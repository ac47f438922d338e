package notify

import (
	"fmt"
	"sync"
	"time"

	config "github.com/inference-gateway/envkeys/config"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	zap "go.uber.org/zap"
)

// RateLimiter allows at most cfg.MaxMessages events per sliding window
type RateLimiter struct {
	cfg   config.RateLimitConfig
	now   func() time.Time
	times []time.Time
	mu    sync.Mutex
}

// NewRateLimiter creates a rate limiter
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{cfg: cfg, now: time.Now}
}

func (rl *RateLimiter) window() time.Duration {
	return time.Duration(rl.cfg.WindowSeconds) * time.Second
}

// prune drops events older than the window; callers hold mu
func (rl *RateLimiter) prune(now time.Time) {
	windowStart := now.Add(-rl.window())
	kept := rl.times[:0]
	for _, t := range rl.times {
		if t.After(windowStart) {
			kept = append(kept, t)
		}
	}
	rl.times = kept
}

// CheckAndRecord records an event, or returns an error when the window is full
func (rl *RateLimiter) CheckAndRecord() error {
	if !rl.cfg.Enabled {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.prune(now)
	if len(rl.times) >= rl.cfg.MaxMessages {
		return fmt.Errorf("rate limit exceeded: maximum %d messages per %d seconds",
			rl.cfg.MaxMessages, rl.cfg.WindowSeconds)
	}

	rl.times = append(rl.times, now)
	return nil
}

// Count returns the number of events in the current window
func (rl *RateLimiter) Count() int {
	if !rl.cfg.Enabled {
		return 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.prune(rl.now())
	return len(rl.times)
}

// Throttled drops messages that exceed its limiter
type Throttled struct {
	next    domain.Notifier
	limiter *RateLimiter
	name    string
	log     *zap.Logger
}

// NewThrottled wraps next so that it sees at most the limiter's rate
func NewThrottled(name string, next domain.Notifier, limiter *RateLimiter, log *zap.Logger) *Throttled {
	if log == nil {
		log = zap.NewNop()
	}
	return &Throttled{next: next, limiter: limiter, name: name, log: log}
}

// Show forwards message unless the limit is reached
func (t *Throttled) Show(message string) {
	if err := t.limiter.CheckAndRecord(); err != nil {
		t.log.Debug("notification dropped", zap.String("notifier", t.name), zap.Error(err))
		return
	}
	t.next.Show(message)
}
