// Package window picks publish instants inside a daily local-time window.
package window

import (
	"math/rand"
	"sync"
	"time"
)

type Config struct {
	Location *time.Location
	// Start and End are offsets from local midnight; both bounds are inclusive.
	Start    time.Duration
	End      time.Duration
	MinDelay time.Duration
	MaxDelay time.Duration
}

type Policy struct {
	cfg Config

	mu   sync.Mutex
	rand *rand.Rand
}

type Option func(*Policy)

// WithRand replaces the random source, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(p *Policy) {
		p.rand = r
	}
}

func New(cfg Config, opts ...Option) *Policy {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	p := &Policy{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// maxAttempts bounds the sampling loop. It is only reached when the window is
// narrower than the delay range.
const maxAttempts = 64

// NextSlot returns a random instant strictly after now whose local time of day
// lies inside the window. A candidate that misses the window moves the base to
// the window start of the day after the candidate, even when the candidate
// falls before that same day's opening.
func (p *Policy) NextSlot(now time.Time) time.Time {
	base := now.In(p.cfg.Location)
	for i := 0; i < maxAttempts; i++ {
		candidate := base.Add(p.sampleDelay())
		if p.InWindow(candidate) {
			return candidate
		}
		base = p.nextWindowStart(candidate)
	}
	// base is a window opening later than now here
	return base
}

// InWindow reports whether t's local time of day is within [Start, End].
func (p *Policy) InWindow(t time.Time) bool {
	tod := timeOfDay(t.In(p.cfg.Location))
	return tod >= p.cfg.Start && tod <= p.cfg.End
}

func (p *Policy) sampleDelay() time.Duration {
	minSec := int64(p.cfg.MinDelay / time.Second)
	maxSec := int64(p.cfg.MaxDelay / time.Second)
	if maxSec <= minSec {
		return time.Duration(minSec) * time.Second
	}

	p.mu.Lock()
	n := p.rand.Int63n(maxSec - minSec + 1)
	p.mu.Unlock()

	return time.Duration(minSec+n) * time.Second
}

// nextWindowStart is the window opening on the calendar day after t's local date.
func (p *Policy) nextWindowStart(t time.Time) time.Time {
	y, m, d := t.In(p.cfg.Location).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, p.cfg.Location).Add(p.cfg.Start)
}

func timeOfDay(t time.Time) time.Duration {
	y, m, d := t.Date()
	return t.Sub(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}
