package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
)

type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64

	// Permanent reports errors no further attempt can fix. Nil retries every error.
	Permanent func(error) bool
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

// WithPermanent returns a copy of c that stops on errors classified by isPermanent.
func (c Config) WithPermanent(isPermanent func(error) bool) Config {
	c.Permanent = isPermanent
	return c
}

// Do runs operation until it succeeds, the retry budget is spent, ctx is done
// or the error is permanent. The last error is returned unwrapped.
func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	bo.Reset()

	attempt := 0
	classified := func() error {
		attempt++
		err := operation()
		if err != nil && cfg.Permanent != nil && cfg.Permanent(err) {
			log.Warn("Operation failed permanently",
				"operation", operationName,
				"attempt", attempt,
				"error", err)
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, t time.Duration) {
		log.Warn("Operation failed, retrying",
			"operation", operationName,
			"attempt", attempt,
			"error", err,
			"next_attempt_in", t.Round(time.Millisecond).String())
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx)
	return backoff.RetryNotify(classified, policy, notify)
}
