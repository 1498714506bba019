package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/commercedata/shopsync/internal/logging"
	"github.com/commercedata/shopsync/internal/normalize"
	"github.com/commercedata/shopsync/internal/store"
)

// RetryPolicy controls how many times a transient failure is attempted
// and the pause between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Retriable reports whether an error is worth another attempt.
// Malformed upstream payloads produce the same payload on every fetch,
// and a key conflict recurs on every insert, so both fail immediately.
func Retriable(err error) bool {
	var fe *normalize.FormatError
	if errors.As(err, &fe) {
		return false
	}
	if store.IsConstraint(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Do runs fn until it succeeds, returns a non-retriable error, or the
// attempt budget is exhausted. The last error is returned as-is.
func (p RetryPolicy) Do(ctx context.Context, clock Clock, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !Retriable(err) || attempt == attempts {
			return err
		}
		logging.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("delay", p.Delay).
			Msg("attempt failed, retrying")
		if serr := clock.Sleep(ctx, p.Delay); serr != nil {
			return err
		}
	}
	return err
}
