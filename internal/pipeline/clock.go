// Package pipeline drives the fetch/normalize/load cycle: a per
// source-and-tenant state machine with a courtesy inter-page delay and
// an explicit retry policy.
package pipeline

import (
	"context"
	"time"
)

// Clock abstracts time so delays and retries are testable without real
// timers.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// RealClock returns a Clock backed by the system timer.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
