// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the Nominatim usage policy: at most one request per second.
const DefaultInterval = time.Second

// Clock is the time source of a RateLimiter.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// RateLimiter spaces successive permissions by at least a minimum interval.
// It is meant to be used from a single goroutine.
type RateLimiter struct {
	interval time.Duration
	limiter  *rate.Limiter
	clock    Clock
}

// NewRateLimiter creates a limiter allowing one call per interval. A nil
// clock selects the wall clock.
func NewRateLimiter(interval time.Duration, clock Clock) *RateLimiter {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if clock == nil {
		clock = SystemClock()
	}

	return &RateLimiter{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		clock:    clock,
	}
}

// Interval returns the minimum spacing between permissions.
func (l *RateLimiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the caller may issue the next request. The first call
// returns immediately.
func (l *RateLimiter) Wait(ctx context.Context) error {
	now := l.clock.Now()

	r := l.limiter.ReserveN(now, 1)
	if !r.OK() {
		return errors.New("rate limiter: reservation exceeds burst")
	}

	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	if err := l.clock.Sleep(ctx, delay); err != nil {
		r.CancelAt(l.clock.Now())

		return err
	}

	return nil
}
