// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces outgoing requests at least 1/rps apart. It never bursts.
//
// The token bucket accounts from reservation time, so a caller that was
// scheduled late could otherwise dispatch less than one interval after its
// predecessor. Wait also measures from the previous dispatch and sleeps the
// remainder.
type Limiter struct {
	limiter  *rate.Limiter
	interval time.Duration

	now   func() time.Time
	sleep func(context.Context, time.Duration) error

	// slot serializes waiters and still lets them observe ctx.
	slot chan struct{}
	last time.Time
}

// NewLimiter returns a limiter admitting rps requests per second.
// A non-positive rps disables limiting.
func NewLimiter(rps float64) *Limiter {
	l := &Limiter{
		now:   time.Now,
		sleep: sleepContext,
		slot:  make(chan struct{}, 1),
	}
	if rps <= 0 {
		l.limiter = rate.NewLimiter(rate.Inf, 1)
		return l
	}
	l.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	l.interval = time.Duration(float64(time.Second) / rps)
	return l
}

// Wait blocks until the next request may be sent or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval == 0 {
		return ctx.Err()
	}

	select {
	case l.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.slot }()

	now := l.now()
	res := l.limiter.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	if !l.last.IsZero() {
		if floor := l.last.Add(l.interval).Sub(now); floor > delay {
			delay = floor
		}
	}

	if err := l.sleep(ctx, delay); err != nil {
		res.CancelAt(l.now())
		return err
	}
	l.last = l.now()
	return nil
}

// Interval is the minimum spacing between two requests.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}
