package pipeline

import (
	"context"
	"time"
)

// Throttle drops values that arrive less than interval after the last value
// it let through. An interval of 0 or less passes everything.
func Throttle[T any](p *Pipeline[T], interval time.Duration) *Pipeline[T] {
	return ThrottleWhere(p, interval, func(T) bool { return true })
}

// ThrottleWhere throttles only the values match selects. The rest pass
// straight through and do not move the window.
func ThrottleWhere[T any](p *Pipeline[T], interval time.Duration, match func(T) bool) *Pipeline[T] {
	return throttle(p, interval, match, time.Now)
}

func throttle[T any](p *Pipeline[T], interval time.Duration, match func(T) bool, now func() time.Time) *Pipeline[T] {
	if interval <= 0 {
		return p
	}
	return &Pipeline[T]{open: func(ctx context.Context) Iterator[T] {
		var last time.Time
		src := p.open(ctx)
		return iterator[T]{
			close: src.Close,
			next: func(ctx context.Context) (T, bool, error) {
				for {
					v, ok, err := src.Next(ctx)
					if err != nil || !ok || !match(v) {
						return v, ok, err
					}
					if t := now(); last.IsZero() || t.Sub(last) >= interval {
						last = t
						return v, true, nil
					}
				}
			},
		}
	}}
}
