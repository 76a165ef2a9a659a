// Package search debounces free-text query input.
package search

import (
	"context"
	"time"
)

// DefaultDelay is the quiet period after the last keystroke before a query
// settles.
const DefaultDelay = 500 * time.Millisecond

// Input holds the raw query and the last settled value it emitted.
//
// Each change of the raw value bumps a tag. The owner schedules a settle
// check for that tag after the quiet period; only a check carrying the latest
// tag can emit, and only when the value differs from the previous emission.
// The zero value is ready to use and treats "" as already emitted.
type Input struct {
	raw     string
	tag     uint64
	emitted string
}

// Set records a new raw value. It returns the tag to settle later and
// whether the value actually changed; unchanged values keep the current tag.
func (in *Input) Set(raw string) (tag uint64, changed bool) {
	if raw == in.raw {
		return in.tag, false
	}
	in.raw = raw
	in.tag++
	return in.tag, true
}

// Settle reports the settled value for tag. ok is false when a newer
// keystroke superseded tag or when the value equals the last emission.
func (in *Input) Settle(tag uint64) (value string, ok bool) {
	if tag != in.tag || in.raw == in.emitted {
		return "", false
	}
	in.emitted = in.raw
	return in.raw, true
}

// Value returns the raw, unsettled value.
func (in *Input) Value() string {
	return in.raw
}

// Settled returns the last emitted value.
func (in *Input) Settled() string {
	return in.emitted
}

// Debouncer is the timer-driven form of Input for callers without their own
// event loop.
type Debouncer struct {
	Delay time.Duration
}

// Run reads raw values from in and emits settled values on the returned
// channel. The output channel is closed when ctx is done or in is closed; a
// value still pending when in closes is settled first.
func (d Debouncer) Run(ctx context.Context, in <-chan string) <-chan string {
	delay := d.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	out := make(chan string)

	go func() {
		defer close(out)

		var (
			input   Input
			pending uint64
			timer   *time.Timer
			fire    <-chan time.Time
		)
		stop := func() {
			if timer != nil {
				timer.Stop()
			}
		}
		defer stop()

		emit := func() bool {
			v, ok := input.Settle(pending)
			if !ok {
				return true
			}
			select {
			case out <- v:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case raw, open := <-in:
				if !open {
					if fire != nil {
						emit()
					}
					return
				}
				tag, changed := input.Set(raw)
				if !changed {
					continue
				}
				pending = tag
				stop()
				timer = time.NewTimer(delay)
				fire = timer.C
			case <-fire:
				fire = nil
				if !emit() {
					return
				}
			}
		}
	}()

	return out
}
