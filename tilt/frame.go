// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tilt

import "time"

// Handle identifies one scheduled frame callback. The zero Handle is never
// issued.
type Handle uint64

// FrameFunc receives the frame timestamp.
type FrameFunc func(now time.Time)

// Scheduler runs a callback once on the next display frame.
type Scheduler interface {
	Schedule(fn FrameFunc) Handle
	Cancel(h Handle)
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic component.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type frameRequest struct {
	handle Handle
	fn     FrameFunc
}

// FrameLoop is a Scheduler driven by explicit Tick calls, one per display
// refresh. Callbacks scheduled while a tick is running wait for the next
// tick. FrameLoop is not safe for concurrent use: the goroutine that owns
// the card owns its loop.
type FrameLoop struct {
	last    Handle
	pending []frameRequest
	running []frameRequest
}

func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

func (l *FrameLoop) Schedule(fn FrameFunc) Handle {
	l.last++
	l.pending = append(l.pending, frameRequest{handle: l.last, fn: fn})
	return l.last
}

// Cancel drops h. Cancelling a handle that already ran, or was never
// issued, does nothing.
func (l *FrameLoop) Cancel(h Handle) {
	if h == 0 {
		return
	}
	for i := range l.running {
		if l.running[i].handle == h {
			l.running[i].fn = nil
			return
		}
	}
	for i, req := range l.pending {
		if req.handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Tick runs every callback that was pending when it was called and reports
// how many ran.
func (l *FrameLoop) Tick(now time.Time) int {
	l.running, l.pending = l.pending, nil
	ran := 0
	for i := range l.running {
		fn := l.running[i].fn
		if fn == nil {
			continue
		}
		l.running[i].fn = nil
		fn(now)
		ran++
	}
	l.running = nil
	return ran
}

// Pending reports how many callbacks wait for the next tick.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}
