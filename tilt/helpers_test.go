// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tilt

import (
	"time"
)

type fakeSurface struct {
	width, height float64
	props         map[string]string
	writes        int
}

func newFakeSurface(width, height float64) *fakeSurface {
	return &fakeSurface{width: width, height: height, props: map[string]string{}}
}

func (s *fakeSurface) Size() (float64, float64) { return s.width, s.height }

func (s *fakeSurface) SetProperty(name, value string) {
	s.props[name] = value
	s.writes++
}

type fakeSub struct {
	pointer     PointerHandlers
	orientation func(OrientationSample)
	live        bool
}

func (s *fakeSub) Unsubscribe() { s.live = false }

type fakeInput struct {
	subs []*fakeSub
}

func (f *fakeInput) SubscribePointer(h PointerHandlers) Subscription {
	sub := &fakeSub{pointer: h, live: true}
	f.subs = append(f.subs, sub)
	return sub
}

func (f *fakeInput) SubscribeOrientation(fn func(OrientationSample)) Subscription {
	sub := &fakeSub{orientation: fn, live: true}
	f.subs = append(f.subs, sub)
	return sub
}

// live counts subscriptions of each kind that have not been removed.
func (f *fakeInput) live() (pointer, orientation int) {
	for _, s := range f.subs {
		if !s.live {
			continue
		}
		if s.orientation != nil {
			orientation++
		} else {
			pointer++
		}
	}
	return pointer, orientation
}

// last returns the most recent subscription, live or not.
func (f *fakeInput) last() *fakeSub {
	if len(f.subs) == 0 {
		return nil
	}
	return f.subs[len(f.subs)-1]
}

type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// runFrames ticks loop every 16ms until nothing is pending or limit frames ran.
func runFrames(loop *FrameLoop, clock *manualClock, limit int) int {
	frames := 0
	for loop.Pending() > 0 && frames < limit {
		loop.Tick(clock.Advance(16 * time.Millisecond))
		frames++
	}
	return frames
}
