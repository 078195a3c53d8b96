// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tilt

import (
	"testing"
	"time"
)

func TestFrameLoopRunsOncePerSchedule(t *testing.T) {
	loop := NewFrameLoop()
	calls := 0
	loop.Schedule(func(time.Time) { calls++ })

	if ran := loop.Tick(time.Now()); ran != 1 {
		t.Errorf("Tick() ran %d, want 1", ran)
	}
	if ran := loop.Tick(time.Now()); ran != 0 {
		t.Errorf("second Tick() ran %d, want 0", ran)
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestFrameLoopCancelPending(t *testing.T) {
	loop := NewFrameLoop()
	called := false
	h := loop.Schedule(func(time.Time) { called = true })
	loop.Cancel(h)

	loop.Tick(time.Now())
	if called {
		t.Error("cancelled callback ran")
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

func TestFrameLoopCancelDuringTick(t *testing.T) {
	loop := NewFrameLoop()
	var second Handle
	secondRan := false

	loop.Schedule(func(time.Time) { loop.Cancel(second) })
	second = loop.Schedule(func(time.Time) { secondRan = true })

	loop.Tick(time.Now())
	if secondRan {
		t.Error("callback cancelled earlier in the same tick still ran")
	}
}

func TestFrameLoopRescheduleWaitsForNextTick(t *testing.T) {
	loop := NewFrameLoop()
	count := 0
	var frame FrameFunc
	frame = func(time.Time) {
		count++
		if count < 3 {
			loop.Schedule(frame)
		}
	}
	loop.Schedule(frame)

	for i := 1; i <= 3; i++ {
		loop.Tick(time.Now())
		if count != i {
			t.Fatalf("after tick %d count = %d", i, count)
		}
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

func TestFrameLoopCancelZeroHandle(t *testing.T) {
	loop := NewFrameLoop()
	loop.Schedule(func(time.Time) {})
	loop.Cancel(0)
	if loop.Pending() != 1 {
		t.Errorf("Cancel(0) removed a callback")
	}
}
