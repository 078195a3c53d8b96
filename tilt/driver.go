// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tilt

import (
	"log/slog"
	"time"
)

// animationRun is one in-flight eased sweep.
type animationRun struct {
	startTime time.Time
	startX    float64
	startY    float64
	targetX   float64
	targetY   float64
	duration  time.Duration
}

// Driver feeds the transform engine, either straight from input events or
// from a timed sweep. A Driver holds at most one scheduler handle.
type Driver struct {
	surface   Surface
	scheduler Scheduler
	clock     Clock

	run    *animationRun
	handle Handle
}

func NewDriver(surface Surface, scheduler Scheduler, clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{surface: surface, scheduler: scheduler, clock: clock}
}

// DriveImmediate cancels any sweep and applies the pose for (x, y) now.
// It reports whether the surface was updated.
func (d *Driver) DriveImmediate(x, y float64) bool {
	d.Cancel()
	return d.apply(x, y)
}

// DriveEasedSweep cancels any sweep and starts a new one from (fromX, fromY)
// to (toX, toY). The first frame is applied on the next scheduler tick.
func (d *Driver) DriveEasedSweep(duration time.Duration, fromX, fromY, toX, toY float64) {
	d.Cancel()

	run := &animationRun{
		startTime: d.clock.Now(),
		startX:    fromX,
		startY:    fromY,
		targetX:   toX,
		targetY:   toY,
		duration:  duration,
	}
	d.run = run
	d.handle = d.scheduler.Schedule(func(now time.Time) { d.step(run, now) })
}

// Cancel stops the current sweep. The last applied pose stays in place.
func (d *Driver) Cancel() {
	if d.handle != 0 {
		d.scheduler.Cancel(d.handle)
		d.handle = 0
	}
	d.run = nil
}

// Animating reports whether a sweep is in flight.
func (d *Driver) Animating() bool {
	return d.run != nil
}

func (d *Driver) step(run *animationRun, now time.Time) {
	if d.run != run {
		return // superseded
	}
	d.handle = 0

	progress := 1.0
	if run.duration > 0 {
		progress = clamp(float64(now.Sub(run.startTime))/float64(run.duration), 0, 1)
	}
	eased := EaseInOutCubic(progress)

	d.apply(
		Adjust(eased, 0, 1, run.startX, run.targetX),
		Adjust(eased, 0, 1, run.startY, run.targetY),
	)

	if progress < 1 {
		d.handle = d.scheduler.Schedule(func(now time.Time) { d.step(run, now) })
		return
	}
	d.run = nil
}

func (d *Driver) apply(x, y float64) bool {
	width, height := d.surface.Size()
	params, err := Compute(x, y, width, height)
	if err != nil {
		slog.Debug("tilt update skipped", "width", width, "height", height, "error", err)
		return false
	}
	params.Apply(d.surface)
	return true
}
