// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tilt computes the 3D tilt illusion of the profile card.

# Transform Engine

Compute turns a pointer offset inside the card into style variables:

	params, err := tilt.Compute(150, 75, 200, 100)
	// params.RotateX == -5, params.RotateY == 6.25
	params.Apply(surface)

Percentages are clamped to [0,100], the background pan is remapped into
[35,65] and every value is rounded to three decimals. Width or height <= 0
returns ErrInvalidDimension.

# Animation Driver

Driver feeds Compute either directly (DriveImmediate) or through an eased
sweep (DriveEasedSweep) that runs one frame at a time on a Scheduler.
Starting anything new cancels the sweep in flight, so a Driver never holds
more than one scheduler handle.

# Frame Loop

FrameLoop is a Scheduler ticked by its owner once per display refresh:

	loop := tilt.NewFrameLoop()
	for now := range ticker.C {
		loop.Tick(now)
	}

# Input Source Selector

Card mounts into pointer tracking by default and switches to device
orientation only on a mobile client with orientation support and granted
permission:

	card := tilt.NewCard(tilt.Environment{
		Surface:      surface,
		Input:        input,
		Capabilities: tilt.StaticCapabilities{},
		Scheduler:    loop,
		Clock:        tilt.SystemClock{},
	}, tilt.Options{EnableTilt: true})
	card.Mount()
	defer card.Unmount()

Card, Driver and FrameLoop are confined to one goroutine.
*/
package tilt
