// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Cardpreview renders a profile card in the terminal and drives it with the
same tilt engine, animation driver and input selector the web card uses.

Usage:

	cardpreview [flags]

The flags are:

	-card-config path
		Card configuration file. Animation timings come from it.
	-gradient css
		Inner gradient whose colour stops shade the card.
	-handle name
		Handle printed on the card.
	-mobile
		Pretend to be a phone with an orientation sensor.
	-permission
		Require a tap before orientation events are delivered.
	-no-tilt
		Start with the effect disabled.
	-fps n
		Frame rate of the animation loop. Default 60.
	-log path
		Write debug logs to path.

The mouse plays the pointer. Arrow keys tilt the simulated device, p or a
click answers the permission prompt, t toggles the effect and q quits.
*/
package main
