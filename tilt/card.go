// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tilt

import (
	"context"
	"log/slog"
	"time"
)

// InputMode is the input source currently driving a card.
type InputMode int

const (
	Idle InputMode = iota
	PointerTracking
	OrientationTracking
)

func (m InputMode) String() string {
	switch m {
	case Idle:
		return "idle"
	case PointerTracking:
		return "pointer"
	case OrientationTracking:
		return "orientation"
	}
	return "unknown"
}

// AnimationConfig holds the entry and release sweep constants.
type AnimationConfig struct {
	SmoothDuration  time.Duration
	InitialDuration time.Duration
	InitialXOffset  float64
	InitialYOffset  float64
}

func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		SmoothDuration:  600 * time.Millisecond,
		InitialDuration: 1500 * time.Millisecond,
		InitialXOffset:  70,
		InitialYOffset:  60,
	}
}

// Capabilities answers what the runtime can do. Implementations wrap a
// browser, a device, or a test fixture.
type Capabilities interface {
	IsMobile() bool
	OrientationSupported() bool
	// PermissionRequired is true on platforms that gate orientation events
	// behind an explicit, user-initiated consent request.
	PermissionRequired() bool
	RequestPermission(ctx context.Context) (bool, error)
}

// OrientationSample is one device orientation reading in degrees.
type OrientationSample struct {
	Gamma float64 `json:"gamma"`
	Beta  float64 `json:"beta"`
}

// PointerHandlers receives pointer events with element-relative offsets.
type PointerHandlers struct {
	Enter func()
	Move  func(x, y float64)
	Leave func(x, y float64)
}

// Subscription is a registered listener. Unsubscribe must be idempotent.
type Subscription interface {
	Unsubscribe()
}

// InputSource registers listeners for the card.
type InputSource interface {
	SubscribePointer(h PointerHandlers) Subscription
	SubscribeOrientation(fn func(OrientationSample)) Subscription
}

// Environment is everything a card needs from its host.
type Environment struct {
	Surface      Surface
	Input        InputSource
	Capabilities Capabilities
	Scheduler    Scheduler
	Clock        Clock
}

type Options struct {
	EnableTilt     bool
	Animation      AnimationConfig
	OnContactClick func()
}

// Card selects the input source for one profile card and routes its events
// into a Driver. A Card, like its FrameLoop, belongs to a single goroutine.
type Card struct {
	env    Environment
	opts   Options
	driver *Driver

	mode    InputMode
	mounted bool
	active  bool
	subs    []Subscription

	mobile               bool
	orientationSupported bool
	permissionGranted    bool
}

func NewCard(env Environment, opts Options) *Card {
	if opts.Animation == (AnimationConfig{}) {
		opts.Animation = DefaultAnimationConfig()
	}
	return &Card{
		env:    env,
		opts:   opts,
		driver: NewDriver(env.Surface, env.Scheduler, env.Clock),
	}
}

// Mount probes capabilities and registers listeners.
func (c *Card) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true

	c.mobile = c.env.Capabilities.IsMobile()
	if c.mobile && c.env.Capabilities.OrientationSupported() {
		c.orientationSupported = true
		c.permissionGranted = !c.env.Capabilities.PermissionRequired()
	}

	c.setup()
}

// Unmount removes every listener and cancels any sweep.
func (c *Card) Unmount() {
	if !c.mounted {
		return
	}
	c.teardown()
	c.mounted = false
	c.active = false
}

// SetTiltEnabled toggles the effect, re-registering listeners as needed.
func (c *Card) SetTiltEnabled(enabled bool) {
	if c.opts.EnableTilt == enabled {
		return
	}
	c.opts.EnableTilt = enabled
	if !c.mounted {
		return
	}
	c.teardown()
	c.setup()
}

// Tap handles a click on the card. When the platform is waiting for
// orientation consent it asks for it; failure leaves the card in pointer
// mode with the prompt still showing.
func (c *Card) Tap(ctx context.Context) {
	if !c.PermissionPromptVisible() {
		return
	}

	granted, err := c.env.Capabilities.RequestPermission(ctx)
	if err != nil {
		slog.Warn("orientation permission request failed", "error", err)
		return
	}
	if !granted {
		slog.Info("orientation permission denied")
		return
	}

	c.permissionGranted = true
	if c.mounted {
		c.teardown()
		c.setup()
	}
}

// ContactClick fires the contact callback, if any.
func (c *Card) ContactClick() {
	if c.opts.OnContactClick != nil {
		c.opts.OnContactClick()
	}
}

func (c *Card) Mode() InputMode {
	return c.mode
}

// Active reports whether the card is in its hovered/engaged visual state.
func (c *Card) Active() bool {
	return c.active
}

func (c *Card) Animating() bool {
	return c.driver.Animating()
}

// PermissionPromptVisible reports whether the "tap to enable device motion"
// prompt should be shown.
func (c *Card) PermissionPromptVisible() bool {
	return c.mobile && c.orientationSupported && !c.permissionGranted
}

func (c *Card) useOrientation() bool {
	return c.mobile && c.orientationSupported && c.permissionGranted
}

func (c *Card) setup() {
	if !c.opts.EnableTilt {
		c.mode = Idle
		return
	}

	width, height := c.env.Surface.Size()

	if c.useOrientation() {
		c.subs = append(c.subs, c.env.Input.SubscribeOrientation(c.handleOrientation))
		c.mode = OrientationTracking
		c.active = true
		c.driver.DriveImmediate(width/2, height/2)
		return
	}

	c.subs = append(c.subs, c.env.Input.SubscribePointer(PointerHandlers{
		Enter: c.handlePointerEnter,
		Move:  c.handlePointerMove,
		Leave: c.handlePointerLeave,
	}))
	c.mode = PointerTracking

	// Settle in from the top-right corner.
	x := width - c.opts.Animation.InitialXOffset
	y := c.opts.Animation.InitialYOffset
	c.driver.DriveImmediate(x, y)
	c.driver.DriveEasedSweep(c.opts.Animation.InitialDuration, x, y, width/2, height/2)
}

func (c *Card) teardown() {
	for _, sub := range c.subs {
		sub.Unsubscribe()
	}
	c.subs = nil
	c.driver.Cancel()
	c.mode = Idle
}

func (c *Card) handlePointerEnter() {
	if c.mode != PointerTracking {
		return
	}
	c.driver.Cancel()
	c.active = true
}

func (c *Card) handlePointerMove(x, y float64) {
	if c.mode != PointerTracking {
		return
	}
	c.driver.DriveImmediate(x, y)
}

func (c *Card) handlePointerLeave(x, y float64) {
	if c.mode != PointerTracking {
		return
	}
	width, height := c.env.Surface.Size()
	c.driver.DriveEasedSweep(c.opts.Animation.SmoothDuration, x, y, width/2, height/2)
	c.active = false
}

func (c *Card) handleOrientation(s OrientationSample) {
	if c.mode != OrientationTracking {
		return
	}
	width, height := c.env.Surface.Size()
	x, y := OrientationToOffset(s.Gamma, s.Beta, width, height)
	c.driver.DriveImmediate(x, y)
}
