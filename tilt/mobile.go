// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tilt

import (
	"context"
	"regexp"
)

// MobilePredicate classifies a client as a phone or tablet. Any answer is a
// best guess.
type MobilePredicate func(userAgent string, viewportWidth int, touch bool) bool

var mobileUserAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// DetectMobile matches well-known mobile user agents, or a narrow touch
// viewport. A viewportWidth of 0 means unknown.
func DetectMobile(userAgent string, viewportWidth int, touch bool) bool {
	if mobileUserAgent.MatchString(userAgent) {
		return true
	}
	return touch && viewportWidth > 0 && viewportWidth <= 768
}

// StaticCapabilities is a fixed Capabilities answer, for hosts that know
// their platform up front.
type StaticCapabilities struct {
	Mobile          bool
	Orientation     bool
	NeedsPermission bool
	// Grant answers RequestPermission. Nil grants immediately.
	Grant func(ctx context.Context) (bool, error)
}

func (s StaticCapabilities) IsMobile() bool             { return s.Mobile }
func (s StaticCapabilities) OrientationSupported() bool { return s.Orientation }
func (s StaticCapabilities) PermissionRequired() bool   { return s.NeedsPermission }

func (s StaticCapabilities) RequestPermission(ctx context.Context) (bool, error) {
	if s.Grant == nil {
		return true, nil
	}
	return s.Grant(ctx)
}
