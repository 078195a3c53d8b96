// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cardstyle

import (
	"strconv"
	"strings"

	"github.com/danielhkuo/linkcard/tilt"
)

const (
	DefaultBehindGradient = "radial-gradient(farthest-side circle at var(--pointer-x) var(--pointer-y),hsla(266,100%,90%,var(--card-opacity)) 4%,hsla(266,50%,80%,calc(var(--card-opacity)*0.75)) 10%,hsla(266,25%,70%,calc(var(--card-opacity)*0.5)) 50%,hsla(266,0%,60%,0) 100%),radial-gradient(35% 52% at 55% 20%,#00ffaac4 0%,#073aff00 100%),radial-gradient(100% 100% at 50% 50%,#00c1ffff 1%,#073aff00 76%),conic-gradient(from 124deg at 50% 50%,#c137ffff 0%,#07c6ffff 40%,#07c6ffff 60%,#c137ffff 100%)"

	DefaultInnerGradient = "linear-gradient(145deg,#60496e8c 0%,#71C4FF44 100%)"

	// FallbackGrain is a tiny repeating noise tile used when no grain
	// texture is configured.
	FallbackGrain = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAACAAAAAgCAMAAABEpIrGAAAABlBMVEUAAAD///+l2Z/dAAAAAnRSTlMAAQGU/a4AAAAeSURBVHjaY2BgYGZmZmZmZGRkZGRkZGRgYGBgYGAAAJ4ACa0CJRkAAAAASUVORK5CYII="

	DefaultCardRadius = 30
	MaxCardRadius     = 50
)

// Static style variable names.
const (
	VarIcon           = "--icon"
	VarGrain          = "--grain"
	VarBehindGradient = "--behind-gradient"
	VarInnerGradient  = "--inner-gradient"
	VarCardRadius     = "--card-radius"
)

// Props are the inputs of one profile card.
type Props struct {
	Name               string `json:"name"`
	Title              string `json:"title"`
	Handle             string `json:"handle"`
	Status             string `json:"status"`
	ContactText        string `json:"contact_text"`
	AvatarURL          string `json:"avatar_url,omitempty"`
	MiniAvatarURL      string `json:"mini_avatar_url,omitempty"`
	IconURL            string `json:"icon_url,omitempty"`
	GrainURL           string `json:"grain_url,omitempty"`
	BehindGradient     string `json:"behind_gradient,omitempty"`
	InnerGradient      string `json:"inner_gradient,omitempty"`
	ShowBehindGradient bool   `json:"show_behind_gradient"`
	EnableTilt         bool   `json:"enable_tilt"`
	ShowUserInfo       bool   `json:"show_user_info"`
	CardRadius         int    `json:"card_radius"`
}

// StaticVars returns the style variables that do not move with the pointer.
func StaticVars(p Props) []tilt.StyleVar {
	icon := "none"
	if p.IconURL != "" {
		icon = cssURL(p.IconURL)
	}

	grain := cssURL(FallbackGrain)
	if p.GrainURL != "" {
		grain = cssURL(p.GrainURL)
	}

	behind := "none"
	if p.ShowBehindGradient {
		behind = p.BehindGradient
		if behind == "" {
			behind = DefaultBehindGradient
		}
	}

	inner := p.InnerGradient
	if inner == "" {
		inner = DefaultInnerGradient
	}

	radius := p.CardRadius
	if radius < 0 || radius > MaxCardRadius {
		radius = DefaultCardRadius
	}

	return []tilt.StyleVar{
		{Name: VarIcon, Value: icon},
		{Name: VarGrain, Value: grain},
		{Name: VarBehindGradient, Value: behind},
		{Name: VarInnerGradient, Value: inner},
		{Name: VarCardRadius, Value: strconv.Itoa(radius) + "px"},
	}
}

// RestingVars is the centered tilt pose, rendered before any input arrives.
func RestingVars() []tilt.StyleVar {
	// Centered on a unit card; every output is size independent at the center.
	params, _ := tilt.Compute(0.5, 0.5, 1, 1)
	return params.StyleVars()
}

// MiniAvatar falls back to the main avatar.
func MiniAvatar(p Props) string {
	if p.MiniAvatarURL != "" {
		return p.MiniAvatarURL
	}
	return p.AvatarURL
}

// Inline joins vars into a style attribute value.
func Inline(vars ...[]tilt.StyleVar) string {
	var b strings.Builder
	for _, group := range vars {
		for _, v := range group {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v.Name)
			b.WriteString(": ")
			b.WriteString(v.Value)
			b.WriteByte(';')
		}
	}
	return b.String()
}

func cssURL(u string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", "", "\r", "")
	return `url("` + r.Replace(u) + `")`
}
