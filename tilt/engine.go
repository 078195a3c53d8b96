// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tilt

import (
	"errors"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

var ErrInvalidDimension = errors.New("tilt: width and height must be positive")

// Style variable names written to the card wrapper.
const (
	VarPointerX          = "--pointer-x"
	VarPointerY          = "--pointer-y"
	VarBackgroundX       = "--background-x"
	VarBackgroundY       = "--background-y"
	VarPointerFromCenter = "--pointer-from-center"
	VarPointerFromTop    = "--pointer-from-top"
	VarPointerFromLeft   = "--pointer-from-left"
	VarRotateX           = "--rotate-x"
	VarRotateY           = "--rotate-y"
)

// PointerSample is an offset in pixels inside the card's bounding box.
type PointerSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VisualParameters is everything the card stylesheet needs to render one
// tilt pose. Percent fields are in [0,100], ratios in [0,1], rotations in
// degrees.
type VisualParameters struct {
	PointerX          float64 `json:"pointer_x"`
	PointerY          float64 `json:"pointer_y"`
	BackgroundX       float64 `json:"background_x"`
	BackgroundY       float64 `json:"background_y"`
	PointerFromCenter float64 `json:"pointer_from_center"`
	PointerFromTop    float64 `json:"pointer_from_top"`
	PointerFromLeft   float64 `json:"pointer_from_left"`
	RotateX           float64 `json:"rotate_x"`
	RotateY           float64 `json:"rotate_y"`
}

// StyleVar is one named style variable and its rendered value.
type StyleVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Surface is the element the card writes its style variables onto.
type Surface interface {
	Size() (width, height float64)
	SetProperty(name, value string)
}

// Compute maps a pointer offset inside a width×height card to the tilt
// parameters. It has no state; identical inputs give identical outputs.
func Compute(offsetX, offsetY, width, height float64) (VisualParameters, error) {
	if !(width > 0) || !(height > 0) {
		return VisualParameters{}, ErrInvalidDimension
	}

	percentX := clamp(100*offsetX/width, 0, 100)
	percentY := clamp(100*offsetY/height, 0, 100)

	centerX := percentX - 50
	centerY := percentY - 50

	return VisualParameters{
		PointerX:          round(percentX),
		PointerY:          round(percentY),
		BackgroundX:       Adjust(percentX, 0, 100, 35, 65),
		BackgroundY:       Adjust(percentY, 0, 100, 35, 65),
		PointerFromCenter: round(clamp(math.Hypot(centerY, centerX)/50, 0, 1)),
		PointerFromTop:    round(percentY / 100),
		PointerFromLeft:   round(percentX / 100),
		// Vertical tilt is deliberately stronger than horizontal.
		RotateX: round(-(centerX / 5)),
		RotateY: round(centerY / 4),
	}, nil
}

// StyleVars renders the parameters in a fixed order.
func (p VisualParameters) StyleVars() []StyleVar {
	return []StyleVar{
		{VarPointerX, formatNumber(p.PointerX) + "%"},
		{VarPointerY, formatNumber(p.PointerY) + "%"},
		{VarBackgroundX, formatNumber(p.BackgroundX) + "%"},
		{VarBackgroundY, formatNumber(p.BackgroundY) + "%"},
		{VarPointerFromCenter, formatNumber(p.PointerFromCenter)},
		{VarPointerFromTop, formatNumber(p.PointerFromTop)},
		{VarPointerFromLeft, formatNumber(p.PointerFromLeft)},
		{VarRotateX, formatNumber(p.RotateX) + "deg"},
		{VarRotateY, formatNumber(p.RotateY) + "deg"},
	}
}

// Apply writes every style variable onto s.
func (p VisualParameters) Apply(s Surface) {
	for _, v := range p.StyleVars() {
		s.SetProperty(v.Name, v.Value)
	}
}

// Adjust linearly rescales value from [fromMin,fromMax] to [toMin,toMax].
// The result is not clamped.
func Adjust(value, fromMin, fromMax, toMin, toMax float64) float64 {
	return round(toMin + ((toMax-toMin)*(value-fromMin))/(fromMax-fromMin))
}

// OrientationToOffset converts device tilt angles into the pixel offset the
// pointer would have produced. Gamma covers [-45°,45°] left to right, beta
// covers [-30°,30°] back to front.
func OrientationToOffset(gamma, beta, width, height float64) (x, y float64) {
	percentX := clamp(Adjust(gamma, -45, 45, 0, 100), 0, 100)
	percentY := clamp(Adjust(beta, -30, 30, 0, 100), 0, 100)
	return percentX / 100 * width, percentY / 100 * height
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// round keeps three decimals so repeated frames at the same position
// render the same string.
func round(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0 // no "-0"
	}
	return r
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
