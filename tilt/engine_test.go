// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tilt

import (
	"errors"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		x, y          float64
		width, height float64
		want          VisualParameters
	}{
		{
			name: "lower right quadrant", x: 150, y: 75, width: 200, height: 100,
			want: VisualParameters{
				PointerX: 75, PointerY: 75,
				BackgroundX: 57.5, BackgroundY: 57.5,
				PointerFromCenter: 0.707,
				PointerFromTop:    0.75, PointerFromLeft: 0.75,
				RotateX: -5, RotateY: 6.25,
			},
		},
		{
			name: "center", x: 100, y: 50, width: 200, height: 100,
			want: VisualParameters{
				PointerX: 50, PointerY: 50,
				BackgroundX: 50, BackgroundY: 50,
				PointerFromCenter: 0,
				PointerFromTop:    0.5, PointerFromLeft: 0.5,
				RotateX: 0, RotateY: 0,
			},
		},
		{
			name: "origin", x: 0, y: 0, width: 200, height: 100,
			want: VisualParameters{
				PointerX: 0, PointerY: 0,
				BackgroundX: 35, BackgroundY: 35,
				PointerFromCenter: 1,
				PointerFromTop:    0, PointerFromLeft: 0,
				RotateX: 10, RotateY: -12.5,
			},
		},
		{
			name: "far corner", x: 200, y: 100, width: 200, height: 100,
			want: VisualParameters{
				PointerX: 100, PointerY: 100,
				BackgroundX: 65, BackgroundY: 65,
				PointerFromCenter: 1,
				PointerFromTop:    1, PointerFromLeft: 1,
				RotateX: -10, RotateY: 12.5,
			},
		},
		{
			name: "outside is clamped", x: -40, y: 500, width: 200, height: 100,
			want: VisualParameters{
				PointerX: 0, PointerY: 100,
				BackgroundX: 35, BackgroundY: 65,
				PointerFromCenter: 1,
				PointerFromTop:    1, PointerFromLeft: 0,
				RotateX: 10, RotateY: 12.5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.x, tt.y, tt.width, tt.height)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeInvalidDimension(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"negative width", -1, 100},
		{"negative height", 100, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(10, 10, tt.width, tt.height)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("Compute() error = %v, want %v", err, ErrInvalidDimension)
			}
		})
	}
}

func TestComputeStaysInRange(t *testing.T) {
	const width, height = 320.0, 480.0

	for x := 0.0; x <= width; x += 7.3 {
		for y := 0.0; y <= height; y += 11.1 {
			p, err := Compute(x, y, width, height)
			if err != nil {
				t.Fatalf("Compute(%v, %v) error = %v", x, y, err)
			}
			if p.PointerX < 0 || p.PointerX > 100 || p.PointerY < 0 || p.PointerY > 100 {
				t.Fatalf("Compute(%v, %v) pointer out of range: %+v", x, y, p)
			}
			if p.BackgroundX < 35 || p.BackgroundX > 65 || p.BackgroundY < 35 || p.BackgroundY > 65 {
				t.Fatalf("Compute(%v, %v) background out of range: %+v", x, y, p)
			}
			if p.PointerFromCenter < 0 || p.PointerFromCenter > 1 {
				t.Fatalf("Compute(%v, %v) pointer_from_center out of range: %v", x, y, p.PointerFromCenter)
			}
			if p.PointerFromTop < 0 || p.PointerFromTop > 1 || p.PointerFromLeft < 0 || p.PointerFromLeft > 1 {
				t.Fatalf("Compute(%v, %v) edge ratios out of range: %+v", x, y, p)
			}
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	first, _ := Compute(123.456, 78.9, 300, 200)
	for i := 0; i < 100; i++ {
		again, _ := Compute(123.456, 78.9, 300, 200)
		if again != first {
			t.Fatalf("Compute() changed between calls: %+v vs %+v", first, again)
		}
	}
}

func TestStyleVars(t *testing.T) {
	p, _ := Compute(150, 75, 200, 100)
	want := []StyleVar{
		{VarPointerX, "75%"},
		{VarPointerY, "75%"},
		{VarBackgroundX, "57.5%"},
		{VarBackgroundY, "57.5%"},
		{VarPointerFromCenter, "0.707"},
		{VarPointerFromTop, "0.75"},
		{VarPointerFromLeft, "0.75"},
		{VarRotateX, "-5deg"},
		{VarRotateY, "6.25deg"},
	}

	got := p.StyleVars()
	if len(got) != len(want) {
		t.Fatalf("StyleVars() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("StyleVars()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStyleVarsCenterHasNoNegativeZero(t *testing.T) {
	p, _ := Compute(100, 50, 200, 100)
	s := newFakeSurface(200, 100)
	p.Apply(s)

	if s.props[VarRotateX] != "0deg" {
		t.Errorf("%s = %q, want 0deg", VarRotateX, s.props[VarRotateX])
	}
	if s.props[VarRotateY] != "0deg" {
		t.Errorf("%s = %q, want 0deg", VarRotateY, s.props[VarRotateY])
	}
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name                               string
		value, fromMin, fromMax, toMin, to float64
		want                               float64
	}{
		{"gamma quarter", 22.5, -45, 45, 0, 100, 75},
		{"beta level", 0, -30, 30, 0, 100, 50},
		{"background low", 0, 0, 100, 35, 65, 35},
		{"background mid", 50, 0, 100, 35, 65, 50},
		{"reversed range", 0.25, 0, 1, 150, 100, 137.5},
		{"rounds to three places", 1, 0, 3, 0, 1, 0.333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Adjust(tt.value, tt.fromMin, tt.fromMax, tt.toMin, tt.to)
			if got != tt.want {
				t.Errorf("Adjust() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrientationToOffset(t *testing.T) {
	tests := []struct {
		name        string
		gamma, beta float64
		wantX       float64
		wantY       float64
	}{
		{"level", 0, 0, 100, 50},
		{"tilted right", 22.5, 0, 150, 50},
		{"beyond the range clamps", 90, -60, 200, 0},
		{"tilted back", 0, 15, 100, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := OrientationToOffset(tt.gamma, tt.beta, 200, 100)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("OrientationToOffset() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}

	// gamma 22.5, beta 0 lands on 75%/50%
	x, y := OrientationToOffset(22.5, 0, 200, 100)
	p, _ := Compute(x, y, 200, 100)
	if p.PointerX != 75 || p.PointerY != 50 {
		t.Errorf("orientation pose = %v%%/%v%%, want 75%%/50%%", p.PointerX, p.PointerY)
	}
}

func BenchmarkCompute(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Compute(150, 75, 200, 100)
	}
}
