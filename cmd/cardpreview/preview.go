// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/danielhkuo/linkcard/cardstyle"
	"github.com/danielhkuo/linkcard/tilt"
)

const (
	cardCols = 36
	cardRows = 18

	// Degrees per arrow key press while simulating orientation
	orientationStep = 5.0
)

// subscription removes one listener; calling it twice is harmless
type subscription struct {
	cancel func()
}

func (s *subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// preview is the terminal host for one card. It is the card's Surface and
// InputSource, and like the card it lives on the event loop goroutine.
type preview struct {
	card *tilt.Card
	vars map[string]string

	originX, originY int
	inside           bool

	pointer     *tilt.PointerHandlers
	orientation func(tilt.OrientationSample)
	gamma, beta float64

	palette []colorful.Color
	handle  string
}

func newPreview(gradient, handle string) *preview {
	if gradient == "" {
		gradient = cardstyle.DefaultInnerGradient
	}
	palette := cardstyle.GradientColors(gradient)
	if len(palette) == 0 {
		palette = []colorful.Color{{R: 0.38, G: 0.29, B: 0.43}, {R: 0.44, G: 0.77, B: 1}}
	}
	return &preview{
		vars:    make(map[string]string),
		palette: palette,
		handle:  handle,
	}
}

func (p *preview) Size() (float64, float64) {
	return cardCols, cardRows
}

func (p *preview) SetProperty(name, value string) {
	p.vars[name] = value
}

func (p *preview) SubscribePointer(h tilt.PointerHandlers) tilt.Subscription {
	p.pointer = &h
	return &subscription{cancel: func() { p.pointer = nil; p.inside = false }}
}

func (p *preview) SubscribeOrientation(fn func(tilt.OrientationSample)) tilt.Subscription {
	p.orientation = fn
	return &subscription{cancel: func() { p.orientation = nil }}
}

// layout centres the card on a screen of the given size
func (p *preview) layout(width, height int) {
	p.originX = max(0, (width-cardCols)/2)
	p.originY = max(0, (height-cardRows)/2)
}

// mouse converts a screen position to card offsets and fires enter, move
// and leave like a browser would
func (p *preview) mouse(x, y int) {
	if p.pointer == nil {
		return
	}
	cx := float64(x-p.originX) + 0.5
	cy := float64(y-p.originY) + 0.5
	hit := cx >= 0 && cx <= cardCols && cy >= 0 && cy <= cardRows

	switch {
	case hit && !p.inside:
		p.inside = true
		if p.pointer.Enter != nil {
			p.pointer.Enter()
		}
		if p.pointer.Move != nil {
			p.pointer.Move(cx, cy)
		}
	case hit:
		if p.pointer.Move != nil {
			p.pointer.Move(cx, cy)
		}
	case p.inside:
		p.inside = false
		if p.pointer.Leave != nil {
			p.pointer.Leave(cx, cy)
		}
	}
}

// tiltDevice nudges the simulated device and emits an orientation sample
func (p *preview) tiltDevice(dGamma, dBeta float64) {
	p.gamma = min(max(p.gamma+dGamma, -90), 90)
	p.beta = min(max(p.beta+dBeta, -180), 180)
	if p.orientation != nil {
		p.orientation(tilt.OrientationSample{Gamma: p.gamma, Beta: p.beta})
	}
}

// handleEvent applies one terminal event and reports whether to keep running
func (p *preview) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			p.tiltDevice(-orientationStep, 0)
		case tcell.KeyRight:
			p.tiltDevice(orientationStep, 0)
		case tcell.KeyUp:
			p.tiltDevice(0, -orientationStep)
		case tcell.KeyDown:
			p.tiltDevice(0, orientationStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'p', ' ':
				p.card.Tap(ctx)
			case 't':
				p.card.SetTiltEnabled(p.card.Mode() == tilt.Idle)
			case 'c':
				p.card.ContactClick()
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		p.mouse(x, y)
		if ev.Buttons()&tcell.Button1 != 0 {
			p.card.Tap(ctx)
		}
	case *tcell.EventResize:
		p.layout(ev.Size())
	}
	return true
}

// pose reads the applied style variables back as numbers
func (p *preview) pose() tilt.VisualParameters {
	return tilt.VisualParameters{
		PointerX:          p.number(tilt.VarPointerX, 50),
		PointerY:          p.number(tilt.VarPointerY, 50),
		BackgroundX:       p.number(tilt.VarBackgroundX, 50),
		BackgroundY:       p.number(tilt.VarBackgroundY, 50),
		PointerFromCenter: p.number(tilt.VarPointerFromCenter, 0),
		PointerFromTop:    p.number(tilt.VarPointerFromTop, 0.5),
		PointerFromLeft:   p.number(tilt.VarPointerFromLeft, 0.5),
		RotateX:           p.number(tilt.VarRotateX, 0),
		RotateY:           p.number(tilt.VarRotateY, 0),
	}
}

func (p *preview) number(name string, fallback float64) float64 {
	v, ok := p.vars[name]
	if !ok {
		return fallback
	}
	v = strings.TrimSuffix(strings.TrimSuffix(v, "%"), "deg")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

// shade colours one card cell. The base runs along the gradient palette,
// the glare brightens cells near the pointer and active cards glow more.
func shade(palette []colorful.Color, pose tilt.VisualParameters, col, row int, active bool) colorful.Color {
	fx := (float64(col) + 0.5) / cardCols
	fy := (float64(row) + 0.5) / cardRows

	base := gradientAt(palette, (fx+fy)/2)

	dx := fx - pose.PointerX/100
	dy := (fy - pose.PointerY/100) * cardRows / cardCols * 2
	glare := math.Max(0, 1-math.Hypot(dx, dy)*1.6)

	strength := 0.35
	if active {
		strength = 0.75
	}
	strength *= 0.5 + pose.PointerFromCenter/2

	return base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, glare*strength).Clamped()
}

func gradientAt(palette []colorful.Color, t float64) colorful.Color {
	if len(palette) == 1 {
		return palette[0]
	}
	t = min(max(t, 0), 1)
	pos := t * float64(len(palette)-1)
	i := min(int(pos), len(palette)-2)
	return palette[i].BlendHcl(palette[i+1], pos-float64(i)).Clamped()
}

// skew is the horizontal shift of a row, standing in for the 3D rotation
func skew(pose tilt.VisualParameters, row int) int {
	rel := (float64(row) + 0.5 - cardRows/2) / (cardRows / 2)
	return int(math.Round(pose.RotateX / 5 * rel))
}

func (p *preview) draw(screen tcell.Screen) {
	screen.Clear()

	pose := p.pose()
	active := p.card.Active()

	for row := 0; row < cardRows; row++ {
		shift := skew(pose, row)
		for col := 0; col < cardCols; col++ {
			c := shade(p.palette, pose, col, row, active)
			r, g, b := c.RGB255()
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			screen.SetContent(p.originX+col+shift, p.originY+row, ' ', nil, style)
		}
	}

	label := "@" + p.handle
	drawText(screen, p.originX+(cardCols-len(label))/2, p.originY+cardRows-2, label,
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	if p.card.PermissionPromptVisible() {
		drawText(screen, p.originX+2, p.originY+1, "Tap to enable device motion",
			tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack))
	}

	status := fmt.Sprintf("mode=%s rotate=(%.1f, %.1f) pointer=(%.0f%%, %.0f%%) gamma=%.0f beta=%.0f",
		p.card.Mode(), pose.RotateX, pose.RotateY, pose.PointerX, pose.PointerY, p.gamma, p.beta)
	drawText(screen, 0, 0, status, tcell.StyleDefault.Foreground(tcell.ColorGray))
	drawText(screen, 0, 1, "mouse: tilt  arrows: device  p: permission  t: toggle  q: quit",
		tcell.StyleDefault.Foreground(tcell.ColorGray))

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
