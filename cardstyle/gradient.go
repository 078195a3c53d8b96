// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cardstyle

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

var ErrInvalidGradient = errors.New("invalid gradient")

const maxGradientLength = 2048

var (
	gradientFunc = regexp.MustCompile(`(?i)(?:repeating-)?(?:linear|radial|conic)-gradient\(`)
	colorToken   = regexp.MustCompile(`(?i)#[0-9a-f]{3,8}\b|(?:rgba?|hsla?)\([^()]*\)`)
)

// Gradients end up inside a style attribute, so anything that could close
// the declaration or pull in a resource is refused.
var forbiddenGradientTokens = []string{";", "{", "}", "<", ">", `"`, "'", `\`, "url(", "expression(", "@import"}

// ValidateGradient accepts an empty string (use the default) or a CSS
// gradient expression.
func ValidateGradient(s string) error {
	if s == "" {
		return nil
	}
	if len(s) > maxGradientLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidGradient, maxGradientLength)
	}

	lower := strings.ToLower(s)
	for _, tok := range forbiddenGradientTokens {
		if strings.Contains(lower, tok) {
			return fmt.Errorf("%w: must not contain %q", ErrInvalidGradient, tok)
		}
	}

	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unbalanced parentheses", ErrInvalidGradient)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: unbalanced parentheses", ErrInvalidGradient)
	}

	if !gradientFunc.MatchString(s) {
		return fmt.Errorf("%w: no gradient function", ErrInvalidGradient)
	}
	return nil
}

// GradientColors returns the colour stops of s that are literal hex, rgb(a)
// or hsl(a) colours, in order. Stops built from var() or calc() are skipped.
func GradientColors(s string) []colorful.Color {
	var colors []colorful.Color
	for _, tok := range colorToken.FindAllString(s, -1) {
		c, err := csscolorparser.Parse(tok)
		if err != nil {
			continue
		}
		colors = append(colors, colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped())
	}
	return colors
}

// Palette is GradientColors as hex strings.
func Palette(s string) []string {
	colors := GradientColors(s)
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		out = append(out, c.Hex())
	}
	return out
}
