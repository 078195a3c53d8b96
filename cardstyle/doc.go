// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cardstyle renders the static style variables of a profile card.

StaticVars turns Props into --icon, --grain, --behind-gradient,
--inner-gradient and --card-radius, falling back to the built-in gradients
and grain texture when a value is unset:

	style := cardstyle.Inline(cardstyle.StaticVars(props), cardstyle.RestingVars())

Gradients are user input that ends up in a style attribute; ValidateGradient
must pass before one is stored. GradientColors and Palette pull the literal
colour stops out of a gradient for previews.
*/
package cardstyle
