// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cardstyle

import (
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/linkcard/tilt"
)

func varsToMap(vars []tilt.StyleVar) map[string]string {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	return m
}

func TestStaticVarsDefaults(t *testing.T) {
	got := varsToMap(StaticVars(Props{ShowBehindGradient: true, CardRadius: DefaultCardRadius}))

	want := map[string]string{
		VarIcon:           "none",
		VarGrain:          `url("` + FallbackGrain + `")`,
		VarBehindGradient: DefaultBehindGradient,
		VarInnerGradient:  DefaultInnerGradient,
		VarCardRadius:     "30px",
	}
	for name, value := range want {
		if got[name] != value {
			t.Errorf("%s = %q, want %q", name, got[name], value)
		}
	}
}

func TestStaticVarsCustom(t *testing.T) {
	p := Props{
		IconURL:            "/uploads/icon.webp",
		GrainURL:           "https://cdn.example.com/grain.png",
		BehindGradient:     "linear-gradient(90deg,#fff 0%,#000 100%)",
		InnerGradient:      "linear-gradient(145deg,#111 0%,#222 100%)",
		ShowBehindGradient: true,
		CardRadius:         12,
	}
	got := varsToMap(StaticVars(p))

	tests := []struct {
		name string
		want string
	}{
		{VarIcon, `url("/uploads/icon.webp")`},
		{VarGrain, `url("https://cdn.example.com/grain.png")`},
		{VarBehindGradient, p.BehindGradient},
		{VarInnerGradient, p.InnerGradient},
		{VarCardRadius, "12px"},
	}
	for _, tt := range tests {
		if got[tt.name] != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, got[tt.name], tt.want)
		}
	}
}

func TestStaticVarsHiddenBehindGradient(t *testing.T) {
	got := varsToMap(StaticVars(Props{BehindGradient: "linear-gradient(red,blue)", ShowBehindGradient: false}))
	if got[VarBehindGradient] != "none" {
		t.Errorf("%s = %q, want none", VarBehindGradient, got[VarBehindGradient])
	}
}

func TestStaticVarsRadiusOutOfRange(t *testing.T) {
	for _, r := range []int{-1, 51, 1000} {
		got := varsToMap(StaticVars(Props{CardRadius: r}))
		if got[VarCardRadius] != "30px" {
			t.Errorf("radius %d rendered %q, want 30px", r, got[VarCardRadius])
		}
	}
}

func TestCSSURLEscapesQuotes(t *testing.T) {
	got := cssURL(`/a"b\c`)
	if got != `url("/a\"b\\c")` {
		t.Errorf("cssURL() = %s", got)
	}
}

func TestRestingVarsAreCentered(t *testing.T) {
	got := varsToMap(RestingVars())
	if got[tilt.VarPointerX] != "50%" || got[tilt.VarRotateX] != "0deg" || got[tilt.VarPointerFromCenter] != "0" {
		t.Errorf("RestingVars() = %v", got)
	}
}

func TestMiniAvatar(t *testing.T) {
	if got := MiniAvatar(Props{AvatarURL: "/a.webp"}); got != "/a.webp" {
		t.Errorf("MiniAvatar() = %q, want avatar fallback", got)
	}
	if got := MiniAvatar(Props{AvatarURL: "/a.webp", MiniAvatarURL: "/m.webp"}); got != "/m.webp" {
		t.Errorf("MiniAvatar() = %q, want /m.webp", got)
	}
}

func TestInline(t *testing.T) {
	got := Inline(
		[]tilt.StyleVar{{Name: "--a", Value: "1"}},
		[]tilt.StyleVar{{Name: "--b", Value: "2px"}},
	)
	if got != "--a: 1; --b: 2px;" {
		t.Errorf("Inline() = %q", got)
	}
	if !strings.HasPrefix(Inline(StaticVars(Props{})), VarIcon+": none;") {
		t.Error("Inline(StaticVars()) does not start with the icon variable")
	}
}

func TestValidateGradient(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"empty means default", "", false},
		{"default behind", DefaultBehindGradient, false},
		{"default inner", DefaultInnerGradient, false},
		{"repeating", "repeating-linear-gradient(45deg,#000 0 10px,#fff 10px 20px)", false},
		{"plain colour", "red", true},
		{"unbalanced", "linear-gradient(#fff,#000", true},
		{"closing first", ")linear-gradient(#fff,#000(", true},
		{"declaration break", "linear-gradient(#fff,#000); background: red", true},
		{"remote resource", "linear-gradient(#fff,#000),url(https://evil.example)", true},
		{"markup", "linear-gradient(#fff,#000)</style>", true},
		{"too long", "linear-gradient(" + strings.Repeat("#fff,", 500) + "#000)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGradient(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGradient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidGradient) {
				t.Errorf("ValidateGradient() error = %v, want ErrInvalidGradient", err)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	got := Palette(DefaultInnerGradient)
	want := []string{"#60496e", "#71c4ff"}
	if len(got) != len(want) {
		t.Fatalf("Palette() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Palette()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGradientColorsSkipsVariables(t *testing.T) {
	colors := GradientColors("radial-gradient(circle,hsla(266,100%,90%,var(--card-opacity)) 4%,rgb(255,0,0) 50%)")
	if len(colors) != 1 {
		t.Fatalf("GradientColors() found %d colours, want 1", len(colors))
	}
	if colors[0].Hex() != "#ff0000" {
		t.Errorf("GradientColors()[0] = %s, want #ff0000", colors[0].Hex())
	}
}
