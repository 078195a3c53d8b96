// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrEmptyImage        = errors.New("image has no pixels")
	ErrImageTooLarge     = errors.New("image dimensions exceed the pixel budget")
)

// Result is an upload re-encoded as WebP.
type Result struct {
	Data         []byte
	Width        int
	Height       int
	SourceFormat string
}

type decoder struct {
	format string
	match  func(header []byte) bool
	config func(io.Reader) (image.Config, error)
	decode func(io.Reader) (image.Image, error)
}

// TGA has no magic number, so it is recognised by file name only and is
// tried last.
var decoders = []decoder{
	{"png", hasPrefix("\x89PNG\r\n\x1a\n"), png.DecodeConfig, png.Decode},
	{"jpeg", hasPrefix("\xff\xd8\xff"), jpeg.DecodeConfig, func(r io.Reader) (image.Image, error) { return jpeg.Decode(r) }},
	{"gif", func(h []byte) bool { return bytes.HasPrefix(h, []byte("GIF87a")) || bytes.HasPrefix(h, []byte("GIF89a")) }, gif.DecodeConfig, gif.Decode},
	{"bmp", hasPrefix("BM"), bmp.DecodeConfig, bmp.Decode},
	{"webp", func(h []byte) bool { return len(h) >= 12 && string(h[:4]) == "RIFF" && string(h[8:12]) == "WEBP" }, webp.DecodeConfig, webp.Decode},
}

var tgaDecoder = decoder{"tga", nil, tga.DecodeConfig, tga.Decode}

func hasPrefix(magic string) func([]byte) bool {
	return func(h []byte) bool { return bytes.HasPrefix(h, []byte(magic)) }
}

// Decode sniffs the content and decodes it with the matching decoder. The
// file name is only consulted for TGA. The header is read first and images
// over maxPixels are refused before any pixel buffer is allocated; a
// maxPixels <= 0 disables the check.
func Decode(r io.Reader, filename string, maxPixels int64) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("imaging: read: %w", err)
	}

	d, ok := pickDecoder(data, filename)
	if !ok {
		return nil, "", ErrUnsupportedFormat
	}

	cfg, err := d.config(bytes.NewReader(data))
	if err != nil {
		return nil, d.format, fmt.Errorf("imaging: decode %s header: %w", d.format, err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, d.format, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, err := d.decode(bytes.NewReader(data))
	if err != nil {
		return nil, d.format, fmt.Errorf("imaging: decode %s: %w", d.format, err)
	}
	return img, d.format, nil
}

func pickDecoder(data []byte, filename string) (decoder, bool) {
	header := data[:min(len(data), 12)]
	for _, d := range decoders {
		if d.match(header) {
			return d, true
		}
	}
	if strings.EqualFold(filepath.Ext(filename), ".tga") {
		return tgaDecoder, true
	}
	return decoder{}, false
}

// Fit scales src down so neither side exceeds maxDim. Smaller images are
// copied unscaled.
func Fit(src image.Image, maxDim int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := 1.0
	if longest := max(w, h); maxDim > 0 && longest > maxDim {
		scale = float64(maxDim) / float64(longest)
	}

	dw := max(1, int(math.Round(float64(w)*scale)))
	dh := max(1, int(math.Round(float64(h)*scale)))
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	if scale == 1 {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("imaging: webp encode: %w", err)
	}
	return nil
}

// Process decodes an upload, fits it into maxDim and re-encodes it as WebP.
func Process(r io.Reader, filename string, maxDim int, maxPixels int64) (Result, error) {
	src, format, err := Decode(r, filename, maxPixels)
	if err != nil {
		return Result{}, err
	}
	if src.Bounds().Empty() {
		return Result{}, ErrEmptyImage
	}

	img := Fit(src, maxDim)

	var buf bytes.Buffer
	if err := EncodeWebP(&buf, img); err != nil {
		return Result{}, err
	}

	return Result{
		Data:         buf.Bytes(),
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
		SourceFormat: format,
	}, nil
}
