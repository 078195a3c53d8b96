// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package imaging normalises uploaded card images (avatars, icons, grain
// textures) to size-capped lossless WebP. PNG, JPEG, GIF, BMP, WebP and TGA
// are accepted; formats are sniffed from content rather than trusted from
// the client. Image headers are checked against a pixel budget before any
// pixels are decoded, so a small file cannot declare a huge canvas.
package imaging
