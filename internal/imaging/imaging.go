// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging generates thumbnails for uploaded media. It decodes
// JPEG, PNG and WebP sources and produces a JPEG scaled down with
// Catmull-Rom resampling. Pure Go, no system dependencies.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxPixels caps the decoded size to prevent memory bombs.
// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
const MaxPixels = 100_000_000

// Thumbnail creates a JPEG thumbnail from an image, constrained to
// maxWidth while preserving aspect ratio. Returns nil bytes (no error)
// when the source is already narrower than maxWidth. src must support
// seeking: dimensions are checked before the full decode.
func Thumbnail(src io.Reader, maxWidth, quality int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)
	}

	// Already small enough, nothing to generate.
	if cfg.Width <= maxWidth {
		return nil, nil
	}

	seeker, ok := src.(io.Seeker)
	if !ok {
		return nil, fmt.Errorf("source does not support seeking")
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newWidth := maxWidth
	newHeight := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
