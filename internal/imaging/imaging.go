// Package imaging processes uploaded property and city photos: decode,
// downscale and re-encode to WebP before they hit storage.
package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxDimension is the longest edge of a stored photo.
	MaxDimension = 1600
	// Quality is the WebP encoding quality.
	Quality = 80
)

// Result holds the processed photo and its content hash.
type Result struct {
	Content []byte
	Hash    string
	Width   int
	Height  int
}

// Process decodes a JPEG, PNG or WebP photo, scales it down so the longest
// edge is at most MaxDimension, and re-encodes it as WebP.
func Process(content []byte) (*Result, error) {
	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	scaled := scaleDown(src, MaxDimension)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, scaled, &webp.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	bounds := scaled.Bounds()
	return &Result{
		Content: buf.Bytes(),
		Hash:    hex.EncodeToString(sum[:]),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}, nil
}

// scaleDown resizes src so its longest edge is at most maxEdge, preserving
// aspect ratio. Images already small enough are returned unchanged.
func scaleDown(src image.Image, maxEdge int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	newW, newH := w, h
	if w >= h {
		newW = maxEdge
		newH = h * maxEdge / w
	} else {
		newH = maxEdge
		newW = w * maxEdge / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
