package imageload

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("parse color %q: want #rgb or #rrggbb", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// fitInside downscales img to fit within w x h. Smaller images are untouched.
func fitInside(img image.Image, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return img
	}
	return imaging.Fit(img, w, h, imaging.Lanczos)
}

// fitCenter scales img up or down so it fits w x h with its aspect ratio kept.
func fitCenter(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if w <= 0 || h <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	scale := math.Min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	nw := max(1, int(math.Round(float64(b.Dx())*scale)))
	nh := max(1, int(math.Round(float64(b.Dy())*scale)))
	if nw == b.Dx() && nh == b.Dy() {
		return img
	}
	return imaging.Resize(img, nw, nh, imaging.Lanczos)
}

// roundCorners returns a copy of img whose corners outside a circle of the
// given radius are painted with hint.
func roundCorners(img image.Image, radius int, hint color.Color) *image.NRGBA {
	dst := imaging.Clone(img)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	r := min(radius, w/2, h/2)
	if r <= 0 {
		return dst
	}
	if hint == nil {
		hint = color.Black
	}
	fill := color.NRGBAModel.Convert(hint).(color.NRGBA)

	limit := float64(r * r)
	for y := 0; y < r; y++ {
		for x := 0; x < r; x++ {
			dx := float64(r-x) - 0.5
			dy := float64(r-y) - 0.5
			if dx*dx+dy*dy <= limit {
				continue
			}
			dst.SetNRGBA(x, y, fill)
			dst.SetNRGBA(w-1-x, y, fill)
			dst.SetNRGBA(x, h-1-y, fill)
			dst.SetNRGBA(w-1-x, h-1-y, fill)
		}
	}
	return dst
}
