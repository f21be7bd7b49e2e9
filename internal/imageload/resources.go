package imageload

import (
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
)

// ResourceMissingThumbnail is the fallback glyph for failed thumbnail loads.
const ResourceMissingThumbnail = "missing_thumbnail"

const glyphSize = 48

// Resources holds built-in glyph images by id.
type Resources struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewResources returns an empty registry.
func NewResources() *Resources {
	return &Resources{images: make(map[string]image.Image)}
}

// DefaultResources returns the placeholder glyphs for video, audio and
// document attachments plus the missing-thumbnail fallback.
func DefaultResources() *Resources {
	r := NewResources()
	r.Register("video", glyph(color.NRGBA{0x3b, 0x42, 0x52, 0xff}, color.NRGBA{0x88, 0xc0, 0xd0, 0xff}, triangle))
	r.Register("audio", glyph(color.NRGBA{0x3b, 0x42, 0x52, 0xff}, color.NRGBA{0xa3, 0xbe, 0x8c, 0xff}, bars))
	r.Register("document", glyph(color.NRGBA{0x3b, 0x42, 0x52, 0xff}, color.NRGBA{0xe5, 0xe9, 0xf0, 0xff}, page))
	r.Register(ResourceMissingThumbnail, glyph(color.NRGBA{0x2e, 0x34, 0x40, 0xff}, color.NRGBA{0xbf, 0x61, 0x6a, 0xff}, cross))
	return r
}

// Register adds or replaces a glyph.
func (r *Resources) Register(id string, img image.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images[id] = img
}

// Get looks up a glyph.
func (r *Resources) Get(id string) (image.Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[id]
	return img, ok
}

type shape func(x, y, size int) bool

func glyph(bg, fg color.NRGBA, inside shape) image.Image {
	img := imaging.New(glyphSize, glyphSize, bg)
	for y := 0; y < glyphSize; y++ {
		for x := 0; x < glyphSize; x++ {
			if inside(x, y, glyphSize) {
				img.SetNRGBA(x, y, fg)
			}
		}
	}
	return img
}

func triangle(x, y, size int) bool {
	left, top, bottom := size/3, size/4, size-size/4
	if x < left || y < top || y >= bottom {
		return false
	}
	mid := size / 2
	span := (x - left)
	return y >= mid-(bottom-top)/2+span/2 && y < mid+(bottom-top)/2-span/2
}

func bars(x, y, size int) bool {
	col := (x - size/4) / (size / 8)
	if x < size/4 || col > 3 || (x-size/4)%(size/8) >= size/16 {
		return false
	}
	heights := []int{size / 3, size / 2, size / 4, size * 2 / 5}
	return y >= size*3/4-heights[col] && y < size*3/4
}

func page(x, y, size int) bool {
	return x >= size/4 && x < size*3/4 && y >= size/6 && y < size*5/6
}

func cross(x, y, size int) bool {
	margin := size / 4
	if x < margin || x >= size-margin || y < margin || y >= size-margin {
		return false
	}
	d1 := x - y
	d2 := x + y - (size - 1)
	return (d1 >= -1 && d1 <= 1) || (d2 >= -1 && d2 <= 1)
}
