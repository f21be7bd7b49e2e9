package thumbnail

import "github.com/five82/thumbview/internal/imageload"

// Padding insets the image region inside the surface.
type Padding struct {
	Left, Top, Right, Bottom int
}

// Image is the surface's image region and the target of its loads.
type Image struct {
	content imageload.Content
	present bool
	padding Padding
	width   int
	height  int
}

var _ imageload.Target = (*Image)(nil)

// Bounds is the drawable area: the surface size minus padding.
func (i *Image) Bounds() (int, int) {
	w := i.width - i.padding.Left - i.padding.Right
	h := i.height - i.padding.Top - i.padding.Bottom
	return max(0, w), max(0, h)
}

func (i *Image) SetContent(c imageload.Content) {
	i.content = c
	i.present = true
}

func (i *Image) ClearContent() {
	i.content = imageload.Content{}
	i.present = false
}

// Content returns what is currently drawn, if anything.
func (i *Image) Content() (imageload.Content, bool) {
	return i.content, i.present
}

func (i *Image) Padding() Padding { return i.padding }
