package slide

import "github.com/five82/thumbview/internal/attachment"

// Deck is the ordered set of slides attached to one message.
type Deck struct {
	slides []*Slide
}

// NewDeck wraps a message's attachments, preserving order.
func NewDeck(atts []attachment.Attachment) *Deck {
	d := &Deck{slides: make([]*Slide, 0, len(atts))}
	for _, a := range atts {
		d.slides = append(d.slides, New(a))
	}
	return d
}

// Slides returns the deck's slides in order.
func (d *Deck) Slides() []*Slide {
	if d == nil {
		return nil
	}
	return d.slides
}

// ThumbnailSlide returns the first visual slide, or failing that the first
// slide that can draw anything. Nil when the deck has neither.
func (d *Deck) ThumbnailSlide() *Slide {
	for _, s := range d.Slides() {
		if s.IsVisual() {
			return s
		}
	}
	for _, s := range d.Slides() {
		if s.Kind() != KindNone {
			return s
		}
	}
	return nil
}
