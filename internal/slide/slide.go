// Package slide models the renderable view of message attachments.
package slide

import (
	"strings"

	"github.com/five82/thumbview/internal/attachment"
)

// Placeholder names a static glyph shown when no real thumbnail exists.
type Placeholder string

const (
	PlaceholderNone     Placeholder = ""
	PlaceholderVideo    Placeholder = "video"
	PlaceholderAudio    Placeholder = "audio"
	PlaceholderDocument Placeholder = "document"
)

// Kind is the load strategy a slide resolves to.
type Kind int

const (
	// KindNone means there is nothing to draw; the image region is cleared.
	KindNone Kind = iota
	// KindThumbnail means a real preview can be decoded.
	KindThumbnail
	// KindPlaceholder means a static glyph stands in for the preview.
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindThumbnail:
		return "thumbnail"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "none"
	}
}

// Slide is an immutable snapshot of one attachment and its transfer state.
type Slide struct {
	att         attachment.Attachment
	thumbnail   string
	placeholder Placeholder
}

// New builds a slide from an attachment record.
//
// Images preview themselves once their bytes are local; any content type can
// carry an explicit preview file. Video, audio and other documents fall back to
// a placeholder glyph.
func New(a attachment.Attachment) *Slide {
	s := &Slide{att: a, thumbnail: a.ThumbnailPath}
	isImage := strings.HasPrefix(a.ContentType, "image/")
	if s.thumbnail == "" && isImage {
		s.thumbnail = a.DataPath
	}

	switch {
	case isImage:
	case strings.HasPrefix(a.ContentType, "video/"):
		s.placeholder = PlaceholderVideo
	case strings.HasPrefix(a.ContentType, "audio/"):
		s.placeholder = PlaceholderAudio
	case a.ContentType != "":
		s.placeholder = PlaceholderDocument
	}
	return s
}

// Attachment returns the backing record.
func (s *Slide) Attachment() attachment.Attachment { return s.att }

// ID returns the backing attachment's identity.
func (s *Slide) ID() string { return s.att.ID }

// DataLocator is where the attachment's bytes live; empty until downloaded.
func (s *Slide) DataLocator() string { return s.att.DataPath }

// ThumbnailLocator is the preview source, empty when there is none.
func (s *Slide) ThumbnailLocator() string { return s.thumbnail }

func (s *Slide) HasThumbnail() bool { return s.thumbnail != "" }

func (s *Slide) Placeholder() Placeholder { return s.placeholder }

func (s *Slide) HasPlaceholder() bool { return s.placeholder != PlaceholderNone }

func (s *Slide) TransferState() attachment.TransferState { return s.att.TransferState }

// IsVisual reports whether the attachment is an image or video, which the
// surface represents even before a preview exists.
func (s *Slide) IsVisual() bool {
	ct := s.att.ContentType
	return strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/")
}

func (s *Slide) IsInProgress() bool {
	return s.att.TransferState == attachment.TransferInProgress
}

// Kind picks the load strategy: thumbnail, then placeholder, then nothing.
func (s *Slide) Kind() Kind {
	switch {
	case s == nil:
		return KindNone
	case s.HasThumbnail():
		return KindThumbnail
	case s.HasPlaceholder():
		return KindPlaceholder
	default:
		return KindNone
	}
}

// Equal reports whether two slides denote the same rendered state: same
// attachment and same transfer state. Two nil slides are equal.
func Equal(a, b *Slide) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.att.ID == b.att.ID && a.att.TransferState == b.att.TransferState
}

// Equal is the method form of Equal.
func (s *Slide) Equal(other *Slide) bool { return Equal(s, other) }
