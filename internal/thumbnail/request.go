package thumbnail

import (
	"bytes"
	"context"
	"time"

	"github.com/disintegration/imaging"

	"github.com/five82/thumbview/internal/imageload"
	"github.com/five82/thumbview/internal/slide"
)

const thumbnailWriteTimeout = 2 * time.Second

func (v *View) thumbnailRequest(key *imageload.MasterKey, s *slide.Slide, showRemove bool) *imageload.Request {
	req := v.loader.Load(imageload.DecryptableSource{Key: key, Locator: s.ThumbnailLocator()}).
		Crossfade().
		Transform(imageload.RoundedCorners(v.radius, v.hint))

	if showRemove {
		req = req.Listener(&thumbnailSetListener{view: v, attachmentID: s.ID()})
	}

	// An in-progress transfer may simply not have bytes yet.
	if s.IsInProgress() {
		return req
	}
	return req.Error(imageload.ResourceMissingThumbnail)
}

func (v *View) placeholderRequest(s *slide.Slide) *imageload.Request {
	return v.loader.Load(imageload.ResourceSource{ID: string(s.Placeholder())}).
		AsBitmap().
		FitCenter()
}

// thumbnailSetListener caches the decoded bitmap on the attachment and
// re-anchors the remove button to the image's decoded bounds.
type thumbnailSetListener struct {
	view         *View
	attachmentID string
}

func (l *thumbnailSetListener) OnFailure(error, imageload.Source) bool {
	return false
}

func (l *thumbnailSetListener) OnReady(res imageload.Resource, _ imageload.Source) bool {
	v := l.view
	if !IsValid(v.host) {
		v.log.Debug("dropping thumbnail, host is no longer valid", "attachment", l.attachmentID)
		return true
	}
	if res.Bitmap && v.store != nil {
		v.log.Debug("thumbnail ready for a bitmap, saving", "attachment", l.attachmentID)
		l.save(res)
	}

	b := v.removeControl()
	pad := v.image.padding
	if res.Width < v.image.width {
		b.TopMargin = 0
		b.RightMargin = max(0, (v.image.width-pad.Right-res.Width)/2)
	} else {
		b.TopMargin = max(0, (v.image.height-pad.Top-res.Height)/2)
		b.RightMargin = 0
	}
	return false
}

func (l *thumbnailSetListener) save(res imageload.Resource) {
	v := l.view
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, res.Image, imaging.PNG); err != nil {
		v.log.Warn("encode thumbnail", "attachment", l.attachmentID, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(v.ctx, thumbnailWriteTimeout)
	defer cancel()
	if err := v.store.SetThumbnail(ctx, l.attachmentID, buf.Bytes()); err != nil {
		v.log.Warn("save thumbnail", "attachment", l.attachmentID, "error", err)
	}
}
