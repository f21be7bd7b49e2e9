package thumbnail

import (
	"context"
	"image/color"
	"log/slog"

	"github.com/five82/thumbview/internal/attachment"
	"github.com/five82/thumbview/internal/future"
	"github.com/five82/thumbview/internal/imageload"
	"github.com/five82/thumbview/internal/slide"
)

// DeckFuture resolves a message's slide deck.
type DeckFuture = future.Future[*slide.Deck]

// ImageLoader is the slice of the image pipeline a View uses.
type ImageLoader interface {
	Load(src imageload.Source) *imageload.Request
	Clear(t imageload.Target)
}

// ClickListener receives taps that concern a specific slide.
type ClickListener func(v *View, s *slide.Slide)

const defaultRemoveButtonSize = 4

// Options configure a View.
type Options struct {
	Context        context.Context
	Host           Host
	Loader         ImageLoader
	Store          attachment.Store // thumbnail write-back; may be nil
	Poster         Poster
	Logger         *slog.Logger
	CornerRadius   int
	BackgroundHint color.Color
	// RemoveButtonSize is the remove control's edge length; zero uses a default.
	RemoveButtonSize int
}

// View is one thumbnail display surface.
type View struct {
	ctx    context.Context
	host   Host
	loader ImageLoader
	store  attachment.Store
	poster Poster
	log    *slog.Logger

	radius     int
	hint       color.Color
	removeSize int

	image        *Image
	load         *imageload.Handle // in flight for image, nil when idle
	controls     *TransferControls
	removeButton *RemoveButton

	slide        *slide.Slide
	deck         *DeckFuture
	deckListener future.ListenerID
	deckToken    uint64

	visible   bool
	focusable bool
	clickable bool

	onClick        func(v *View)
	thumbnailClick ClickListener
	downloadClick  ClickListener
}

// New builds a View. Loader and Poster are required.
func New(opts Options) *View {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hint := opts.BackgroundHint
	if hint == nil {
		hint = color.Black
	}
	removeSize := opts.RemoveButtonSize
	if removeSize <= 0 {
		removeSize = defaultRemoveButtonSize
	}
	return &View{
		ctx:        ctx,
		host:       opts.Host,
		loader:     opts.Loader,
		store:      opts.Store,
		poster:     opts.Poster,
		log:        logger,
		radius:     opts.CornerRadius,
		hint:       hint,
		removeSize: removeSize,
		image:      &Image{},
		visible:    true,
		focusable:  true,
		clickable:  true,
	}
}

// SetDeckFuture points the surface at a deck that is still resolving.
//
// The previous deck listener is always detached first. When f is a different
// future from the one already tracked, the overlay, image and current slide
// are cleared right away so nothing stale shows while f resolves.
func (v *View) SetDeckFuture(key *imageload.MasterKey, f *DeckFuture, showControls, showRemove bool) {
	if v.deck != nil && v.deckListener != 0 {
		v.deck.RemoveListener(v.deckListener)
		v.deckListener = 0
	}

	if f != v.deck {
		if v.controls != nil {
			v.controls.Clear()
		}
		v.cancelLoad()
		v.loader.Clear(v.image)
		v.slide = nil
	}

	v.deckToken++
	token := v.deckToken
	v.deck = f
	if f == nil {
		return
	}
	v.deckListener = f.AddListener(future.Listener[*slide.Deck]{
		OnSuccess: func(deck *slide.Deck) {
			v.poster.Post(func() { v.onDeckResolved(token, key, deck, showControls, showRemove) })
		},
		OnFailure: func(err error) {
			v.log.Warn("slide deck resolution failed", "error", err)
			v.poster.Post(func() { v.onDeckFailed(token) })
		},
	})
}

func (v *View) onDeckResolved(token uint64, key *imageload.MasterKey, deck *slide.Deck, showControls, showRemove bool) {
	if token != v.deckToken {
		v.log.Debug("dropping superseded slide deck")
		return
	}
	if deck == nil {
		v.log.Warn("resolved slide deck was empty")
		v.setVisible(false)
		return
	}
	s := deck.ThumbnailSlide()
	if s == nil {
		v.log.Warn("resolved slide was nil")
		v.setVisible(false)
		return
	}
	v.SetSlide(key, s, showControls, showRemove)
}

func (v *View) onDeckFailed(token uint64) {
	if token != v.deckToken {
		return
	}
	v.setVisible(false)
}

// SetSlide applies an already-resolved slide. Re-applying an equal slide
// (same attachment, same transfer state) is a no-op.
func (v *View) SetSlide(key *imageload.MasterKey, s *slide.Slide, showControls, showRemove bool) {
	if slide.Equal(s, v.slide) {
		v.log.Debug("not re-loading slide", "attachment", slideID(s))
		return
	}
	if s == nil {
		v.log.Warn("refusing to apply nil slide")
		return
	}
	if !IsValid(v.host) {
		v.log.Warn("not loading slide, host is no longer valid", "attachment", s.ID())
		return
	}

	if showControls {
		c := v.transferControls()
		c.SetSlide(s)
		c.SetDownloadClickListener(v.dispatchDownloadClick)
	} else if v.controls != nil {
		v.controls.SetVisible(false)
	}

	v.log.Debug("loading slide", "attachment", s.ID(), "kind", s.Kind().String(), "transfer", s.TransferState().String())

	switch s.Kind() {
	case slide.KindThumbnail:
		v.issue(v.thumbnailRequest(key, s, showRemove))
	case slide.KindPlaceholder:
		v.issue(v.placeholderRequest(s))
	case slide.KindNone:
		v.cancelLoad()
		v.loader.Clear(v.image)
	}

	v.slide = s
	v.visible = true
}

// SetRawSource shows a media file directly, bypassing slides and the
// transfer overlay.
func (v *View) SetRawSource(key *imageload.MasterKey, locator string) {
	if v.controls != nil {
		v.controls.SetVisible(false)
	}
	if !IsValid(v.host) {
		v.log.Warn("not loading raw source, host is no longer valid", "source", locator)
		return
	}
	v.issue(v.loader.Load(imageload.DecryptableSource{Key: key, Locator: locator}).
		Crossfade().
		Transform(imageload.RoundedCorners(v.radius, v.hint)))
	v.visible = true
}

func (v *View) issue(r *imageload.Request) {
	v.cancelLoad()
	v.load = r.Into(v.image)
}

func (v *View) cancelLoad() {
	v.load.Cancel()
	v.load = nil
}

// Clear detaches the deck listener, clears the image and overlay and forgets
// the current slide. A load still in flight is canceled even when the host is
// gone; only the image clear itself needs a live host.
func (v *View) Clear() {
	v.cancelLoad()
	if IsValid(v.host) {
		v.loader.Clear(v.image)
	}
	if v.deck != nil && v.deckListener != 0 {
		v.deck.RemoveListener(v.deckListener)
	}
	if v.controls != nil {
		v.controls.Clear()
	}
	v.slide = nil
	v.deck = nil
	v.deckListener = 0
	v.deckToken++
}

// ShowProgressSpinner switches the overlay to its spinner, creating it if needed.
func (v *View) ShowProgressSpinner() {
	v.transferControls().ShowProgressSpinner()
}

// Advance steps any running animation.
func (v *View) Advance() {
	if v.controls != nil {
		v.controls.Advance()
	}
}

// Layout records the surface size. With a remove button present the image is
// inset by half the button so the button can overhang the image's corner.
func (v *View) Layout(width, height int) {
	v.image.width, v.image.height = width, height
	if v.removeButton != nil {
		half := v.removeButton.Size / 2
		v.image.padding = Padding{Left: half, Top: half, Right: half}
	}
}

func (v *View) SetBackgroundColorHint(c color.Color) {
	if c != nil {
		v.hint = c
	}
}

func (v *View) BackgroundColorHint() color.Color { return v.hint }

// SetOnClick registers the fallback tap handler used when no
// thumbnail-specific action applies.
func (v *View) SetOnClick(fn func(v *View)) { v.onClick = fn }

func (v *View) SetThumbnailClickListener(l ClickListener) { v.thumbnailClick = l }

func (v *View) SetDownloadClickListener(l ClickListener) { v.downloadClick = l }

// SetRemoveClickListener installs the remove button and pads the image so
// the button has room.
func (v *View) SetRemoveClickListener(fn func(v *View)) {
	b := v.removeControl()
	b.onClick = fn
	v.image.padding = Padding{Left: b.Size, Top: b.Size, Right: b.Size}
}

func (v *View) SetFocusable(b bool) {
	v.focusable = b
	if v.controls != nil {
		v.controls.SetFocusable(b)
	}
}

func (v *View) SetClickable(b bool) {
	v.clickable = b
	if v.controls != nil {
		v.controls.SetClickable(b)
	}
}

func (v *View) Focusable() bool { return v.focusable }

func (v *View) Clickable() bool { return v.clickable }

func (v *View) Visible() bool { return v.visible }

// Slide returns the slide currently shown or loading, nil when cleared.
func (v *View) Slide() *slide.Slide { return v.slide }

func (v *View) Image() *Image { return v.image }

// Controls returns the transfer overlay, nil if it was never created.
func (v *View) Controls() *TransferControls { return v.controls }

// RemoveButton returns the remove control, nil if it was never created.
func (v *View) RemoveButton() *RemoveButton { return v.removeButton }

// Target exposes the image region to callers that need to tear down the
// loader binding.
func (v *View) Target() imageload.Target { return v.image }

func (v *View) setVisible(visible bool) { v.visible = visible }

func (v *View) transferControls() *TransferControls {
	if v.controls == nil {
		v.controls = newTransferControls()
	}
	return v.controls
}

func (v *View) removeControl() *RemoveButton {
	if v.removeButton == nil {
		v.removeButton = &RemoveButton{Size: v.removeSize}
	}
	return v.removeButton
}

func slideID(s *slide.Slide) string {
	if s == nil {
		return ""
	}
	return s.ID()
}
