package imageload

import (
	"image"
	"image/color"
)

// Target is a surface that displays loaded content. Implementations must be
// comparable (pointer types) and are only touched from the posting goroutine.
type Target interface {
	Bounds() (width, height int)
	SetContent(Content)
	ClearContent()
}

// Content is what a target shows.
type Content struct {
	Image     image.Image
	Crossfade bool
	Fallback  bool // the configured error image rather than the requested one
}

// Resource is a successfully decoded and transformed image.
type Resource struct {
	Image  image.Image
	Bitmap bool // backed by a single static bitmap (false for animated sources)
	Width  int
	Height int
}

// RequestListener observes a request's outcome. Returning true marks the
// outcome handled and suppresses the default rendering.
type RequestListener interface {
	OnFailure(err error, src Source) bool
	OnReady(res Resource, src Source) bool
}

// Transform rounds the image's corners, painting the cut-away area with
// BackgroundHint.
type Transform struct {
	Radius         int
	BackgroundHint color.Color
}

// RoundedCorners builds a corner-rounding transform.
func RoundedCorners(radius int, hint color.Color) Transform {
	return Transform{Radius: radius, BackgroundHint: hint}
}

// Issuer starts a configured request against a target.
type Issuer interface {
	Issue(r *Request, t Target) *Handle
}

// Handle cancels an issued request. A canceled request never reaches its target.
type Handle struct {
	cancel func()
}

// NewHandle wraps a cancel function.
func NewHandle(cancel func()) *Handle {
	return &Handle{cancel: cancel}
}

// Cancel is safe to call more than once.
func (h *Handle) Cancel() {
	if h != nil && h.cancel != nil {
		h.cancel()
	}
}

// Request is a load under construction. Builder methods mutate and return
// the receiver.
type Request struct {
	issuer    Issuer
	source    Source
	crossfade bool
	transform *Transform
	errorID   string
	listener  RequestListener
	asBitmap  bool
	fitCenter bool
}

// NewRequest starts a request for src that Into hands to iss.
func NewRequest(iss Issuer, src Source) *Request {
	return &Request{issuer: iss, source: src}
}

func (r *Request) Crossfade() *Request {
	r.crossfade = true
	return r
}

func (r *Request) Transform(t Transform) *Request {
	r.transform = &t
	return r
}

// Error sets the resource shown when the load fails.
func (r *Request) Error(resourceID string) *Request {
	r.errorID = resourceID
	return r
}

func (r *Request) Listener(l RequestListener) *Request {
	r.listener = l
	return r
}

// AsBitmap decodes to a single static frame.
func (r *Request) AsBitmap() *Request {
	r.asBitmap = true
	return r
}

// FitCenter scales the image to fit the target, preserving aspect ratio.
func (r *Request) FitCenter() *Request {
	r.fitCenter = true
	return r
}

// Into issues the request against t.
func (r *Request) Into(t Target) *Handle {
	return r.issuer.Issue(r, t)
}

func (r *Request) Source() Source { return r.source }

func (r *Request) IsCrossfade() bool { return r.crossfade }

// Transformation returns the configured transform, if any.
func (r *Request) Transformation() (Transform, bool) {
	if r.transform == nil {
		return Transform{}, false
	}
	return *r.transform, true
}

func (r *Request) ErrorID() string { return r.errorID }

func (r *Request) CompletionListener() RequestListener { return r.listener }

func (r *Request) IsBitmap() bool { return r.asBitmap }

func (r *Request) IsFitCenter() bool { return r.fitCenter }
