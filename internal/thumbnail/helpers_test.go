package thumbnail

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/five82/thumbview/internal/attachment"
	"github.com/five82/thumbview/internal/imageload"
	"github.com/five82/thumbview/internal/slide"
)

type issuedLoad struct {
	req    *imageload.Request
	target imageload.Target
}

// fakeLoader records requests instead of decoding anything.
type fakeLoader struct {
	issued []issuedLoad
	clears int
}

func (f *fakeLoader) Load(src imageload.Source) *imageload.Request {
	return imageload.NewRequest(f, src)
}

func (f *fakeLoader) Issue(r *imageload.Request, t imageload.Target) *imageload.Handle {
	t.ClearContent()
	f.issued = append(f.issued, issuedLoad{req: r, target: t})
	return imageload.NewHandle(nil)
}

func (f *fakeLoader) Clear(t imageload.Target) {
	f.clears++
	t.ClearContent()
}

func (f *fakeLoader) last(t *testing.T) issuedLoad {
	t.Helper()
	if len(f.issued) == 0 {
		t.Fatal("no image load was issued")
	}
	return f.issued[len(f.issued)-1]
}

// land simulates the loader delivering an image into the last target.
func (f *fakeLoader) land(t *testing.T, img image.Image) {
	t.Helper()
	f.last(t).target.SetContent(imageload.Content{Image: img})
}

type queuePoster struct {
	queue []func()
}

func (p *queuePoster) Post(fn func()) { p.queue = append(p.queue, fn) }

func (p *queuePoster) drain() {
	for len(p.queue) > 0 {
		fn := p.queue[0]
		p.queue = p.queue[1:]
		fn()
	}
}

type memStore struct {
	thumbnails map[string][]byte
	writes     int
}

func newMemStore() *memStore {
	return &memStore{thumbnails: make(map[string][]byte)}
}

func (m *memStore) Get(context.Context, string) (attachment.Attachment, error) {
	return attachment.Attachment{}, attachment.ErrNotFound
}

func (m *memStore) ListByMessage(context.Context, string) ([]attachment.Attachment, error) {
	return nil, nil
}

func (m *memStore) SetThumbnail(_ context.Context, id string, png []byte) error {
	m.thumbnails[id] = png
	m.writes++
	return nil
}

func (m *memStore) SetTransferState(context.Context, string, attachment.TransferState) error {
	return nil
}

type screen struct {
	destroyed bool
}

func (s *screen) Destroyed() bool { return s.destroyed }

type fixture struct {
	view   *View
	loader *fakeLoader
	poster *queuePoster
	store  *memStore
	host   *screen
}

func newFixture() *fixture {
	f := &fixture{
		loader: &fakeLoader{},
		poster: &queuePoster{},
		store:  newMemStore(),
		host:   &screen{},
	}
	f.view = New(Options{
		Host:           f.host,
		Loader:         f.loader,
		Store:          f.store,
		Poster:         f.poster,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		CornerRadius:   3,
		BackgroundHint: color.NRGBA{R: 1, G: 2, B: 3, A: 0xff},
	})
	f.view.Layout(40, 30)
	return f
}

func imageSlide(id string, state attachment.TransferState) *slide.Slide {
	return slide.New(attachment.Attachment{
		ID:            id,
		MessageID:     "m",
		ContentType:   "image/png",
		DataPath:      "/media/" + id + ".png",
		TransferState: state,
	})
}

func deckOf(slides ...*slide.Slide) *slide.Deck {
	atts := make([]attachment.Attachment, 0, len(slides))
	for _, s := range slides {
		atts = append(atts, s.Attachment())
	}
	return slide.NewDeck(atts)
}

func solid(w, h int) image.Image {
	return imaging.New(w, h, color.White)
}
