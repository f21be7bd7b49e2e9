package thumbnail

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/thumbview/internal/attachment"
	"github.com/five82/thumbview/internal/imageload"
	"github.com/five82/thumbview/internal/slide"
)

func TestCompletionListener(t *testing.T) {
	tests := []struct {
		name      string
		res       imageload.Resource
		wantWrite bool
		wantTop   int
		wantRight int
	}{
		{
			name:      "narrow bitmap anchors to the right",
			res:       imageload.Resource{Image: solid(10, 10), Bitmap: true, Width: 10, Height: 10},
			wantWrite: true,
			wantTop:   0,
			wantRight: (40 - 4 - 10) / 2,
		},
		{
			name:      "full width animation anchors to the top",
			res:       imageload.Resource{Image: solid(40, 20), Bitmap: false, Width: 40, Height: 20},
			wantWrite: false,
			wantTop:   (30 - 4 - 20) / 2,
			wantRight: 0,
		},
		{
			name:      "oversized image clamps to zero",
			res:       imageload.Resource{Image: solid(60, 60), Bitmap: true, Width: 60, Height: 60},
			wantWrite: true,
			wantTop:   0,
			wantRight: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.view.SetRemoveClickListener(func(*View) {})
			s := imageSlide("a", attachment.TransferDone)
			f.view.SetSlide(nil, s, false, true)

			l := f.loader.last(t).req.CompletionListener()
			require.NotNil(t, l)
			assert.False(t, l.OnReady(tt.res, f.loader.last(t).req.Source()))

			if tt.wantWrite {
				require.Contains(t, f.store.thumbnails, "a")
				img, err := imaging.Decode(bytes.NewReader(f.store.thumbnails["a"]))
				require.NoError(t, err)
				assert.Equal(t, tt.res.Image.Bounds().Size(), img.Bounds().Size())
			} else {
				assert.Zero(t, f.store.writes)
			}

			b := f.view.RemoveButton()
			assert.Equal(t, tt.wantTop, b.TopMargin)
			assert.Equal(t, tt.wantRight, b.RightMargin)
		})
	}
}

func TestCompletionListener_FailureIsNotHandled(t *testing.T) {
	f := newFixture()
	f.view.SetSlide(nil, imageSlide("a", attachment.TransferDone), false, true)
	l := f.loader.last(t).req.CompletionListener()
	require.NotNil(t, l)
	assert.False(t, l.OnFailure(errors.New("decode"), nil))
	assert.Zero(t, f.store.writes)
}

// Runs the real loader end to end: the surface's request policy decides
// whether a failed thumbnail falls back to the missing-thumbnail glyph.
func TestSurfaceWithLoader_FallbackFollowsTransferState(t *testing.T) {
	tests := []struct {
		state    attachment.TransferState
		fallback bool
	}{
		{attachment.TransferDone, true},
		{attachment.TransferInProgress, false},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			posted := make(chan func(), 8)
			post := func(fn func()) { posted <- fn }
			loader := imageload.New(imageload.Options{
				Post:     post,
				MediaDir: "/media",
				ReadFile: func(string) ([]byte, error) { return nil, os.ErrNotExist },
			})
			v := New(Options{Loader: loader, Poster: PosterFunc(post)})
			v.Layout(16, 16)

			v.SetSlide(nil, imageSlide("a", tt.state), false, false)

			select {
			case fn := <-posted:
				fn()
			case <-time.After(2 * time.Second):
				t.Fatal("load never completed")
			}

			c, present := v.Image().Content()
			assert.Equal(t, tt.fallback, present)
			if tt.fallback {
				assert.True(t, c.Fallback)
			}
		})
	}
}

func TestSurfaceWithLoader_PlaceholderLands(t *testing.T) {
	posted := make(chan func(), 8)
	post := func(fn func()) { posted <- fn }
	loader := imageload.New(imageload.Options{Post: post})
	v := New(Options{Loader: loader, Poster: PosterFunc(post)})
	v.Layout(20, 10)

	v.SetSlide(nil, slide.New(attachment.Attachment{ID: "d", ContentType: "application/pdf"}), false, false)

	select {
	case fn := <-posted:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("load never completed")
	}

	c, present := v.Image().Content()
	require.True(t, present)
	assert.False(t, c.Crossfade)
	assert.Equal(t, 10, c.Image.Bounds().Dx())
	assert.Equal(t, 10, c.Image.Bounds().Dy())
}
