package imageload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP format support
)

// Options configure a Loader.
type Options struct {
	// Post runs fn on the goroutine that owns the targets. Required.
	Post func(fn func())
	// MediaDir resolves relative locators.
	MediaDir string
	// Workers bounds concurrent decodes; zero uses GOMAXPROCS.
	Workers   int
	ReadFile  func(path string) ([]byte, error)
	Resources *Resources
	Logger    *slog.Logger
}

// Loader issues requests and binds each target to its latest one.
type Loader struct {
	post      func(func())
	mediaDir  string
	readFile  func(string) ([]byte, error)
	resources *Resources
	log       *slog.Logger
	sem       chan struct{}

	mu          sync.Mutex
	generations map[Target]uint64
}

var _ Issuer = (*Loader)(nil)

// New builds a Loader. It panics if opts.Post is nil.
func New(opts Options) *Loader {
	if opts.Post == nil {
		panic("imageload: Options.Post is required")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	resources := opts.Resources
	if resources == nil {
		resources = DefaultResources()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		post:        opts.Post,
		mediaDir:    opts.MediaDir,
		readFile:    readFile,
		resources:   resources,
		log:         logger,
		sem:         make(chan struct{}, workers),
		generations: make(map[Target]uint64),
	}
}

// Load starts building a request for src.
func (l *Loader) Load(src Source) *Request {
	return NewRequest(l, src)
}

// Clear empties t and invalidates anything still in flight for it.
func (l *Loader) Clear(t Target) {
	l.bind(t)
	t.ClearContent()
}

// Forget drops the binding for a target that is being torn down.
func (l *Loader) Forget(t Target) {
	l.mu.Lock()
	delete(l.generations, t)
	l.mu.Unlock()
}

// Issue implements Issuer. It must be called from the posting goroutine.
func (l *Loader) Issue(r *Request, t Target) *Handle {
	gen := l.bind(t)
	t.ClearContent()

	req := *r
	w, h := t.Bounds()
	ctx, cancel := context.WithCancel(context.Background())
	requestsIssued.WithLabelValues(sourceKind(req.source)).Inc()

	go func() {
		res, err := l.produce(ctx, &req, w, h)
		l.post(func() {
			defer cancel()
			l.deliver(ctx, &req, t, gen, res, err)
		})
	}()
	return NewHandle(cancel)
}

func (l *Loader) bind(t Target) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generations[t]++
	return l.generations[t]
}

func (l *Loader) current(t Target, gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generations[t] == gen
}

func (l *Loader) deliver(ctx context.Context, req *Request, t Target, gen uint64, res Resource, err error) {
	if ctx.Err() != nil || !l.current(t, gen) {
		staleDrops.Inc()
		l.log.Debug("dropping stale image result", "source", req.source.String())
		return
	}

	if err != nil {
		requestResults.WithLabelValues("failure").Inc()
		l.log.Warn("image load failed", "source", req.source.String(), "error", err)
		if req.listener != nil && req.listener.OnFailure(err, req.source) {
			return
		}
		if req.errorID == "" {
			return
		}
		if img, ok := l.resources.Get(req.errorID); ok {
			t.SetContent(Content{Image: img, Fallback: true})
		}
		return
	}

	requestResults.WithLabelValues("success").Inc()
	if req.listener != nil && req.listener.OnReady(res, req.source) {
		return
	}
	t.SetContent(Content{Image: res.Image, Crossfade: req.crossfade})
}

func (l *Loader) produce(ctx context.Context, req *Request, w, h int) (Resource, error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return Resource{}, ctx.Err()
	}
	defer func() { <-l.sem }()
	inFlight.Inc()
	defer inFlight.Dec()

	var (
		img    image.Image
		bitmap = true
	)
	switch src := req.source.(type) {
	case DecryptableSource:
		data, err := l.read(src)
		if err != nil {
			return Resource{}, err
		}
		decoded, format, err := decode(data)
		if err != nil {
			return Resource{}, fmt.Errorf("decode %s: %w", src.Locator, err)
		}
		img = decoded
		bitmap = format != "gif" || req.asBitmap
	case ResourceSource:
		glyph, ok := l.resources.Get(src.ID)
		if !ok {
			return Resource{}, fmt.Errorf("load %s: %w", src.ID, ErrUnknownResource)
		}
		img = glyph
	default:
		return Resource{}, fmt.Errorf("unsupported source %T", req.source)
	}

	if err := ctx.Err(); err != nil {
		return Resource{}, err
	}

	if req.fitCenter {
		img = fitCenter(img, w, h)
	}
	if req.transform != nil {
		img = roundCorners(fitInside(img, w, h), req.transform.Radius, req.transform.BackgroundHint)
	}

	b := img.Bounds()
	return Resource{Image: img, Bitmap: bitmap, Width: b.Dx(), Height: b.Dy()}, nil
}

func (l *Loader) read(src DecryptableSource) ([]byte, error) {
	if src.Locator == "" {
		return nil, fmt.Errorf("read media: empty locator")
	}
	path := src.Locator
	if !filepath.IsAbs(path) && l.mediaDir != "" {
		path = filepath.Join(l.mediaDir, path)
	}
	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read media: %w", err)
	}
	if src.Key == nil {
		return data, nil
	}
	return open(src.Key, data)
}

func decode(data []byte) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

func sourceKind(src Source) string {
	switch src.(type) {
	case DecryptableSource:
		return "media"
	case ResourceSource:
		return "resource"
	default:
		return "other"
	}
}
