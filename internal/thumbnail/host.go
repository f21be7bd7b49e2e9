package thumbnail

// Host is the context a View lives in. Any value works; hosts that can be
// torn down implement Destroyable.
type Host interface{}

// Destroyable is a host that can report it has been torn down.
type Destroyable interface {
	Destroyed() bool
}

// IsValid reports whether new work may be issued against host.
func IsValid(host Host) bool {
	d, ok := host.(Destroyable)
	return !ok || !d.Destroyed()
}

// Poster runs fn on the goroutine that owns the View.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(fn func())

func (f PosterFunc) Post(fn func()) { f(fn) }
