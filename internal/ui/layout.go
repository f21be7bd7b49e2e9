package ui

import "time"

// Layout dimensions, in terminal cells.
const (
	// ListWidth is the width of the message list pane.
	ListWidth = 30

	// ChromeRows is the header, overlay and footer rows around the preview.
	ChromeRows = 4

	// MinPreviewWidth is the narrowest preview that is still drawn.
	MinPreviewWidth = 8
)

// Timing constants.
const (
	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = time.Second

	// DeckTimeout bounds a single slide deck lookup.
	DeckTimeout = 5 * time.Second
)
