// Package thumbnail implements the attachment thumbnail surface.
//
// A View owns exactly one logical thumbnail slot. It can be pointed at a
// deferred slide deck (a future), an already-resolved slide, or a raw media
// locator. It decides whether the new input needs any work, tears down stale
// visual state, issues the right image request and routes taps depending on
// the attachment's transfer state.
//
// # Threading
//
// Every exported View method must be called from the owner's goroutine (the
// Bubble Tea Update loop in this program). Work that finishes elsewhere, deck
// resolution and image decoding, comes back through the Poster, and each
// posted closure checks that the request it belongs to is still current
// before touching anything.
//
// # Load strategy
//
// A slide resolves to one of three kinds (see slide.Kind):
//
//   - thumbnail: crossfade + rounded corners; an error glyph unless the
//     transfer is still in progress; a completion listener when the remove
//     button is shown, which caches the decoded bitmap and re-anchors the
//     button to the image's real bounds
//   - placeholder: a static glyph, fit-centered, no crossfade
//   - none: the image region is cleared
package thumbnail
