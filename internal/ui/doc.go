// Package ui is the Bubble Tea front end of thumbview.
//
// The screen has a message list on the left and one thumbnail surface on the
// right, drawn with upper half blocks so each cell carries two pixels. The
// remove control sits inside the surface at the margins the thumbnail
// computed for it; the download button or spinner has its own row beneath
// the surface, and a short help line sits at the bottom.
//
// # Threading
//
// The Bubble Tea Update goroutine owns the thumbnail surface. Work finishing
// elsewhere (slide deck lookups, image decodes) reaches it through
// programPoster, which queues closures and hands them to Program.Send as
// postedMsg values from its own goroutine. Update runs them in order.
//
// # Refresh
//
// The poller in package app keeps a state.Store current. On every tick the
// model takes a snapshot:
//
//   - a different selected message is resolved from scratch with a new deck
//     future
//   - the same message has its current slide re-applied with the fresh
//     transfer state; unchanged slides are skipped by the surface
//   - a slide whose attachment vanished re-resolves the message
//
// # Keys
//
// j/k move the selection, enter opens a downloaded attachment, d downloads,
// x removes, c clears the preview, r reloads, b cycles the corner background
// and T cycles the theme. Theme and background choices persist in prefs.
package ui
