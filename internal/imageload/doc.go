// Package imageload is the asynchronous image pipeline behind the thumbnail
// surface.
//
// # Overview
//
// A caller builds a Request from a Source, configures it and issues it into
// a Target. Decoding and transforming run on a bounded pool of goroutines;
// completions are posted back through Options.Post so targets are only ever
// touched from the owner's goroutine.
//
//	loader.Load(imageload.DecryptableSource{Key: key, Locator: "a1.png"}).
//		Crossfade().
//		Transform(imageload.RoundedCorners(2, hint)).
//		Error(imageload.ResourceMissingThumbnail).
//		Into(target)
//
// # Request Options
//
//   - Crossfade: the target animates the new content in
//   - Transform: downscale to the target bounds, then round the corners and
//     paint the cut-off area with the background hint
//   - Error: a placeholder resource shown when the load fails
//   - Listener: OnReady/OnFailure hooks; returning true consumes the result
//     and the target is left alone
//   - AsBitmap: decode animated formats to a single static frame
//   - FitCenter: scale to fit the target bounds, aspect ratio kept
//
// # Target Binding
//
// Each Target is bound to its most recent request by a generation counter:
//
//	Into(t)   → generation[t]++ → worker decodes → Post(deliver)
//	Into(t)   → generation[t]++                      ↓
//	Clear(t)  → generation[t]++          deliver sees an old generation
//	                                     and drops the result
//
// A completion is delivered only if its generation is still current and its
// Handle was not canceled. Forget drops the binding for a target that is
// being torn down for good.
//
// # Sources
//
// DecryptableSource reads a media file, resolved against Options.MediaDir
// when relative. Files may be sealed with a MasterKey (NaCl secretbox, 24-byte
// nonce prefix); a source without a key reads the file as-is. JPEG, PNG, GIF,
// BMP, TIFF and WebP decode through imaging and x/image.
//
// ResourceSource names one of the embedded placeholder glyphs (see
// DefaultResources), drawn once at startup.
//
// # Metrics
//
// The loader registers Prometheus collectors with the default registry:
//
//   - thumbview_image_requests_total{kind}: loads issued, media or resource
//   - thumbview_image_results_total{outcome}: success or failure deliveries
//   - thumbview_image_stale_drops_total: completions dropped as stale
//   - thumbview_image_loads_in_flight: decodes currently running
//
// Package app serves them on /metrics when metrics_addr is configured.
package imageload
