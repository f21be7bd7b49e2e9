// Package logtail reads the tail of thumbview's own log for the in-app log pane.
//
// Read makes one pass over the file and keeps at most maxLines entries in a
// ring, so memory stays bounded however large the log grows. Each line's slog
// level is recovered from either handler format:
//
//	time=2026-01-02T15:04:05Z level=WARN msg="image load failed" source=a.png
//	{"time":"2026-01-02T15:04:05Z","level":"WARN","msg":"image load failed"}
//
// which lets the pane hide debug chatter:
//
//	entries, err := logtail.Read(cfg.LogPath, 200, slog.LevelWarn)
//
// A log that does not exist yet is not an error; Read returns no entries.
package logtail
