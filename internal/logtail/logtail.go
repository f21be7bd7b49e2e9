package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Entry is one log line with the level it was written at.
type Entry struct {
	Level slog.Level
	Text  string
}

// Read returns at most maxLines entries at or above minLevel from the end of
// the log at path. A missing file yields no entries. maxLines <= 0 reads all.
func Read(path string, maxLines int, minLevel slog.Level) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var ring []Entry
	idx := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := Entry{Level: ParseLevel(line), Text: line}
		if e.Level < minLevel {
			continue
		}
		if maxLines <= 0 || len(ring) < maxLines {
			ring = append(ring, e)
			continue
		}
		ring[idx] = e
		idx = (idx + 1) % maxLines
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if idx == 0 {
		return ring, nil
	}
	entries := make([]Entry, 0, len(ring))
	entries = append(entries, ring[idx:]...)
	entries = append(entries, ring[:idx]...)
	return entries, nil
}

// ParseLevel extracts the level from a slog text or JSON line. Lines without
// a recognizable level are treated as info.
func ParseLevel(line string) slog.Level {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		var rec struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal([]byte(trimmed), &rec); err == nil {
			return levelFromName(rec.Level)
		}
	}
	for _, field := range strings.Fields(trimmed) {
		if v, ok := strings.CutPrefix(field, "level="); ok {
			return levelFromName(v)
		}
	}
	return slog.LevelInfo
}

func levelFromName(name string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
