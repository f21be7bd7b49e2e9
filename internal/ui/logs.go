package ui

import (
	"log/slog"
	"strings"
)

// renderLogs renders the tail of the thumbview log in place of the list and
// preview.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	rows := m.previewRows()
	lines := make([]string, 0, rows)

	entries := m.logLines
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}
	for _, e := range entries {
		style := styles.Text
		switch {
		case e.Level >= slog.LevelError:
			style = styles.DangerText
		case e.Level >= slog.LevelWarn:
			style = styles.WarningText
		case e.Level < slog.LevelInfo:
			style = styles.FaintText
		}
		lines = append(lines, style.MaxWidth(m.width).Render(e.Text))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.MutedText.Render("log is empty"))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
