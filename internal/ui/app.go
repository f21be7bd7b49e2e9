package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/thumbview/internal/attachment"
	"github.com/five82/thumbview/internal/future"
	"github.com/five82/thumbview/internal/imageload"
	"github.com/five82/thumbview/internal/logging"
	"github.com/five82/thumbview/internal/logtail"
	"github.com/five82/thumbview/internal/prefs"
	"github.com/five82/thumbview/internal/slide"
	"github.com/five82/thumbview/internal/state"
	"github.com/five82/thumbview/internal/thumbnail"
)

// Actions performs the side effects the surface's taps ask for.
type Actions interface {
	Download(attachmentID string)
	Remove(attachmentID string)
}

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Attachments attachment.Store // deck lookups and thumbnail write-back; nil uses snapshot data
	Actions     Actions

	// Loader and Poster are built by Run; tests inject their own.
	Loader thumbnail.ImageLoader
	Poster thumbnail.Poster

	MediaDir       string
	MasterKey      *imageload.MasterKey
	CornerRadius   int
	BackgroundHint string
	PollTick       time.Duration
	ThemeName      string
	PrefsPath      string
	LogPath        string // shown in the log pane; empty disables it
}

// preview is the state shared by every copy of the Model: the surface and
// the listeners registered on it.
type preview struct {
	surface  *thumbnail.View
	host     *screen
	pending  *thumbnail.DeckFuture
	message  string // message the surface was last pointed at
	original bool   // showing the original media instead of the thumbnail
	status   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	attachments attachment.Store
	key         *imageload.MasterKey
	prefsPath   string
	logPath     string
	pollTick    time.Duration
	log         *slog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	hint     string
	width    int
	height   int
	ready    bool
	showHelp bool
	showLogs bool
	logLines []logtail.Entry

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	selected    int

	preview *preview
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	hint := opts.BackgroundHint
	if hint == "" {
		hint = prefs.NextHint("")
	}

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		attachments: opts.Attachments,
		key:         opts.MasterKey,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		pollTick:    pollTick,
		log:         logging.For("ui"),
		theme:       GetTheme(opts.ThemeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		hint:        hint,
	}

	host := &screen{}
	surface := thumbnail.New(thumbnail.Options{
		Context:        ctx,
		Host:           host,
		Loader:         opts.Loader,
		Store:          opts.Attachments,
		Poster:         opts.Poster,
		Logger:         logging.For("thumbnail"),
		CornerRadius:   opts.CornerRadius,
		BackgroundHint: hintColor(hint),
	})
	m.preview = &preview{surface: surface, host: host}
	m.wireSurface(opts.Actions)
	return m
}

func (m Model) wireSurface(actions Actions) {
	p := m.preview
	key := m.key

	p.surface.SetThumbnailClickListener(func(v *thumbnail.View, s *slide.Slide) {
		v.SetRawSource(key, s.DataLocator())
		p.original = true
		p.status = "original " + s.DataLocator()
	})
	p.surface.SetDownloadClickListener(func(v *thumbnail.View, s *slide.Slide) {
		if actions != nil {
			actions.Download(s.ID())
		}
		v.ShowProgressSpinner()
		p.status = "downloading " + shortID(s.ID())
	})
	p.surface.SetRemoveClickListener(func(v *thumbnail.View) {
		s := v.Slide()
		if s == nil {
			return
		}
		if actions != nil {
			actions.Remove(s.ID())
		}
		v.Clear()
		p.status = "removed " + shortID(s.ID())
	})
	p.surface.SetOnClick(func(*thumbnail.View) {
		p.status = "nothing to open yet"
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		frameCmd(),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.preview.surface.Layout(m.previewCols(), m.previewRows()*2)
		wasReady := m.ready
		m.ready = true
		if !wasReady {
			m.showSelected()
		}
		return m, nil

	case tickMsg:
		return m.handleTick()

	case frameMsg:
		m.preview.surface.Advance()
		return m, frameCmd()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case postedMsg:
		msg.fn()
		return m, nil

	case logsMsg:
		m.logLines = msg
		return m, nil

	case logErrorMsg:
		m.log.Debug("read log pane", "error", msg.err)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	surface := m.preview.surface
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Logs):
		if m.logPath == "" {
			return m, nil
		}
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, readLogsCmd(m.logPath, m.previewRows())
		}

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.CycleHint):
		m.hint = prefs.NextHint(m.hint)
		surface.SetBackgroundColorHint(hintColor(m.hint))
		m.savePrefs()
		m.reload()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(m.selected + 1)
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.snapshot.Messages) - 1)

	case key.Matches(msg, m.keys.Open):
		surface.Click()
	case key.Matches(msg, m.keys.Back):
		if m.preview.original {
			m.reload()
		}
	case key.Matches(msg, m.keys.Download):
		surface.DownloadClick()
	case key.Matches(msg, m.keys.Remove):
		surface.RemoveClick()
	case key.Matches(msg, m.keys.Clear):
		surface.Clear()
		m.preview.status = "cleared"
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	}
	return m, nil
}

func (m *Model) moveSelection(to int) {
	n := len(m.snapshot.Messages)
	if n == 0 {
		return
	}
	to = max(0, min(to, n-1))
	if to == m.selected {
		return
	}
	m.selected = to
	m.showSelected()
}

// showSelected points the surface at the selected message's deck.
func (m *Model) showSelected() {
	if !m.ready || len(m.snapshot.Messages) == 0 {
		return
	}
	msg := m.snapshot.Messages[m.selected]
	p := m.preview
	p.message = msg.ID
	p.original = false

	fut := m.deckFuture(msg)
	p.surface.SetDeckFuture(m.key, fut, true, true)
	if p.pending != nil && p.pending != fut {
		p.pending.Cancel()
	}
	p.pending = fut
}

func (m *Model) deckFuture(msg state.Message) *thumbnail.DeckFuture {
	if m.attachments == nil {
		f := future.New[*slide.Deck]()
		f.Complete(msg.Deck(), nil)
		return f
	}
	attachments := m.attachments
	id := msg.ID
	return future.Go(m.ctx, func(ctx context.Context) (*slide.Deck, error) {
		ctx, cancel := context.WithTimeout(ctx, DeckTimeout)
		defer cancel()
		atts, err := attachments.ListByMessage(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list attachments for %s: %w", id, err)
		}
		return slide.NewDeck(atts), nil
	})
}

// reload forgets what the surface shows and resolves the selection again.
func (m *Model) reload() {
	m.preview.surface.Clear()
	m.showSelected()
}

// applySnapshot folds a fresh snapshot into the surface: a new selection is
// resolved from scratch, a changed transfer state is re-applied in place.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.lastUpdated = time.Now()
	if n := len(snap.Messages); m.selected >= n {
		m.selected = max(0, n-1)
	}
	if !m.ready {
		return
	}

	p := m.preview
	if len(snap.Messages) == 0 {
		if p.message != "" {
			p.surface.Clear()
			p.message = ""
		}
		return
	}
	if snap.Messages[m.selected].ID != p.message {
		m.showSelected()
		return
	}

	cur := p.surface.Slide()
	if cur == nil || p.original {
		return
	}
	a, ok := snap.Attachment(cur.ID())
	if !ok {
		m.showSelected()
		return
	}
	p.surface.SetSlide(m.key, slide.New(a), true, true)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{BackgroundHint: m.hint, Theme: m.theme.Name}); err != nil {
		m.log.Warn("save prefs", "error", err)
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.showLogs {
		cmds = append(cmds, readLogsCmd(m.logPath, m.previewRows()))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m Model) previewCols() int {
	return max(MinPreviewWidth, m.width-ListWidth-1)
}

func (m Model) previewRows() int {
	return max(1, m.height-ChromeRows)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.showLogs {
		b.WriteString(m.renderLogs())
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderList(),
			" ",
			m.renderPreview(),
		))
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", ListWidth+1))
	b.WriteString(renderOverlay(m.preview.surface, m.theme.Styles()))
	b.WriteString("\n")

	b.WriteString(m.theme.Styles().Footer.Width(m.width).Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{styles.Logo.Render("thumbview")}
	parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d messages", len(m.snapshot.Messages))))

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, styles.DangerText.Render("database unavailable, retrying"))
	case m.snapshot.LastError != nil:
		parts = append(parts, styles.WarningText.Render("poll failed"))
	}
	if s := m.preview.status; s != "" {
		parts = append(parts, styles.AccentText.Render(s))
	}
	if !m.lastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render(m.lastUpdated.Format("15:04:05")))
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderList() string {
	styles := m.theme.Styles()
	rows := m.previewRows()
	lines := make([]string, 0, rows)

	// Keep the selection on screen.
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	for i := start; i < len(m.snapshot.Messages) && len(lines) < rows; i++ {
		msg := m.snapshot.Messages[i]
		label := fmt.Sprintf("%-10s %2d", shortID(msg.ID), len(msg.Attachments))
		badge := ""
		if len(msg.Attachments) > 0 {
			st := msg.Attachments[0].TransferState
			badge = " " + styles.TransferStyle(st).Render(st.String())
		}
		line := label + badge
		if i == m.selected {
			line = styles.Selected.Render(label) + badge
		}
		lines = append(lines, lipgloss.NewStyle().Width(ListWidth).MaxWidth(ListWidth).Render(line))
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", ListWidth))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPreview() string {
	cols, rows := m.previewCols(), m.previewRows()
	surface := m.preview.surface
	if !surface.Visible() {
		msg := m.theme.Styles().MutedText.Render("no preview")
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, msg)
	}
	var img image.Image
	if content, ok := surface.Image().Content(); ok {
		img = content.Image
	}
	cells := imageCells(img, cols, rows, m.theme.SurfaceAlt)
	if surface.Slide() != nil {
		placeRemoveButton(cells, surface.RemoveButton(), m.theme.Styles().RemoveButton)
	}
	return joinCells(cells)
}

func hintColor(hint string) color.Color {
	c, err := imageload.ParseHexColor(hint)
	if err != nil {
		return color.Black
	}
	return c
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Messages

type tickMsg time.Time

type frameMsg time.Time

type snapshotMsg state.Snapshot

type logsMsg []logtail.Entry

type logErrorMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(spinner.MiniDot.FPS, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// logPaneLevel hides debug chatter from the log pane.
const logPaneLevel = slog.LevelInfo

func readLogsCmd(path string, lines int) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Read(path, lines, logPaneLevel)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logsMsg(entries)
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Context = ctx

	poster := newProgramPoster()
	loader := imageload.New(imageload.Options{
		Post:     poster.Post,
		MediaDir: opts.MediaDir,
		Logger:   logging.For("imageload"),
	})
	opts.Loader = loader
	opts.Poster = poster

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	go poster.run(ctx, p.Send)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	m.preview.host.destroy()
	loader.Forget(m.preview.surface.Target())
	return err
}
