// Package browse is a terminal browser over the captured query log.
package browse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/qtrack/internal/core/history"
	"github.com/sadopc/qtrack/internal/core/record"
	"github.com/sadopc/qtrack/internal/export"
	"github.com/sadopc/qtrack/internal/highlight"
	"github.com/sadopc/qtrack/internal/ui/theme"
)

const (
	toastDuration = 2 * time.Second
	loadTimeout   = 5 * time.Second
	// title line + status bar
	chromeHeight = 2
)

// recordsLoadedMsg carries the result of a store load.
type recordsLoadedMsg struct {
	records []record.QueryRecord
	err     error
}

// toastDismissMsg clears the toast.
type toastDismissMsg struct{ seq int }

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// WithClock sets the reference time for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// Model is the bubbletea model of the browser. Records are shown newest
// first.
type Model struct {
	store  history.Store
	keys   KeyMap
	theme  theme.Theme
	styles theme.Styles

	table  table.Model
	detail viewport.Model

	records    []record.QueryRecord
	loadErr    error
	showDetail bool

	width  int
	height int
	ready  bool

	toast    string
	toastErr bool
	toastSeq int

	copy func(string) error
	now  func() time.Time
}

// New creates a browser over store.
func New(store history.Store, th theme.Theme, opts ...Option) Model {
	styles := theme.NewStyles(th)

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = styles.TableHeader
	ts.Selected = styles.TableSelected
	t.SetStyles(ts)

	m := Model{
		store:  store,
		keys:   DefaultKeyMap(),
		theme:  th,
		styles: styles,
		table:  t,
		detail: viewport.New(0, 0),
		copy:   clipboard.WriteAll,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the browser on the alternate screen and blocks until it quits.
func Run(store history.Store, th theme.Theme) error {
	_, err := tea.NewProgram(New(store, th), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		records, err := store.Load(ctx)
		return recordsLoadedMsg{records: records, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case recordsLoadedMsg:
		m.loadErr = msg.err
		m.records = newestFirst(msg.records)
		m.table.SetRows(m.rows())
		if m.table.Cursor() >= len(m.records) {
			m.table.SetCursor(max(len(m.records)-1, 0))
		}
		m.refreshDetail()
		if msg.err != nil {
			return m, m.showToast("Load failed: "+msg.err.Error(), true)
		}
		return m, nil

	case toastDismissMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if len(m.records) > 0 {
			m.showDetail = !m.showDetail
			m.refreshDetail()
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.showDetail = false
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()
	}

	var cmd tea.Cmd
	if m.showDetail {
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	rec, ok := m.Selected()
	if !ok {
		return m, m.showToast("Nothing to copy", true)
	}
	if err := m.copy(export.AsCurl(rec)); err != nil {
		return m, m.showToast("Clipboard error: "+err.Error(), true)
	}
	return m, m.showToast("Copied as cURL", false)
}

func (m *Model) showToast(text string, isError bool) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastErr = isError
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastDismissMsg{seq: seq}
	})
}

// Selected returns the record under the cursor.
func (m Model) Selected() (record.QueryRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return record.QueryRecord{}, false
	}
	return m.records[i], true
}

func (m *Model) resize() {
	body := max(m.height-chromeHeight, 3)
	m.table.SetWidth(m.width)
	m.table.SetHeight(body)
	m.table.SetColumns(columns(m.width))
	m.detail.Width = m.width
	m.detail.Height = body
	m.refreshDetail()
}

func (m *Model) refreshDetail() {
	rec, ok := m.Selected()
	if !ok {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(highlight.Terminal(highlight.PrettyJSON(rec)))
	m.detail.GotoTop()
}

func columns(width int) []table.Column {
	fixed := 16 + 8 + 16 + 6
	path := max(width-fixed-10, 12)
	return []table.Column{
		{Title: "When", Width: 16},
		{Title: "Method", Width: 8},
		{Title: "Path", Width: path},
		{Title: "Client", Width: 16},
		{Title: "Body", Width: 6},
	}
}

func (m Model) rows() []table.Row {
	now := m.now()
	rows := make([]table.Row, 0, len(m.records))
	for _, rec := range m.records {
		when := rec.Timestamp
		if t, ok := rec.Time(); ok {
			when = humanize.RelTime(t, now, "ago", "from now")
		}
		client := rec.ClientIPString()
		if client == "" {
			client = "-"
		}
		rows = append(rows, table.Row{when, rec.Method, pathWithQuery(rec), client, bodyLabel(rec)})
	}
	return rows
}

func pathWithQuery(rec record.QueryRecord) string {
	if len(rec.QueryParams) == 0 {
		return rec.Path
	}
	parts := make([]string, 0, len(rec.QueryParams))
	for _, k := range export.SortedKeys(rec.QueryParams) {
		parts = append(parts, k+"="+rec.QueryParams[k])
	}
	return rec.Path + "?" + strings.Join(parts, "&")
}

func bodyLabel(rec record.QueryRecord) string {
	if _, ok := rec.RawBody(); ok {
		return "raw"
	}
	if len(rec.Body) == 0 {
		return "-"
	}
	return "json"
}

func newestFirst(records []record.QueryRecord) []record.QueryRecord {
	out := make([]record.QueryRecord, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := m.styles.Title.Render("qtrack") + " " +
		m.styles.Muted.Render(fmt.Sprintf("%d queries", len(m.records)))

	var body string
	switch {
	case len(m.records) == 0 && m.loadErr != nil:
		body = m.styles.Error.Render("Could not read the query log: " + m.loadErr.Error())
	case len(m.records) == 0:
		body = m.styles.Hint.Render("No queries tracked yet.")
	case m.showDetail:
		body = m.detail.View()
	default:
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.statusBar())
}

func (m Model) statusBar() string {
	var help []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, m.styles.Key.Render(h.Key)+" "+h.Desc)
	}
	bar := m.styles.StatusBar.Render(strings.Join(help, "  "))
	if m.toast == "" {
		return bar
	}
	toast := m.styles.Toast
	if m.toastErr {
		toast = toast.Background(m.theme.Red)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", toast.Render(m.toast))
}
