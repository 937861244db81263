package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/internal/format"
	"github.com/tonhe/storewatch/internal/view"
	"github.com/tonhe/storewatch/tui/components"
	"github.com/tonhe/storewatch/tui/keys"
	"github.com/tonhe/storewatch/tui/styles"
)

// Column width constants (minimum widths).
const (
	colStore    = 24
	colLastSeen = 22
	colAgoMin   = 12

	cardMinWidth = 18
	rawLines     = 6
)

// OpenStoreMsg asks the app to open the detail view for a store.
type OpenStoreMsg struct {
	Store string
}

// DashboardView is the main screen: summary cards, the registry table and
// the raw status pane.
type DashboardView struct {
	theme  styles.Theme
	sty    *styles.Styles
	board  *view.Dashboard
	cursor int
	offset int
	width  int
	height int
	locked bool

	history     []engine.HistorySample
	showHistory bool
}

// NewDashboardView creates a new DashboardView with the given theme.
func NewDashboardView(theme styles.Theme) DashboardView {
	return DashboardView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetDashboard replaces the rendered state and clamps the cursor to the
// new row count.
func (v *DashboardView) SetDashboard(d *view.Dashboard) {
	v.board = d
	n := v.rowCount()
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.ensureVisible()
}

// SetLocked toggles navigation. The dashboard is locked while the detail
// modal is open.
func (v *DashboardView) SetLocked(locked bool) {
	v.locked = locked
}

// SetHistory replaces the stores-up samples plotted by the history pane.
func (v *DashboardView) SetHistory(h []engine.HistorySample) {
	v.history = h
}

// ShowingHistory reports whether the bottom pane shows the history chart
// instead of the raw status.
func (v DashboardView) ShowingHistory() bool {
	return v.showHistory
}

// SetSize updates the available dimensions for the view.
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ensureVisible()
}

// Cursor returns the selected row index.
func (v DashboardView) Cursor() int {
	return v.cursor
}

// Selected returns the store under the cursor.
func (v DashboardView) Selected() (string, bool) {
	if v.rowCount() == 0 {
		return "", false
	}
	return v.board.Table.Rows[v.cursor].Store, true
}

// Update handles key and mouse messages for navigation. Activating a row
// returns a command producing OpenStoreMsg.
func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	if v.locked {
		return v, nil
	}
	n := v.rowCount()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if v.cursor < n-1 {
				v.cursor++
			}
		case key.Matches(msg, keys.DefaultKeyMap.PageUp):
			v.cursor -= v.visibleRows()
			if v.cursor < 0 {
				v.cursor = 0
			}
		case key.Matches(msg, keys.DefaultKeyMap.PageDown):
			v.cursor += v.visibleRows()
			if v.cursor > n-1 {
				v.cursor = max(n-1, 0)
			}
		case key.Matches(msg, keys.DefaultKeyMap.Home):
			v.cursor = 0
		case key.Matches(msg, keys.DefaultKeyMap.End):
			v.cursor = max(n-1, 0)
		case key.Matches(msg, keys.DefaultKeyMap.History):
			v.showHistory = !v.showHistory
		case key.Matches(msg, keys.DefaultKeyMap.Enter):
			if store, ok := v.Selected(); ok {
				return v, openStore(store)
			}
		}
		v.ensureVisible()

	case tea.MouseMsg:
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
			if v.cursor > 0 {
				v.cursor--
			}
			v.ensureVisible()
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
			if v.cursor < n-1 {
				v.cursor++
			}
			v.ensureVisible()
		case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft:
			if idx, ok := v.RowAt(msg.Y); ok {
				v.cursor = idx
				return v, openStore(v.board.Table.Rows[idx].Store)
			}
		}
	}
	return v, nil
}

func openStore(store string) tea.Cmd {
	return func() tea.Msg { return OpenStoreMsg{Store: store} }
}

// RowAt maps a body-relative y coordinate to a registry row index. All
// row clicks go through this one lookup, so re-rendering the table never
// leaves handlers behind.
func (v DashboardView) RowAt(y int) (int, bool) {
	top := v.tableTop() + 1
	if y < top || y >= top+v.visibleRows() {
		return 0, false
	}
	idx := v.offset + (y - top)
	if idx < 0 || idx >= v.rowCount() {
		return 0, false
	}
	return idx, true
}

// View renders the dashboard.
func (v DashboardView) View() string {
	if v.board == nil || !v.board.Rendered {
		return v.renderWaiting()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderCards(),
		"",
		v.renderTable(),
		"",
		v.renderRaw(),
	)
}

func (v DashboardView) rowCount() int {
	if v.board == nil {
		return 0
	}
	return len(v.board.Table.Rows)
}

// tableTop is the body line of the table header.
func (v DashboardView) tableTop() int {
	return lipgloss.Height(v.renderCards()) + 1
}

func (v DashboardView) visibleRows() int {
	n := v.height - v.tableTop() - 1 - 1 - (rawLines + 1)
	if n < 1 {
		n = 1
	}
	return n
}

// ensureVisible adjusts the scroll offset so the cursor row is visible.
func (v *DashboardView) ensureVisible() {
	visible := v.visibleRows()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v DashboardView) cardWidth() int {
	w := v.width/4 - 2
	if w < cardMinWidth {
		w = cardMinWidth
	}
	return w
}

func (v DashboardView) renderCards() string {
	var s view.Summary
	if v.board != nil {
		s = v.board.Summary
	}
	w := v.cardWidth()
	inner := w - 2

	badge := v.sty.BadgeErr.Render(s.BadgeText)
	if s.Badge == view.BadgeOK {
		badge = v.sty.BadgeOK.Render(s.BadgeText)
	}
	prom := v.card(w, "Prometheus",
		v.sty.CardValue.Render(clip(format.Sanitize(s.PrometheusURL), inner)),
		badge,
	)

	stores := v.card(w, "Stores",
		v.sty.CardValue.Render(fmt.Sprintf("%s up", format.Count(s.StoresUp))),
		v.sty.CardTitle.Render(fmt.Sprintf("%s in registry", format.Count(s.StoresInRegistry))),
	)

	syncLines := []string{v.sty.CardValue.Render(clip(format.Sanitize(s.LastSync), inner))}
	if s.LastSyncError != "" {
		syncLines = append(syncLines, v.sty.CardNote.Render(clip(format.Sanitize(s.LastSyncError), inner)))
	}
	sync := v.card(w, "Last sync", syncLines...)

	version := format.Placeholder
	if s.HasVersion {
		version = "v" + format.Sanitize(s.Version)
	}
	backend := v.card(w, "Backend",
		v.sty.CardValue.Render(clip(version, inner)),
		v.sty.CardTitle.Render(clip(fmt.Sprintf("retention %dd", s.RetentionDays), inner)),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, prom, stores, sync, backend)
}

func (v DashboardView) card(width int, title string, lines ...string) string {
	body := append([]string{v.sty.CardTitle.Render(title)}, lines...)
	return v.sty.Card.Width(width).Height(3).Render(strings.Join(body, "\n"))
}

// columnWidths calculates responsive column widths. The relative column
// gets all remaining space.
func (v DashboardView) columnWidths() (store, seen, ago int) {
	store, seen = colStore, colLastSeen
	ago = v.width - store - seen
	if ago < colAgoMin {
		ago = colAgoMin
	}
	return
}

func (v DashboardView) renderTable() string {
	wStore, wSeen, wAgo := v.columnWidths()
	header := v.sty.TableHeader.Render(padRight("Store", wStore)) +
		v.sty.TableHeader.Render(padRight("Last seen", wSeen)) +
		v.sty.TableHeader.Render(padRight("", wAgo))

	lines := []string{header}
	t := v.board.Table
	if t.Empty() {
		lines = append(lines, v.sty.TableCellDim.Render(padRight(t.Placeholder(), wStore+wSeen+wAgo)))
		return strings.Join(lines, "\n")
	}

	end := v.offset + v.visibleRows()
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	for i := v.offset; i < end; i++ {
		r := t.Rows[i]
		st := v.sty.TableRow
		dim := v.sty.TableCellDim
		if i == v.cursor {
			st = v.sty.TableRowSel
			dim = dim.Background(v.theme.Base02)
		}
		lines = append(lines,
			st.Render(padRight(truncate(format.Sanitize(r.Store), wStore-1), wStore))+
				st.Render(padRight(r.LastSeen, wSeen))+
				dim.Render(padRight(r.Ago, wAgo)),
		)
	}
	return strings.Join(lines, "\n")
}

func (v DashboardView) renderRaw() string {
	if v.showHistory {
		return v.renderHistory()
	}
	title := v.sty.RawTitle.Render("Status JSON")
	if v.board.LastError != "" {
		title += "  " + v.sty.ErrText.Render("refresh failed")
	} else if v.board.UpError != "" {
		title += "  " + v.sty.CardNote.Render("up: "+clip(format.Sanitize(v.board.UpError), v.width/2))
	}

	text := v.sty.RawText
	if v.board.LastError != "" {
		text = v.sty.ErrText
	}
	src := strings.Split(v.board.Raw, "\n")
	out := []string{title}
	for i := 0; i < rawLines && i < len(src); i++ {
		out = append(out, text.Render(clip(format.Sanitize(src[i]), v.width)))
	}
	return strings.Join(out, "\n")
}

// renderHistory plots stores up per successful refresh, in the same
// space the raw pane takes.
func (v DashboardView) renderHistory() string {
	data := make([]float64, len(v.history))
	for i, h := range v.history {
		data[i] = float64(h.StoresUp)
	}
	chart := components.RenderChart(data, v.width, rawLines+1, "Stores up", func(f float64) string {
		return format.Count(int(math.Round(f)))
	})
	return v.sty.RawText.Render(chart)
}

// renderWaiting is shown until the first successful refresh. A failed
// first refresh still shows its error in the raw pane.
func (v DashboardView) renderWaiting() string {
	msg := lipgloss.NewStyle().
		Foreground(v.theme.Base04).
		Render(view.LabelLoading)
	if v.board != nil && v.board.Raw != "" {
		msg = lipgloss.JoinVertical(lipgloss.Center, msg, "",
			v.sty.ErrText.Render(clip(format.Sanitize(v.board.Raw), v.width)))
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
}

// clip truncates display text to width cells, with an ellipsis.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// padRight pads s with spaces on the right to the given display width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to maxLen cells, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}
	return ansi.Truncate(s, maxLen, "...")
}
