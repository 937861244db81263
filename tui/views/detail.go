package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/storewatch/internal/format"
	"github.com/tonhe/storewatch/internal/view"
	"github.com/tonhe/storewatch/tui/keys"
	"github.com/tonhe/storewatch/tui/styles"
)

const (
	modalMaxWidth  = 96
	modalMinWidth  = 40
	modalMaxHeight = 32
	modalMinHeight = 10

	closeLabel = "[x]"
	rawMaxRows = 40
)

// DetailView is the store detail modal. It draws a view.Detail inside a
// scrollable viewport centered over the body.
type DetailView struct {
	theme    styles.Theme
	sty      *styles.Styles
	title    string
	detail   view.Detail
	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
}

// NewDetailView creates a new DetailView with the given theme.
func NewDetailView(theme styles.Theme) DetailView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Base0D)
	return DetailView{
		theme:    theme,
		sty:      styles.NewStyles(theme),
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}
}

// SetSize updates the body dimensions the modal is centered in.
func (v *DetailView) SetSize(width, height int) {
	v.width = width
	v.height = height
	w, h := v.boxSize()
	v.viewport.Width = w - 2 - 4
	v.viewport.Height = h - 2 - 2
	v.refresh()
}

// SetDetail replaces the modal content. A new store scrolls back to the top.
func (v *DetailView) SetDetail(title string, d view.Detail) {
	if title != v.title {
		v.viewport.GotoTop()
	}
	v.title = title
	v.detail = d
	v.refresh()
}

// StartSpinner returns the command animating the loading indicator.
func (v DetailView) StartSpinner() tea.Cmd {
	return v.spinner.Tick
}

// Update handles scrolling and the close triggers. The third return value
// reports whether the modal asked to close.
func (v DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !v.detail.Loading {
			return v, nil, false
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refresh()
		return v, cmd, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Escape),
			key.Matches(msg, keys.DefaultKeyMap.Close):
			return v, nil, true
		case key.Matches(msg, keys.DefaultKeyMap.Home):
			v.viewport.GotoTop()
			return v, nil, false
		case key.Matches(msg, keys.DefaultKeyMap.End):
			v.viewport.GotoBottom()
			return v, nil, false
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if v.HitClose(msg.X, msg.Y) || !v.Contains(msg.X, msg.Y) {
				return v, nil, true
			}
			return v, nil, false
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd, false
}

// View renders the modal centered in the body.
func (v DetailView) View() string {
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, v.box())
}

func (v DetailView) boxSize() (int, int) {
	w := min(v.width-4, modalMaxWidth)
	w = max(w, modalMinWidth)
	h := min(v.height-2, modalMaxHeight)
	h = max(h, modalMinHeight)
	return w, h
}

// origin is the body position of the modal's top-left corner, matching
// how lipgloss.Place centers it.
func (v DetailView) origin() (int, int) {
	w, h := v.boxSize()
	return max((v.width-w)/2, 0), max((v.height-h)/2, 0)
}

// Contains reports whether a body coordinate falls inside the modal.
func (v DetailView) Contains(x, y int) bool {
	w, h := v.boxSize()
	x0, y0 := v.origin()
	return x >= x0 && x < x0+w && y >= y0 && y < y0+h
}

// HitClose reports whether a body coordinate falls on the close label in
// the top border.
func (v DetailView) HitClose(x, y int) bool {
	w, _ := v.boxSize()
	x0, y0 := v.origin()
	start := x0 + w - 6
	return y == y0 && x >= start && x < start+len(closeLabel)
}

func (v DetailView) box() string {
	w, _ := v.boxSize()
	body := v.sty.ModalBorder.
		BorderTop(false).
		Width(w - 2).
		Render(v.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, v.topBorder(w), body)
}

// topBorder draws the rounded top edge with the title on the left and the
// close label on the right.
func (v DetailView) topBorder(w int) string {
	border := lipgloss.NewStyle().Foreground(v.theme.Base0D).Background(v.theme.Base00)
	right := border.Render(" ") + v.sty.ModalClose.Render(closeLabel) + border.Render(" ─╮")
	avail := w - 7 - 4
	title := v.sty.ModalTitle.Render(clip(format.Sanitize(v.title), avail))
	left := border.Render("╭─ ") + title + border.Render(" ")
	fill := w - lipgloss.Width(left) - lipgloss.Width(right)
	if fill < 0 {
		fill = 0
	}
	return left + border.Render(strings.Repeat("─", fill)) + right
}

func (v *DetailView) refresh() {
	v.viewport.SetContent(v.content())
}

func (v DetailView) content() string {
	d := v.detail
	width := v.viewport.Width
	if d.Loading {
		return v.spinner.View() + " " + view.LabelLoading
	}
	if d.FetchError != "" {
		return v.sty.ErrText.Render(clip(view.ErrorPrefix+format.Sanitize(d.FetchError), width))
	}

	var lines []string
	lines = append(lines, v.sty.Section.Render("PC"))
	lines = append(lines, v.hostLines(d.Host, width)...)
	lines = append(lines, "", v.sty.Section.Render("Router"))
	lines = append(lines, v.routerLines(d, width)...)
	lines = append(lines, "", v.sty.RawTitle.Render("Router metrics (raw)"))
	lines = append(lines, v.rawLines(d.RawRouter, width)...)
	lines = append(lines, "", v.sty.RawTitle.Render("PC metrics (raw)"))
	lines = append(lines, v.rawLines(d.RawWindows, width)...)
	return strings.Join(lines, "\n")
}

func (v DetailView) field(label, value string) string {
	return v.sty.ModalLabel.Render(label) + lipgloss.NewStyle().Foreground(v.theme.Base05).Render(value)
}

func (v DetailView) hostLines(h view.HostSummary, width int) []string {
	switch h.State {
	case view.HostError:
		return []string{v.sty.ErrText.Render(clip(format.Sanitize(h.Error), width))}
	case view.HostNoData:
		return []string{v.sty.TableCellDim.Render(view.LabelNoPCData)}
	}
	var lines []string
	if h.HasUp {
		lines = append(lines, v.field("up:", format.Sanitize(h.Up)))
	}
	used := h.MemoryUsed
	if used != format.Placeholder {
		used += "%"
	}
	lines = append(lines, v.field("memory used:", used))
	if h.HasMemory {
		lines = append(lines, v.field("memory:", fmt.Sprintf("%s free of %s", h.MemoryAvailable, h.MemoryTotal)))
	}
	lines = append(lines, v.field("metrics:", format.Count(h.MetricCount)))
	return lines
}

func (v DetailView) routerLines(d view.Detail, width int) []string {
	switch d.Router {
	case view.RouterMetricCount:
		return []string{v.field("metrics:", format.Count(d.RouterMetricCount))}
	case view.RouterNoData:
		return []string{v.sty.TableCellDim.Render(view.LabelNoRouterData)}
	}

	wName, wStatus := 20, 8
	wAlias := width - wName - wStatus
	if wAlias < 10 {
		wAlias = 10
	}
	lines := []string{
		v.sty.TableHeader.Render(padRight("Name", wName)) +
			v.sty.TableHeader.Render(padRight("Alias", wAlias)) +
			v.sty.TableHeader.Render(padRight("Status", wStatus)),
	}
	for _, r := range d.Interfaces {
		st := v.sty.StatusDown
		if r.Up {
			st = v.sty.StatusUp
		}
		lines = append(lines,
			v.sty.TableRow.Render(padRight(truncate(format.Sanitize(r.Name), wName-1), wName))+
				v.sty.TableRow.Render(padRight(truncate(format.Sanitize(r.Alias), wAlias-1), wAlias))+
				st.Render(padRight(format.Sanitize(r.Status), wStatus)),
		)
	}
	return lines
}

func (v DetailView) rawLines(raw string, width int) []string {
	src := strings.Split(raw, "\n")
	var out []string
	for i, line := range src {
		if i == rawMaxRows {
			out = append(out, v.sty.TableCellDim.Render(fmt.Sprintf("… %d more lines", len(src)-rawMaxRows)))
			break
		}
		out = append(out, v.sty.RawText.Render(clip(format.Sanitize(line), width)))
	}
	return out
}
