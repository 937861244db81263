package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/storewatch/tui/keys"
	"github.com/tonhe/storewatch/tui/styles"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

func bindingEntry(b key.Binding, desc string) helpEntry {
	return helpEntry{keys: b.Help().Key, desc: desc}
}

func helpSections() []helpSection {
	km := keys.DefaultKeyMap
	return []helpSection{
		{"Global", []helpEntry{
			{"q / ctrl+c", "Quit"},
			bindingEntry(km.Help, "Toggle this help"),
			bindingEntry(km.Refresh, "Refresh now"),
		}},
		{"Stores", []helpEntry{
			{"up / down", "Select store"},
			{"pgup / pgdn", "Page through stores"},
			{"home / end", "First / last store"},
			{"enter / click", "Store details"},
			bindingEntry(km.History, "Toggle status / history"),
		}},
		{"Store Details", []helpEntry{
			{"up / down", "Scroll"},
			{"esc / x", "Close"},
			{"click [x]", "Close"},
			{"click outside", "Close"},
		}},
	}
}

// HelpView renders a modal overlay showing all keyboard shortcuts.
type HelpView struct {
	theme   styles.Theme
	sty     *styles.Styles
	width   int
	height  int
	visible bool
}

// NewHelpView creates a new HelpView with the given theme.
func NewHelpView(theme styles.Theme) HelpView {
	return HelpView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Toggle flips the help overlay visibility.
func (v *HelpView) Toggle() {
	v.visible = !v.visible
}

// IsVisible returns whether the help overlay is currently shown.
func (v HelpView) IsVisible() bool {
	return v.visible
}

// SetSize updates the available dimensions for the overlay.
func (v *HelpView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the help overlay as a centered modal box.
func (v HelpView) View() string {
	width := min(max(v.width/2, 50), 60)

	keyStyle := lipgloss.NewStyle().Foreground(v.theme.Base0D).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(v.theme.Base05)

	var lines []string
	for _, s := range helpSections() {
		lines = append(lines, v.sty.Section.Render(s.title))
		for _, e := range s.entries {
			lines = append(lines, "  "+keyStyle.Render(padRight(e.keys, 16))+"  "+descStyle.Render(e.desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, v.sty.TableCellDim.Render("[?] close"))

	box := v.sty.ModalBorder.Width(width - 2).Render(strings.Join(lines, "\n"))
	title := v.sty.ModalTitle.Render(" Keyboard Shortcuts ")
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, title, box))
}
