package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/tui/styles"
)

const sparkWidth = 20

// StatusBarData is what the footer shows about the refresh loop.
type StatusBarData struct {
	Info    engine.EngineInfo
	History []engine.HistorySample
	Modal   bool
}

// RenderStatusBar renders the two-line footer: refresh info with a
// stores-up sparkline, then the key bindings for the current screen.
func RenderStatusBar(theme styles.Theme, d StatusBarData, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")

	pollSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).
		Render(fmt.Sprintf("refresh: %s", d.Info.Interval))
	lastStr := "never"
	if !d.Info.LastTick.IsZero() {
		lastStr = d.Info.LastTick.Format("15:04:05")
	}
	lastSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).
		Render(fmt.Sprintf("last: %s", lastStr))

	okCount := d.Info.TickCount - d.Info.ErrorCount
	healthColor := theme.Base0B
	if d.Info.ErrorCount > 0 {
		healthColor = theme.Base0A
	}
	healthSeg := lipgloss.NewStyle().Foreground(healthColor).Background(bg).
		Render(fmt.Sprintf("%d/%d OK", okCount, d.Info.TickCount))

	ups := make([]int, len(d.History))
	for i, s := range d.History {
		ups[i] = s.StoresUp
	}
	spark := lipgloss.NewStyle().Foreground(theme.Base0C).Background(bg).
		Render("up " + Sparkline(ups, sparkWidth))

	topContent := bgStyle.Render(" ") + pollSeg + sep + lastSeg + sep + healthSeg + sep + spark
	topContent = fill(topContent, width, bgStyle)

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	var keys string
	if d.Modal {
		keys = bgStyle.Render(" ") +
			keyStyle.Render("up/down") + descStyle.Render(":scroll") + spacer +
			keyStyle.Render("esc") + descStyle.Render(":close") + spacer +
			keyStyle.Render("x") + descStyle.Render(":close") + spacer +
			keyStyle.Render("q") + descStyle.Render(":quit")
	} else {
		keys = bgStyle.Render(" ") +
			keyStyle.Render("enter") + descStyle.Render(":details") + spacer +
			keyStyle.Render("r") + descStyle.Render(":refresh") + spacer +
			keyStyle.Render("h") + descStyle.Render(":history") + spacer +
			keyStyle.Render("?") + descStyle.Render(":help") + spacer +
			keyStyle.Render("q") + descStyle.Render(":quit")
	}
	keys = fill(keys, width, bgStyle)

	return lipgloss.JoinVertical(lipgloss.Left, topContent, keys)
}

func fill(s string, width int, bg lipgloss.Style) string {
	if w := lipgloss.Width(s); w < width {
		s += bg.Render(strings.Repeat(" ", width-w))
	}
	return s
}
