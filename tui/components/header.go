package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/internal/format"
	"github.com/tonhe/storewatch/tui/styles"
)

// RenderHeader renders the top header bar with app name, backend URL,
// engine state and backend version. URL and version are sanitized.
func RenderHeader(theme styles.Theme, backendURL string, state engine.EngineState, backendVersion string, width int) string {
	bg := theme.Base01
	left := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(bg).
		Bold(true).
		Render("storewatch")

	center := lipgloss.NewStyle().
		Foreground(theme.Base05).
		Background(bg).
		Render(format.Sanitize(backendURL))

	statusColor := theme.Base08
	switch state {
	case engine.EngineRunning:
		statusColor = theme.Base0B
	case engine.EngineError:
		statusColor = theme.Base0A
	}
	right := lipgloss.NewStyle().
		Foreground(statusColor).
		Background(bg).
		Render(state.String())

	ver := format.Sanitize(backendVersion)
	if ver == "" {
		ver = "?"
	}
	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(bg).
		Render("backend v" + ver)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s ", left, center, right, versionSeg)

	return lipgloss.NewStyle().
		Background(bg).
		Width(width).
		MaxHeight(1).
		Render(content)
}
