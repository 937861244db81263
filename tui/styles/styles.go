package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Summary cards
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style
	CardNote  lipgloss.Style
	BadgeOK   lipgloss.Style
	BadgeErr  lipgloss.Style

	// Table
	TableHeader  lipgloss.Style
	TableRow     lipgloss.Style
	TableRowSel  lipgloss.Style
	TableCellDim lipgloss.Style

	// Interface status
	StatusUp   lipgloss.Style
	StatusDown lipgloss.Style

	// Raw JSON panes
	RawTitle lipgloss.Style
	RawText  lipgloss.Style
	ErrText  lipgloss.Style

	// Section headers inside the detail modal
	Section lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalClose  lipgloss.Style
	ModalLabel  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base03).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().
			Foreground(theme.Base04),
		CardValue: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Bold(true),
		CardNote: lipgloss.NewStyle().
			Foreground(theme.Base08),
		BadgeOK: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base0B).
			Bold(true).
			Padding(0, 1),
		BadgeErr: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base08).
			Bold(true).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		TableRow: lipgloss.NewStyle().
			Foreground(theme.Base05),
		TableRowSel: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base02),
		TableCellDim: lipgloss.NewStyle().
			Foreground(theme.Base03),

		StatusUp: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		StatusDown: lipgloss.NewStyle().
			Foreground(theme.Base08),

		RawTitle: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),
		RawText: lipgloss.NewStyle().
			Foreground(theme.Base04),
		ErrText: lipgloss.NewStyle().
			Foreground(theme.Base08),

		Section: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		ModalClose: lipgloss.NewStyle().
			Foreground(theme.Base08).
			Bold(true),
		ModalLabel: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Width(18),
	}
}
