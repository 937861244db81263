package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/config"
	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/internal/view"
	"github.com/tonhe/storewatch/tui/components"
	"github.com/tonhe/storewatch/tui/keys"
	"github.com/tonhe/storewatch/tui/styles"
	"github.com/tonhe/storewatch/tui/views"
)

const (
	headerLines    = 1
	statusBarLines = 2
)

// TickMsg triggers a periodic UI refresh to pick up new poll data.
type TickMsg struct{}

// DetailMsg carries the outcome of a store detail request.
type DetailMsg struct {
	Ticket view.Ticket
	Result api.Result[api.StoreDetail]
}

// StoreFetcher loads the detail payload of one store.
type StoreFetcher interface {
	Store(ctx context.Context, name string) (api.StoreDetail, error)
}

// AppModel is the root Bubble Tea model that manages all views and state.
type AppModel struct {
	theme      styles.Theme
	config     *config.Config
	poller     *engine.Poller
	fetcher    StoreFetcher
	backendURL string

	board   *view.Dashboard
	session *view.DetailSession
	info    engine.EngineInfo
	history []engine.HistorySample

	dashboard views.DashboardView
	detail    views.DetailView
	help      views.HelpView

	width  int
	height int
}

// NewAppModel creates a new AppModel. The poller must be started by the
// caller; the model only reads its snapshots.
func NewAppModel(cfg *config.Config, poller *engine.Poller, fetcher StoreFetcher, backendURL string, opts view.Options) AppModel {
	theme := styles.Resolve(cfg.Theme)
	return AppModel{
		theme:      theme,
		config:     cfg,
		poller:     poller,
		fetcher:    fetcher,
		backendURL: backendURL,
		board:      view.NewDashboard(opts),
		session:    &view.DetailSession{},
		dashboard:  views.NewDashboardView(theme),
		detail:     views.NewDetailView(theme),
		help:       views.NewHelpView(theme),
	}
}

// Init returns the initial command to start the tick loop.
func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m AppModel) fetchDetail(t view.Ticket) tea.Cmd {
	fetcher := m.fetcher
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return DetailMsg{Ticket: t, Result: api.Resolve(fetcher.Store(ctx, t.Store))}
	}
}

func (m AppModel) refreshNow() tea.Cmd {
	p := m.poller
	return func() tea.Msg {
		p.Refresh(context.Background())
		return TickMsg{}
	}
}

// pull applies the newest poller tick if it has not been applied yet.
func (m *AppModel) pull() {
	snap := m.poller.Snapshot()
	m.info = snap.Info
	m.history = snap.History
	m.dashboard.SetHistory(snap.History)
	if snap.Info.TickCount > 0 && snap.Last.Seq != m.board.LastSeq {
		m.board.Apply(snap.Last)
		m.dashboard.SetDashboard(m.board)
	}
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		body := msg.Height - headerLines - statusBarLines
		m.dashboard.SetSize(msg.Width, body)
		m.detail.SetSize(msg.Width, body)
		m.help.SetSize(msg.Width, body)
		return m, nil

	case TickMsg:
		m.pull()
		return m, tickCmd()

	case views.OpenStoreMsg:
		ticket := m.session.Open(msg.Store)
		m.dashboard.SetLocked(true)
		m.detail.SetDetail(m.session.Title(), m.session.Detail())
		return m, tea.Batch(m.fetchDetail(ticket), m.detail.StartSpinner())

	case DetailMsg:
		if m.session.Resolve(msg.Ticket, msg.Result.Value, msg.Result.Err) {
			m.detail.SetDetail(m.session.Title(), m.session.Detail())
		}
		return m, nil

	case tea.MouseMsg:
		msg.Y -= headerLines
		if m.help.IsVisible() {
			return m, nil
		}
		if m.session.IsOpen() {
			var cmd tea.Cmd
			var closed bool
			m.detail, cmd, closed = m.detail.Update(msg)
			if closed {
				m.closeDetail()
			}
			return m, cmd
		}
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Global key bindings
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Quit):
			m.poller.Stop()
			return m, tea.Quit
		case key.Matches(msg, keys.DefaultKeyMap.Help):
			m.help.Toggle()
			return m, nil
		}
		if m.help.IsVisible() {
			if key.Matches(msg, keys.DefaultKeyMap.Escape) {
				m.help.Toggle()
			}
			return m, nil
		}
		if key.Matches(msg, keys.DefaultKeyMap.Refresh) {
			return m, m.refreshNow()
		}

		if m.session.IsOpen() {
			var cmd tea.Cmd
			var closed bool
			m.detail, cmd, closed = m.detail.Update(msg)
			if closed {
				m.closeDetail()
			}
			return m, cmd
		}
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd
	}

	if m.session.IsOpen() {
		var cmd tea.Cmd
		m.detail, cmd, _ = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) closeDetail() {
	m.session.Close()
	m.dashboard.SetLocked(false)
}

// View renders the full application UI by composing header, body, and status.
func (m AppModel) View() string {
	if m.width == 0 {
		return view.LabelLoading
	}

	version := ""
	if m.board.Summary.HasVersion {
		version = m.board.Summary.Version
	}
	header := components.RenderHeader(m.theme, m.backendURL, m.info.State, version, m.width)

	var body string
	switch {
	case m.help.IsVisible():
		body = m.help.View()
	case m.session.IsOpen():
		body = m.detail.View()
	default:
		body = m.dashboard.View()
	}

	statusBar := components.RenderStatusBar(m.theme, components.StatusBarData{
		Info:    m.info,
		History: m.history,
		Modal:   m.session.IsOpen(),
	}, m.width)

	// Fill body to the available height between header and status bar
	bodyHeight := m.height - headerLines - statusBarLines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}
