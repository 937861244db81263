package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/config"
	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/internal/view"
	"github.com/tonhe/storewatch/tui/views"
)

type stubSource struct {
	err error
}

func (s stubSource) Registry(context.Context) (api.Registry, error) {
	return api.Registry{Stores: []api.RegistryEntry{{Store: "Shop-12"}, {Store: "Shop-7"}}, Count: 2}, s.err
}

func (s stubSource) Status(context.Context) (api.StatusSnapshot, error) {
	v := "1.4.0"
	return api.StatusSnapshot{Version: &v, PrometheusURL: "http://prom:9090", StoresInRegistry: 2}, nil
}

func (s stubSource) Up(context.Context) (api.UpSnapshot, error) {
	return api.UpSnapshot{Stores: []string{"Shop-12"}}, nil
}

type stubFetcher struct{}

func (stubFetcher) Store(context.Context, string) (api.StoreDetail, error) {
	return api.StoreDetail{}, nil
}

func newTestApp(t *testing.T, src engine.Source) AppModel {
	t.Helper()
	p := engine.NewPoller(src, 0, 0, 0)
	p.Refresh(context.Background())
	m := NewAppModel(config.DefaultConfig(), p, stubFetcher{}, "http://monitor:8000", view.Options{})
	return step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func step(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func TestTickAppliesSnapshot(t *testing.T) {
	m := newTestApp(t, stubSource{})
	m = step(t, m, TickMsg{})
	if !m.board.Rendered || len(m.board.Table.Rows) != 2 {
		t.Fatalf("expected the tick to be applied, got %+v", m.board.Table)
	}
	out := ansi.Strip(m.View())
	for _, want := range []string{"Shop-12", "Shop-7", "v1.4.0", "http://monitor:8000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestFailedFirstTickShowsError(t *testing.T) {
	m := newTestApp(t, stubSource{err: errors.New("boom")})
	m = step(t, m, TickMsg{})
	if m.board.Rendered {
		t.Error("a failed tick must not render the summary")
	}
	if m.board.Raw != "Error: boom" {
		t.Errorf("unexpected raw pane %q", m.board.Raw)
	}
}

func TestDetailLifecycle(t *testing.T) {
	m := newTestApp(t, stubSource{})
	m = step(t, m, TickMsg{})
	m = step(t, m, views.OpenStoreMsg{Store: "Shop-12"})

	if !m.session.IsOpen() || m.session.Title() != "Shop-12" {
		t.Fatal("expected the modal to be open for Shop-12")
	}
	if !m.session.Detail().Loading {
		t.Error("expected loading state")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Shop-12") {
		t.Error("modal title missing")
	}

	first := view.Ticket{Store: "Shop-12", Seq: 1}
	m = step(t, m, views.OpenStoreMsg{Store: "Shop-7"})
	m = step(t, m, DetailMsg{Ticket: first, Result: api.Resolve(api.StoreDetail{}, nil)})
	if !m.session.Detail().Loading {
		t.Error("stale response for a previous selection must be ignored")
	}

	m = step(t, m, DetailMsg{Ticket: view.Ticket{Store: "Shop-7", Seq: 2}})
	if !m.session.Detail().Loaded() {
		t.Error("current response should be rendered")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.session.IsOpen() {
		t.Error("escape should close the modal")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.session.IsOpen() {
		t.Error("closing twice should be a no-op")
	}
}

func TestDetailBackdropClickCloses(t *testing.T) {
	m := newTestApp(t, stubSource{})
	m = step(t, m, TickMsg{})
	m = step(t, m, views.OpenStoreMsg{Store: "Shop-12"})
	m = step(t, m, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.session.IsOpen() {
		t.Error("a click outside the modal should close it")
	}
	if m.detail.Contains(0, 0) {
		t.Error("origin should be outside the modal")
	}
}

func TestDetailFetchErrorRendered(t *testing.T) {
	m := newTestApp(t, stubSource{})
	m = step(t, m, views.OpenStoreMsg{Store: "Shop-12"})
	err := &api.Error{Kind: api.KindRequestFailed, Message: "Not Found"}
	m = step(t, m, DetailMsg{Ticket: view.Ticket{Store: "Shop-12", Seq: 1}, Result: api.Result[api.StoreDetail]{Err: err}})
	if m.session.Detail().FetchError != "Not Found" {
		t.Errorf("unexpected fetch error %q", m.session.Detail().FetchError)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Error: Not Found") {
		t.Error("expected the error in the modal")
	}
}

type hostileSource struct{}

func (hostileSource) Registry(context.Context) (api.Registry, error) {
	return api.Registry{Stores: []api.RegistryEntry{{Store: "Shop\x1b[2J-1"}}, Count: 1}, nil
}

func (hostileSource) Status(context.Context) (api.StatusSnapshot, error) {
	v := "1.0\x1b[31mRED"
	syncErr := "boom\x1b]0;PWNED\x07\x1b[2J"
	return api.StatusSnapshot{
		Version:          &v,
		PrometheusURL:    "http://p\x1b[5m",
		StoresInRegistry: 1,
		LastSync:         api.Timestamp("2024-05-01T10:00:00Z\x1b[H"),
		LastSyncError:    &syncErr,
	}, nil
}

func (hostileSource) Up(context.Context) (api.UpSnapshot, error) {
	return api.UpSnapshot{}, errors.New("up\x1b[2Kfailed\x1b]0;TITLE\x07")
}

func TestUntrustedFieldsCannotDriveTerminal(t *testing.T) {
	m := newTestApp(t, hostileSource{})
	m = step(t, m, TickMsg{})
	if !m.board.Rendered {
		t.Fatal("expected the tick to be applied")
	}
	if m.board.UpError == "" || m.board.Summary.LastSyncError == "" {
		t.Fatal("expected the hostile up and sync errors to reach the board")
	}

	out := m.View()
	for _, seq := range []string{"\x1b]0;", "\x07", "\x1b[2J", "\x1b[2K", "\x1b[31m", "\x1b[5m", "\x1b[H"} {
		if strings.Contains(out, seq) {
			t.Errorf("view contains raw sequence %q", seq)
		}
	}
	plain := ansi.Strip(out)
	for _, want := range []string{"v1.0RED", "http://p", "boom"} {
		if !strings.Contains(plain, want) {
			t.Errorf("expected sanitized text %q in view", want)
		}
	}
}
