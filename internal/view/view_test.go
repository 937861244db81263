package view

import (
	"errors"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/internal/format"
)

var utc = Options{Location: time.UTC}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestStoresUpFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		st   api.StatusSnapshot
		up   api.UpSnapshot
		want int
	}{
		{"status wins", api.StatusSnapshot{StoresUpNow: intPtr(5)}, api.UpSnapshot{Stores: []string{"a", "b"}}, 5},
		{"status zero wins", api.StatusSnapshot{StoresUpNow: intPtr(0)}, api.UpSnapshot{Stores: []string{"a"}}, 0},
		{"up list length", api.StatusSnapshot{}, api.UpSnapshot{Stores: []string{"a", "b"}}, 2},
		{"both absent", api.StatusSnapshot{}, api.UpSnapshot{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSummary(tt.st, tt.up, utc).StoresUp; got != tt.want {
				t.Errorf("StoresUp = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	st := api.StatusSnapshot{
		PrometheusURL:       "http://prom:9090",
		PrometheusReachable: false,
		StoresInRegistry:    9,
		LastSync:            "2024-01-01T10:00:00Z",
		LastSyncError:       strPtr("connection refused"),
	}
	s := BuildSummary(st, api.UpSnapshot{}, utc)

	if s.PrometheusURL != "http://prom:9090" {
		t.Errorf("url = %q", s.PrometheusURL)
	}
	if s.Badge != BadgeErr || s.BadgeText != LabelError || s.Badge.Class() != "err" {
		t.Errorf("badge = %v %q", s.Badge, s.BadgeText)
	}
	if s.StoresInRegistry != 9 {
		t.Errorf("stores in registry = %d", s.StoresInRegistry)
	}
	if s.LastSync != "01.01.2024, 10:00:00" {
		t.Errorf("last sync = %q", s.LastSync)
	}
	if s.LastSyncError != "connection refused" {
		t.Errorf("last sync error = %q", s.LastSyncError)
	}
	if s.HasVersion {
		t.Error("absent version must not be marked present")
	}
}

func TestBuildSummaryNeverSynced(t *testing.T) {
	s := BuildSummary(api.StatusSnapshot{PrometheusReachable: true}, api.UpSnapshot{}, utc)
	if s.LastSync != format.Placeholder {
		t.Errorf("last sync = %q, want placeholder", s.LastSync)
	}
	if s.Badge != BadgeOK || s.BadgeText != LabelOK {
		t.Errorf("badge = %v %q", s.Badge, s.BadgeText)
	}
}

func TestBuildTable(t *testing.T) {
	entries := []api.RegistryEntry{
		{Store: "Shop-2", LastSeenISO: "2024-01-02T00:00:00Z"},
		{Store: "Shop-1"},
		{Store: "Shop-3", LastSeenISO: "2024-01-01T10:00:00Z"},
	}
	tbl := BuildTable(entries, utc)
	if tbl.Empty() {
		t.Fatal("table should not be empty")
	}
	if len(tbl.Rows) != len(entries) {
		t.Fatalf("expected %d rows, got %d", len(entries), len(tbl.Rows))
	}
	for i, e := range entries {
		if tbl.Rows[i].Store != e.Store {
			t.Errorf("row %d = %q, want %q", i, tbl.Rows[i].Store, e.Store)
		}
	}
	if tbl.Rows[1].LastSeen != format.Placeholder {
		t.Errorf("missing last seen = %q", tbl.Rows[1].LastSeen)
	}
}

func TestBuildTableEmpty(t *testing.T) {
	tbl := BuildTable(nil, utc)
	if !tbl.Empty() {
		t.Fatal("expected empty table")
	}
	if tbl.Placeholder() != LabelNoData {
		t.Errorf("placeholder = %q", tbl.Placeholder())
	}
}

func TestMemoryUsedPercent(t *testing.T) {
	got, ok := MemoryUsedPercent(400, 1000)
	if !ok || got != "60.0" {
		t.Errorf("MemoryUsedPercent(400, 1000) = %q, %v", got, ok)
	}
	got, ok = MemoryUsedPercent(400, 0)
	if ok || got != format.Placeholder {
		t.Errorf("MemoryUsedPercent(400, 0) = %q, %v", got, ok)
	}
	if got, _ := MemoryUsedPercent(1, 3); got != "66.7" {
		t.Errorf("MemoryUsedPercent(1, 3) = %q", got)
	}
}

func metric(name, value string) api.Metric {
	return api.Metric{Metric: name, Value: api.StringValue(value)}
}

func TestBuildDetailHost(t *testing.T) {
	d := BuildDetail("Shop-12", api.StoreDetail{
		Windows: []api.Metric{
			metric("windows_cpu_time_total", "10"),
			metric(MetricUp, "1"),
			metric(MetricMemoryAvailable, "400"),
			metric(MetricMemoryTotal, "1000"),
		},
	})
	h := d.Host
	if h.State != HostMetrics {
		t.Fatalf("state = %v", h.State)
	}
	if !h.HasUp || h.Up != "1" {
		t.Errorf("up = %q %v", h.Up, h.HasUp)
	}
	if h.MemoryUsed != "60.0" {
		t.Errorf("memory used = %q", h.MemoryUsed)
	}
	if h.MetricCount != 4 {
		t.Errorf("metric count = %d", h.MetricCount)
	}
}

func TestBuildDetailHostMissingMetrics(t *testing.T) {
	d := BuildDetail("Shop-12", api.StoreDetail{
		Windows: []api.Metric{metric(MetricMemoryAvailable, "400")},
	})
	if d.Host.HasUp || d.Host.HasMemory {
		t.Errorf("absent metrics must be omitted: %+v", d.Host)
	}
	if d.Host.MemoryUsed != format.Placeholder {
		t.Errorf("memory used = %q", d.Host.MemoryUsed)
	}
	if d.Host.MetricCount != 1 {
		t.Errorf("metric count = %d", d.Host.MetricCount)
	}
}

func TestBuildDetailHostZeroTotal(t *testing.T) {
	d := BuildDetail("s", api.StoreDetail{
		Windows: []api.Metric{metric(MetricMemoryAvailable, "400"), metric(MetricMemoryTotal, "0")},
	})
	if d.Host.MemoryUsed != format.Placeholder {
		t.Errorf("memory used = %q, want placeholder", d.Host.MemoryUsed)
	}
}

func TestBuildDetailHostErrorAndEmpty(t *testing.T) {
	d := BuildDetail("s", api.StoreDetail{Error: strPtr("<b>timeout</b>"), Windows: []api.Metric{metric(MetricUp, "1")}})
	if d.Host.State != HostError || d.Host.Error != "<b>timeout</b>" {
		t.Errorf("expected error state, got %+v", d.Host)
	}

	d = BuildDetail("s", api.StoreDetail{})
	if d.Host.State != HostNoData {
		t.Errorf("expected no data state, got %v", d.Host.State)
	}
}

func TestBuildDetailRouter(t *testing.T) {
	d := BuildDetail("s", api.StoreDetail{
		SNMPInterfaces: []api.SNMPInterface{
			{IfName: "ether1", IfAlias: "WAN", Status: "Up"},
			{IfName: "ether2", Status: "Down"},
			{IfName: "ether3", Status: "up"},
		},
		Mikrotik: []jsoniter.RawMessage{jsoniter.RawMessage(`{"metric":"x"}`)},
	})
	if d.Router != RouterInterfaces || len(d.Interfaces) != 3 {
		t.Fatalf("router = %v, interfaces = %d", d.Router, len(d.Interfaces))
	}
	if !d.Interfaces[0].Up || d.Interfaces[0].Class() != "up" {
		t.Error("exact Up must be up")
	}
	if d.Interfaces[1].Alias != format.Placeholder {
		t.Errorf("alias = %q, want placeholder", d.Interfaces[1].Alias)
	}
	if d.Interfaces[2].Up {
		t.Error("status match must be exact")
	}

	d = BuildDetail("s", api.StoreDetail{
		Mikrotik: []jsoniter.RawMessage{jsoniter.RawMessage(`{}`), jsoniter.RawMessage(`{}`)},
	})
	if d.Router != RouterMetricCount || d.RouterMetricCount != 2 {
		t.Errorf("router = %v count = %d", d.Router, d.RouterMetricCount)
	}

	d = BuildDetail("s", api.StoreDetail{})
	if d.Router != RouterNoData {
		t.Errorf("router = %v, want no data", d.Router)
	}
	if d.RawRouter != "[]" || d.RawWindows != "[]" {
		t.Errorf("raw panes = %q %q", d.RawRouter, d.RawWindows)
	}
}

func TestDashboardFailedTickLeavesViewsUntouched(t *testing.T) {
	d := NewDashboard(utc)
	d.Apply(engine.Tick{
		Seq:      1,
		Registry: api.Registry{Stores: []api.RegistryEntry{{Store: "Shop-1"}}},
		Status:   api.StatusSnapshot{PrometheusURL: "http://prom", Version: strPtr("0.2.0")},
	})
	before := *d

	d.Apply(engine.Tick{Seq: 2, Err: errors.New("Bad Gateway")})
	if d.Raw != "Error: Bad Gateway" {
		t.Errorf("raw = %q", d.Raw)
	}
	if d.Summary != before.Summary {
		t.Error("summary changed on failed tick")
	}
	if len(d.Table.Rows) != 1 || d.Table.Rows[0].Store != "Shop-1" {
		t.Error("table changed on failed tick")
	}
}

func TestDashboardFirstTickFails(t *testing.T) {
	d := NewDashboard(utc)
	d.Apply(engine.Tick{Seq: 1, Err: errors.New("Internal Server Error")})
	if d.Rendered {
		t.Error("failed first tick must leave the dashboard unrendered")
	}
	if !strings.HasPrefix(d.Raw, ErrorPrefix) {
		t.Errorf("raw = %q", d.Raw)
	}
}

func TestDashboardStickyVersion(t *testing.T) {
	d := NewDashboard(utc)
	d.Apply(engine.Tick{Status: api.StatusSnapshot{Version: strPtr("0.2.0")}})
	d.Apply(engine.Tick{Status: api.StatusSnapshot{}})
	if !d.Summary.HasVersion || d.Summary.Version != "0.2.0" {
		t.Errorf("version = %q %v", d.Summary.Version, d.Summary.HasVersion)
	}
	d.Apply(engine.Tick{Status: api.StatusSnapshot{Version: strPtr("0.3.0")}})
	if d.Summary.Version != "0.3.0" {
		t.Errorf("version = %q", d.Summary.Version)
	}
	if !strings.Contains(d.Raw, `"prometheus_url"`) {
		t.Errorf("raw pane should hold the status JSON, got %q", d.Raw)
	}
}

func TestSessionOpenResolve(t *testing.T) {
	var s DetailSession
	if s.IsOpen() {
		t.Fatal("zero session must be closed")
	}

	tk := s.Open("Shop-12")
	if !s.IsOpen() || s.Title() != "Shop-12" {
		t.Fatalf("open state = %v title = %q", s.State(), s.Title())
	}
	if !s.Detail().Loading {
		t.Error("expected loading placeholder after open")
	}

	ok := s.Resolve(tk, api.StoreDetail{Windows: []api.Metric{metric(MetricUp, "1")}}, nil)
	if !ok {
		t.Fatal("current ticket must resolve")
	}
	if s.Detail().Loading || s.Detail().Host.State != HostMetrics {
		t.Errorf("detail not rendered: %+v", s.Detail())
	}
}

func TestSessionResolveError(t *testing.T) {
	var s DetailSession
	tk := s.Open("Shop-12")
	s.Resolve(tk, api.StoreDetail{}, errors.New("Not Found"))
	d := s.Detail()
	if d.FetchError != "Not Found" {
		t.Errorf("fetch error = %q", d.FetchError)
	}
	if d.Router != RouterNoData || len(d.Interfaces) != 0 || d.RawRouter != "" {
		t.Error("other regions must stay cleared on failure")
	}
}

func TestSessionDropsStaleResponses(t *testing.T) {
	var s DetailSession
	first := s.Open("Shop-1")
	second := s.Open("Shop-2")

	if s.Resolve(first, api.StoreDetail{Error: strPtr("late")}, nil) {
		t.Error("response for a previous selection must be dropped")
	}
	if !s.Detail().Loading || s.Detail().Store != "Shop-2" {
		t.Errorf("stale response clobbered content: %+v", s.Detail())
	}

	s.Close()
	if s.Resolve(second, api.StoreDetail{}, nil) {
		t.Error("response after close must be dropped")
	}

	third := s.Open("Shop-2")
	if s.Resolve(second, api.StoreDetail{}, nil) {
		t.Error("response from a closed session must not apply to a reopened one")
	}
	if !s.Resolve(third, api.StoreDetail{}, nil) {
		t.Error("current ticket must resolve")
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	var s DetailSession
	if s.Close() {
		t.Error("closing a closed session must be a no-op")
	}
	s.Open("Shop-12")
	if !s.Close() {
		t.Error("first close must change state")
	}
	if s.Close() {
		t.Error("second close must be a no-op")
	}
	if s.State() != ModalClosed {
		t.Errorf("state = %v", s.State())
	}
}
