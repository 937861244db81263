package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/config"
	"github.com/tonhe/storewatch/internal/view"
)

func backend(t *testing.T, registry string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/registry", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(registry))
	})
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"prometheus_url":"http://prom:9090","prometheus_reachable":true,` +
			`"stores_in_registry":2,"last_sync":0,"version":"1.4.0","retention_days":30}`))
	})
	mux.HandleFunc("/api/up", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testRuntime(t *testing.T, baseURL string) *Runtime {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Timezone = "UTC"
	rt, err := NewRuntime(cfg)
	if err != nil {
		t.Fatalf("NewRuntime() error: %v", err)
	}
	return rt
}

func TestWriteSnapshotText(t *testing.T) {
	srv := backend(t, `{"stores":[{"store":"Shop-12","last_seen_iso":"2024-05-01T10:00:00"},{"store":"Shop-7"}],"count":2}`)
	var buf bytes.Buffer
	if err := writeSnapshot(testRuntime(t, srv.URL), &buf, false); err != nil {
		t.Fatalf("writeSnapshot() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"http://prom:9090 [OK]",
		"Backend:     1.4.0",
		"Stores up:   0 of 2 in registry",
		"Last sync:   —",
		"Shop-12",
		"01.05.2024, 10:00:00",
		"Up list:     unavailable (Internal Server Error)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in snapshot:\n%s", want, out)
		}
	}
}

func TestWriteSnapshotEmptyRegistry(t *testing.T) {
	srv := backend(t, `{"stores":[],"count":0}`)
	var buf bytes.Buffer
	if err := writeSnapshot(testRuntime(t, srv.URL), &buf, false); err != nil {
		t.Fatalf("writeSnapshot() error: %v", err)
	}
	if !strings.Contains(buf.String(), view.LabelNoData) {
		t.Errorf("expected placeholder row:\n%s", buf.String())
	}
}

func TestWriteSnapshotHTML(t *testing.T) {
	srv := backend(t, `{"stores":[{"store":"Shop <1>"}],"count":1}`)
	var buf bytes.Buffer
	if err := writeSnapshot(testRuntime(t, srv.URL), &buf, true); err != nil {
		t.Fatalf("writeSnapshot() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Shop &lt;1&gt;") {
		t.Errorf("expected escaped store in HTML snapshot")
	}
}

func TestWriteSnapshotFailure(t *testing.T) {
	srv := backend(t, `not json`)
	var buf bytes.Buffer
	err := writeSnapshot(testRuntime(t, srv.URL), &buf, false)
	if !api.IsParseError(err) {
		t.Fatalf("expected a parse error, got %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Error: ") {
		t.Errorf("expected the error to be written, got %q", buf.String())
	}
}

func TestRunSnapshotToFile(t *testing.T) {
	srv := backend(t, `{"stores":[{"store":"Shop-12","last_seen_iso":"2024-05-01T10:00:00Z"}],"count":1}`)
	out := filepath.Join(t.TempDir(), "snap.html")
	if err := runSnapshot(testRuntime(t, srv.URL), out, true); err != nil {
		t.Fatalf("runSnapshot() error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !strings.Contains(string(data), "Shop-12") {
		t.Errorf("expected the store in the snapshot, got:\n%s", data)
	}
}

func TestRunSnapshotToFileFailure(t *testing.T) {
	srv := backend(t, `not json`)
	out := filepath.Join(t.TempDir(), "snap.txt")
	err := runSnapshot(testRuntime(t, srv.URL), out, false)
	if !api.IsParseError(err) {
		t.Fatalf("expected a parse error, got %v", err)
	}
	data, rerr := os.ReadFile(out)
	if rerr != nil {
		t.Fatalf("reading snapshot: %v", rerr)
	}
	if !strings.HasPrefix(string(data), "Error: ") {
		t.Errorf("expected the error to be written before returning, got %q", data)
	}
}

func TestRunSnapshotBadPath(t *testing.T) {
	srv := backend(t, `{"stores":[],"count":0}`)
	out := filepath.Join(t.TempDir(), "missing", "snap.txt")
	if err := runSnapshot(testRuntime(t, srv.URL), out, false); err == nil {
		t.Error("expected an error for an uncreatable path")
	}
}

func TestRenderDetailText(t *testing.T) {
	d := view.BuildDetail("Shop-12", api.StoreDetail{
		Windows: []api.Metric{
			{Metric: "windows_memory_available_bytes", Value: api.StringValue("400")},
			{Metric: "windows_memory_physical_total_bytes", Value: api.StringValue("0")},
		},
		SNMPInterfaces: []api.SNMPInterface{{IfName: "ether1", Status: "Up"}},
	})
	out := RenderDetailText(d)
	for _, want := range []string{"Store: Shop-12", "memory used:  —", "metrics:      2", "ether1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	out = RenderDetailText(view.FailedDetail("Shop-12", &api.Error{Kind: api.KindRequestFailed, Message: "Not Found"}))
	if !strings.Contains(out, "Error: Not Found") {
		t.Errorf("expected fetch error, got:\n%s", out)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storewatch.yml")
	if err := os.WriteFile(path, []byte("base_url: http://a:1\ntheme: nord\nrefresh_interval: 3s\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(Globals{ConfigPath: path})
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.BaseURL != "http://a:1" || cfg.Theme != "nord" || cfg.RefreshInterval != 3*time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}

	cfg, err = LoadConfig(Globals{ConfigPath: path, URL: "https://b", Theme: "dracula"})
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.BaseURL != "https://b" || cfg.Theme != "dracula" {
		t.Errorf("flags should override the file, got %+v", cfg)
	}

	if _, err := LoadConfig(Globals{ConfigPath: path, URL: "not a url"}); err == nil {
		t.Error("expected a validation error for a bad URL")
	}
}

func TestIsSubcommand(t *testing.T) {
	for _, name := range []string{"serve", "snapshot", "store", "config", "themes", "version", "help"} {
		if !IsSubcommand(name) {
			t.Errorf("%q should be a subcommand", name)
		}
	}
	if IsSubcommand("list") {
		t.Error("list is not a subcommand")
	}
}
