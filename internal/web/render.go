// Package web serves the dashboard as server-rendered HTML pages.
package web

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tonhe/storewatch/internal/format"
	"github.com/tonhe/storewatch/internal/view"
)

const pageStyle = `
    body { margin: 0; font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; font-size: 14px; background: #f7f7f7; color: #333; }
    header { background: #0e5d8f; color: #fff; padding: 12px 20px; }
    header a { color: #fff; }
    main { padding: 16px 20px; }
    .cards { display: flex; flex-wrap: wrap; gap: 12px; margin-bottom: 16px; }
    .card { background: #fff; border: 1px solid #ddd; border-radius: 4px; padding: 10px 14px; min-width: 200px; }
    .card h3 { margin: 0 0 6px; font-size: 12px; color: #777; font-weight: 600; text-transform: uppercase; }
    .card .value { font-size: 18px; font-weight: 600; }
    .note { color: #a94442; font-size: 12px; }
    .badge { display: inline-block; padding: 2px 8px; border-radius: 3px; font-weight: 600; }
    .badge.ok { background: #dff0d8; color: #3c763d; }
    .badge.err { background: #f2dede; color: #a94442; }
    table { border-collapse: collapse; background: #fff; width: 100%; }
    th, td { border: 1px solid #eee; padding: 6px 10px; text-align: left; }
    th { background: #f0f0f0; }
    td.up { color: #3c763d; font-weight: 600; }
    td.down { color: #a94442; font-weight: 600; }
    pre { background: #fff; border: 1px solid #ddd; padding: 10px; overflow: auto; max-height: 400px; }
    .error { color: #a94442; }
    .muted { color: #777; }
`

func writeHead(b *strings.Builder, title string, refresh time.Duration) {
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\" />\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\" />\n")
	if refresh > 0 {
		fmt.Fprintf(b, "<meta http-equiv=\"refresh\" content=\"%d\" />\n", int(refresh.Seconds()))
	}
	fmt.Fprintf(b, "<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n", format.EscapeHTML(title), pageStyle)
}

func writeFoot(b *strings.Builder) {
	b.WriteString("</body>\n</html>\n")
}

// StoreHref returns the link to the detail page of a store.
func StoreHref(store string) string {
	return "/store/" + url.PathEscape(store)
}

// RenderDashboard renders the main page. The page reloads itself every
// refresh interval.
func RenderDashboard(d *view.Dashboard, refresh time.Duration) string {
	var b strings.Builder
	writeHead(&b, "storewatch", refresh)
	b.WriteString("<header><strong>storewatch</strong></header>\n<main>\n")

	if !d.Rendered {
		fmt.Fprintf(&b, "<p class=\"muted\">%s</p>\n", format.EscapeHTML(view.LabelLoading))
	} else {
		writeCards(&b, d.Summary)
		writeRegistry(&b, d.Table)
	}

	b.WriteString("<h2>Status</h2>\n")
	class := ""
	if d.LastError != "" {
		class = " class=\"error\""
	}
	fmt.Fprintf(&b, "<pre id=\"status-raw\"%s>%s</pre>\n", class, format.EscapeHTML(d.Raw))
	if d.UpError != "" {
		fmt.Fprintf(&b, "<p class=\"note\">up: %s</p>\n", format.EscapeHTML(d.UpError))
	}

	b.WriteString("</main>\n")
	writeFoot(&b)
	return b.String()
}

func writeCards(b *strings.Builder, s view.Summary) {
	b.WriteString("<section class=\"cards\">\n")

	fmt.Fprintf(b, "<div class=\"card\"><h3>Prometheus</h3><div id=\"prom-url\">%s</div>"+
		"<span id=\"prom-status\" class=\"badge %s\">%s</span></div>\n",
		format.EscapeHTML(s.PrometheusURL), s.Badge.Class(), format.EscapeHTML(s.BadgeText))

	fmt.Fprintf(b, "<div class=\"card\"><h3>Stores up</h3><div class=\"value\" id=\"stores-up\">%d</div></div>\n", s.StoresUp)
	fmt.Fprintf(b, "<div class=\"card\"><h3>In registry</h3><div class=\"value\" id=\"stores-registry\">%d</div></div>\n", s.StoresInRegistry)

	title := ""
	if s.LastSyncError != "" {
		title = fmt.Sprintf(" title=\"%s\"", format.EscapeHTML(s.LastSyncError))
	}
	fmt.Fprintf(b, "<div class=\"card\"><h3>Last sync</h3><div id=\"last-sync\"%s>%s</div>",
		title, format.EscapeHTML(s.LastSync))
	if s.LastSyncError != "" {
		fmt.Fprintf(b, "<div class=\"note\">%s</div>", format.EscapeHTML(s.LastSyncError))
	}
	b.WriteString("</div>\n")

	version := format.Placeholder
	if s.HasVersion {
		version = s.Version
	}
	fmt.Fprintf(b, "<div class=\"card\"><h3>Backend</h3><div id=\"version\">%s</div>"+
		"<div class=\"muted\">retention %d days</div></div>\n",
		format.EscapeHTML(version), s.RetentionDays)

	b.WriteString("</section>\n")
}

func writeRegistry(b *strings.Builder, t view.Table) {
	b.WriteString("<h2>Registry</h2>\n<table id=\"registry-table\">\n")
	b.WriteString("<thead><tr><th>Store</th><th>Last seen</th></tr></thead>\n<tbody>\n")
	if t.Empty() {
		fmt.Fprintf(b, "<tr><td colspan=\"%d\">%s</td></tr>\n", view.Columns, format.EscapeHTML(t.Placeholder()))
	}
	for _, r := range t.Rows {
		seen := format.EscapeHTML(r.LastSeen)
		if r.Ago != "" {
			seen += fmt.Sprintf(" <span class=\"muted\">(%s)</span>", format.EscapeHTML(r.Ago))
		}
		fmt.Fprintf(b, "<tr><td><a href=\"%s\">%s</a></td><td>%s</td></tr>\n",
			format.EscapeHTML(StoreHref(r.Store)), format.EscapeHTML(r.Store), seen)
	}
	b.WriteString("</tbody>\n</table>\n")
}

// RenderDetail renders the detail page of one store.
func RenderDetail(d view.Detail) string {
	var b strings.Builder
	writeHead(&b, d.Store, 0)
	fmt.Fprintf(&b, "<header><a href=\"/\">storewatch</a> / <strong id=\"modal-title\">%s</strong></header>\n<main>\n",
		format.EscapeHTML(d.Store))

	switch {
	case d.Loading:
		fmt.Fprintf(&b, "<p class=\"muted\">%s</p>\n", format.EscapeHTML(view.LabelLoading))
	case d.FetchError != "":
		fmt.Fprintf(&b, "<p class=\"error\">%s</p>\n", format.EscapeHTML(view.ErrorPrefix+d.FetchError))
	default:
		writeHost(&b, d.Host)
		writeRouter(&b, d)
		b.WriteString("<h2>Router metrics (raw)</h2>\n")
		fmt.Fprintf(&b, "<pre id=\"mikrotik-raw\">%s</pre>\n", format.EscapeHTML(d.RawRouter))
		b.WriteString("<h2>PC metrics (raw)</h2>\n")
		fmt.Fprintf(&b, "<pre id=\"windows-raw\">%s</pre>\n", format.EscapeHTML(d.RawWindows))
	}

	b.WriteString("</main>\n")
	writeFoot(&b)
	return b.String()
}

func writeHost(b *strings.Builder, h view.HostSummary) {
	b.WriteString("<h2>PC</h2>\n<div id=\"windows-summary\">\n")
	switch h.State {
	case view.HostError:
		fmt.Fprintf(b, "<p class=\"error\">%s</p>\n", format.EscapeHTML(h.Error))
	case view.HostNoData:
		fmt.Fprintf(b, "<p class=\"muted\">%s</p>\n", format.EscapeHTML(view.LabelNoPCData))
	default:
		if h.HasUp {
			fmt.Fprintf(b, "<p>up: %s</p>\n", format.EscapeHTML(h.Up))
		}
		used := h.MemoryUsed
		if used != format.Placeholder {
			used += "%"
		}
		fmt.Fprintf(b, "<p>memory used: %s</p>\n", format.EscapeHTML(used))
		if h.HasMemory {
			fmt.Fprintf(b, "<p class=\"muted\">%s free of %s</p>\n",
				format.EscapeHTML(h.MemoryAvailable), format.EscapeHTML(h.MemoryTotal))
		}
		fmt.Fprintf(b, "<p>metrics: %d</p>\n", h.MetricCount)
	}
	b.WriteString("</div>\n")
}

func writeRouter(b *strings.Builder, d view.Detail) {
	b.WriteString("<h2>Router</h2>\n<div id=\"interfaces\">\n")
	switch d.Router {
	case view.RouterNoData:
		fmt.Fprintf(b, "<p class=\"muted\">%s</p>\n", format.EscapeHTML(view.LabelNoRouterData))
	case view.RouterMetricCount:
		fmt.Fprintf(b, "<p>metrics: %d</p>\n", d.RouterMetricCount)
	default:
		b.WriteString("<table>\n<thead><tr><th>Name</th><th>Alias</th><th>Status</th></tr></thead>\n<tbody>\n")
		for _, r := range d.Interfaces {
			fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td class=\"%s\">%s</td></tr>\n",
				format.EscapeHTML(r.Name), format.EscapeHTML(r.Alias), r.Class(), format.EscapeHTML(r.Status))
		}
		b.WriteString("</tbody>\n</table>\n")
	}
	b.WriteString("</div>\n")
}
