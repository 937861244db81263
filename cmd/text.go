package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tonhe/storewatch/internal/format"
	"github.com/tonhe/storewatch/internal/view"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// RenderDashboardText renders the dashboard as plain text.
func RenderDashboardText(d *view.Dashboard) string {
	var b strings.Builder
	if !d.Rendered {
		b.WriteString(format.Sanitize(d.Raw))
		b.WriteString("\n")
		return b.String()
	}

	s := d.Summary
	version := format.Placeholder
	if s.HasVersion {
		version = s.Version
	}
	fmt.Fprintf(&b, "Prometheus:  %s [%s]\n", format.Sanitize(s.PrometheusURL), s.BadgeText)
	fmt.Fprintf(&b, "Backend:     %s\n", format.Sanitize(version))
	fmt.Fprintf(&b, "Stores up:   %s of %s in registry\n", format.Count(s.StoresUp), format.Count(s.StoresInRegistry))
	fmt.Fprintf(&b, "Last sync:   %s\n", s.LastSync)
	if s.LastSyncError != "" {
		fmt.Fprintf(&b, "Sync error:  %s\n", format.Sanitize(s.LastSyncError))
	}
	fmt.Fprintf(&b, "Retention:   %d days\n", s.RetentionDays)
	if d.UpError != "" {
		fmt.Fprintf(&b, "Up list:     unavailable (%s)\n", format.Sanitize(d.UpError))
	}
	b.WriteString("\n")

	t := newTable("Store", "Last seen", "")
	if d.Table.Empty() {
		t.Row(d.Table.Placeholder(), "", "")
	}
	for _, r := range d.Table.Rows {
		t.Row(format.Sanitize(r.Store), r.LastSeen, r.Ago)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

// RenderDetailText renders one store's details as plain text.
func RenderDetailText(d view.Detail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Store: %s\n\n", format.Sanitize(d.Store))
	if d.FetchError != "" {
		fmt.Fprintf(&b, "%s%s\n", view.ErrorPrefix, format.Sanitize(d.FetchError))
		return b.String()
	}

	b.WriteString("PC\n")
	h := d.Host
	switch h.State {
	case view.HostError:
		fmt.Fprintf(&b, "  %s\n", format.Sanitize(h.Error))
	case view.HostNoData:
		fmt.Fprintf(&b, "  %s\n", view.LabelNoPCData)
	default:
		if h.HasUp {
			fmt.Fprintf(&b, "  up:           %s\n", format.Sanitize(h.Up))
		}
		used := h.MemoryUsed
		if used != format.Placeholder {
			used += "%"
		}
		fmt.Fprintf(&b, "  memory used:  %s\n", used)
		if h.HasMemory {
			fmt.Fprintf(&b, "  memory:       %s free of %s\n", h.MemoryAvailable, h.MemoryTotal)
		}
		fmt.Fprintf(&b, "  metrics:      %d\n", h.MetricCount)
	}

	b.WriteString("\nRouter\n")
	switch d.Router {
	case view.RouterNoData:
		fmt.Fprintf(&b, "  %s\n", view.LabelNoRouterData)
	case view.RouterMetricCount:
		fmt.Fprintf(&b, "  metrics:      %d\n", d.RouterMetricCount)
	default:
		t := newTable("Name", "Alias", "Status")
		for _, r := range d.Interfaces {
			t.Row(format.Sanitize(r.Name), format.Sanitize(r.Alias), format.Sanitize(r.Status))
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	return b.String()
}
