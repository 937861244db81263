package view

import (
	"fmt"

	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/format"
)

// Windows metric names used by the host summary.
const (
	MetricUp              = "up"
	MetricMemoryAvailable = "windows_memory_available_bytes"
	MetricMemoryTotal     = "windows_memory_physical_total_bytes"
)

// StatusUp is the only interface status rendered with the up class.
const StatusUp = "Up"

// HostState selects what the Windows metrics region shows.
type HostState int

const (
	HostError HostState = iota
	HostNoData
	HostMetrics
)

// HostSummary is the Windows metrics region.
type HostSummary struct {
	State HostState
	Error string

	Up    string
	HasUp bool

	// MemoryUsed is the occupied memory percentage with one decimal, or
	// format.Placeholder when it cannot be computed.
	MemoryUsed      string
	MemoryAvailable string
	MemoryTotal     string
	HasMemory       bool

	MetricCount int
}

// RouterState selects what the interfaces region shows.
type RouterState int

const (
	RouterNoData RouterState = iota
	RouterInterfaces
	RouterMetricCount
)

// InterfaceRow is one SNMP interface table row.
type InterfaceRow struct {
	Name   string
	Alias  string
	Status string
	Up     bool
}

// Class returns the CSS class name of the status cell.
func (r InterfaceRow) Class() string {
	if r.Up {
		return "up"
	}
	return "down"
}

// Detail is the content of the store detail view.
type Detail struct {
	Store   string
	Loading bool
	// FetchError is set when the detail request itself failed; the other
	// regions stay cleared.
	FetchError string

	Host HostSummary

	Router            RouterState
	Interfaces        []InterfaceRow
	RouterMetricCount int

	RawRouter  string
	RawWindows string
}

// Loaded reports whether a payload has been rendered.
func (d Detail) Loaded() bool {
	return !d.Loading && d.FetchError == ""
}

// LoadingDetail is the state shown right after a store is selected.
func LoadingDetail(store string) Detail {
	return Detail{Store: store, Loading: true}
}

// FailedDetail is the state shown when the detail request failed.
func FailedDetail(store string, err error) Detail {
	return Detail{Store: store, FetchError: format.Text(err)}
}

// BuildDetail renders a detail payload.
func BuildDetail(store string, d api.StoreDetail) Detail {
	out := Detail{
		Store:      store,
		Host:       buildHost(d),
		RawRouter:  format.PrettyJSON(nonNil(d.Mikrotik)),
		RawWindows: format.PrettyJSON(nonNil(d.Windows)),
	}

	switch {
	case len(d.SNMPInterfaces) > 0:
		out.Router = RouterInterfaces
		out.Interfaces = make([]InterfaceRow, 0, len(d.SNMPInterfaces))
		for _, iface := range d.SNMPInterfaces {
			alias := iface.IfAlias
			if alias == "" {
				alias = format.Placeholder
			}
			out.Interfaces = append(out.Interfaces, InterfaceRow{
				Name:   iface.IfName,
				Alias:  alias,
				Status: iface.Status,
				Up:     iface.Status == StatusUp,
			})
		}
	case len(d.Mikrotik) > 0:
		out.Router = RouterMetricCount
		out.RouterMetricCount = len(d.Mikrotik)
	default:
		out.Router = RouterNoData
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func buildHost(d api.StoreDetail) HostSummary {
	if d.Error != nil && *d.Error != "" {
		return HostSummary{State: HostError, Error: *d.Error}
	}
	if len(d.Windows) == 0 {
		return HostSummary{State: HostNoData}
	}

	h := HostSummary{State: HostMetrics, MetricCount: len(d.Windows)}
	var (
		avail, total     float64
		hasAvail, hasTot bool
	)
	for _, m := range d.Windows {
		switch m.Metric {
		case MetricUp:
			if !h.HasUp {
				h.Up = m.Value.String()
				h.HasUp = true
			}
		case MetricMemoryAvailable:
			if !hasAvail {
				avail, hasAvail = m.Value.Float()
			}
		case MetricMemoryTotal:
			if !hasTot {
				total, hasTot = m.Value.Float()
			}
		}
	}

	h.MemoryUsed = format.Placeholder
	if hasAvail && hasTot {
		h.HasMemory = true
		h.MemoryAvailable = format.Bytes(avail)
		h.MemoryTotal = format.Bytes(total)
		if pct, ok := MemoryUsedPercent(avail, total); ok {
			h.MemoryUsed = pct
		}
	}
	return h
}

// MemoryUsedPercent returns 100*(1-available/total) with one decimal. It
// reports false when total is zero.
func MemoryUsedPercent(available, total float64) (string, bool) {
	if total == 0 {
		return format.Placeholder, false
	}
	return fmt.Sprintf("%.1f", 100*(1-available/total)), true
}
