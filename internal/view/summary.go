// Package view builds the display model of the dashboard from backend
// payloads. Nothing here touches a terminal or a page; the tui and web
// packages draw what these types describe.
package view

import (
	"time"

	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/format"
)

// Display labels.
const (
	LabelOK           = "OK"
	LabelError        = "Error"
	LabelNoData       = "No data"
	LabelNoPCData     = "no data from PC"
	LabelNoRouterData = "no data from router"
	LabelLoading      = "Loading..."
	ErrorPrefix       = "Error: "
)

// Options control date rendering.
type Options struct {
	Location   *time.Location
	DateLayout string
}

func (o Options) date(iso string) string {
	return format.FormatDateIn(iso, o.Location, o.DateLayout)
}

// Badge is the two-valued visual state of the reachability badge.
type Badge int

const (
	BadgeOK Badge = iota
	BadgeErr
)

// Class returns the CSS class name of the badge.
func (b Badge) Class() string {
	if b == BadgeOK {
		return "ok"
	}
	return "err"
}

// Summary is the content of the top status cards.
type Summary struct {
	PrometheusURL    string `json:"prometheus_url"`
	BadgeText        string `json:"badge_text"`
	Badge            Badge  `json:"-"`
	Version          string `json:"version,omitempty"`
	HasVersion       bool   `json:"-"`
	StoresUp         int    `json:"stores_up"`
	StoresInRegistry int    `json:"stores_in_registry"`
	LastSync         string `json:"last_sync"`
	LastSyncError    string `json:"last_sync_error,omitempty"`
	RetentionDays    int    `json:"retention_days"`
	RegistryFile     string `json:"registry_file"`
}

// BuildSummary derives the status cards from a status and up snapshot.
func BuildSummary(st api.StatusSnapshot, up api.UpSnapshot, opts Options) Summary {
	s := Summary{
		PrometheusURL:    st.PrometheusURL,
		BadgeText:        LabelError,
		Badge:            BadgeErr,
		StoresUp:         api.StoresUpNow(st, up),
		StoresInRegistry: st.StoresInRegistry,
		LastSync:         opts.date(st.LastSync.String()),
		RetentionDays:    st.RetentionDays,
		RegistryFile:     st.RegistryFile,
	}
	if st.PrometheusReachable {
		s.BadgeText = LabelOK
		s.Badge = BadgeOK
	}
	if st.Version != nil {
		s.Version = *st.Version
		s.HasVersion = true
	}
	if st.LastSyncError != nil && *st.LastSyncError != "" {
		s.LastSyncError = *st.LastSyncError
	}
	return s
}
