package view

import (
	"time"

	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/internal/format"
)

// Dashboard is the state of the main screen between refresh cycles.
type Dashboard struct {
	Summary Summary
	Table   Table
	// Raw is the diagnostic pane: the last status as JSON, or the error of
	// the last failed cycle.
	Raw string
	// Rendered is false until the first successful cycle.
	Rendered bool

	LastSeq   int
	LastTick  time.Time
	LastError string
	UpError   string

	opts Options
}

// NewDashboard returns an empty dashboard rendering dates with opts.
func NewDashboard(opts Options) *Dashboard {
	return &Dashboard{opts: opts}
}

// Apply folds a refresh cycle into the dashboard. A failed cycle only
// replaces the diagnostic pane; summary and table keep their previous
// content. The version label is sticky: an absent version keeps the last
// one shown.
func (d *Dashboard) Apply(t engine.Tick) {
	d.LastSeq = t.Seq
	d.LastTick = t.At
	if t.Err != nil {
		d.Raw = ErrorPrefix + format.Text(t.Err)
		d.LastError = format.Text(t.Err)
		return
	}

	prev := d.Summary
	d.Summary = BuildSummary(t.Status, t.Up, d.opts)
	if !d.Summary.HasVersion && prev.HasVersion {
		d.Summary.Version = prev.Version
		d.Summary.HasVersion = true
	}
	d.Table = BuildTable(t.Registry.Stores, d.opts)
	d.Raw = format.PrettyJSON(t.Status)
	d.Rendered = true
	d.LastError = ""
	d.UpError = format.Text(t.UpErr)
}
