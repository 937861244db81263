package view

import (
	"time"

	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/format"
)

// Row is one registry table row.
type Row struct {
	Store    string `json:"store"`
	LastSeen string `json:"last_seen"`
	// Ago is the relative form of LastSeen, "" when unknown.
	Ago string `json:"ago,omitempty"`
}

// Table is the registry table. An empty table renders one placeholder
// row spanning both columns.
type Table struct {
	Rows []Row
}

// Columns is the number of registry table columns.
const Columns = 2

// Empty reports whether the placeholder row should be shown.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Placeholder returns the text of the spanning row.
func (t Table) Placeholder() string {
	return LabelNoData
}

// BuildTable renders one row per entry in backend order.
func BuildTable(entries []api.RegistryEntry, opts Options) Table {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Store:    e.Store,
			LastSeen: opts.date(e.LastSeenISO),
			Ago:      lastSeenAgo(e, opts.Location),
		})
	}
	return Table{Rows: rows}
}

func lastSeenAgo(e api.RegistryEntry, loc *time.Location) string {
	if t, ok, err := format.ParseTime(e.LastSeenISO, loc); ok && err == nil {
		return format.Ago(t)
	}
	if e.LastSeen > 0 {
		sec := int64(e.LastSeen)
		return format.Ago(time.Unix(sec, 0))
	}
	return ""
}
