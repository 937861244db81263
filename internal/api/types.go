package api

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusSnapshot is the payload of /api/status.
type StatusSnapshot struct {
	Version             *string   `json:"version,omitempty"`
	PrometheusURL       string    `json:"prometheus_url"`
	PrometheusReachable bool      `json:"prometheus_reachable"`
	StoresUpNow         *int      `json:"stores_up_now,omitempty"`
	StoresInRegistry    int       `json:"stores_in_registry"`
	LastSync            Timestamp `json:"last_sync"`
	LastSyncError       *string   `json:"last_sync_error,omitempty"`
	RegistryFile        string    `json:"registry_file,omitempty"`
	RetentionDays       int       `json:"retention_days,omitempty"`
}

// RegistryEntry is one known store. LastSeen is a unix timestamp in seconds.
type RegistryEntry struct {
	Store       string  `json:"store"`
	LastSeen    float64 `json:"last_seen,omitempty"`
	LastSeenISO string  `json:"last_seen_iso,omitempty"`
}

// Registry is the payload of /api/registry. Order is display order.
type Registry struct {
	Stores []RegistryEntry `json:"stores"`
	Count  int             `json:"count"`
}

// UpSnapshot is the payload of /api/up.
type UpSnapshot struct {
	Stores []string `json:"stores"`
	Error  string   `json:"error,omitempty"`
}

// Metric is one Prometheus sample as flattened by the backend.
type Metric struct {
	Metric string            `json:"metric"`
	Value  Value             `json:"value"`
	Labels map[string]string `json:"labels,omitempty"`
}

// SNMPInterface is one router interface with its operational status.
type SNMPInterface struct {
	IfName  string `json:"ifName"`
	IfAlias string `json:"ifAlias,omitempty"`
	Status  string `json:"status"`
	Value   Value  `json:"value"`
}

// StoreDetail is the payload of /api/store/<name>. Mikrotik records are
// kept opaque and only counted or dumped.
type StoreDetail struct {
	Version        string                `json:"version,omitempty"`
	Store          string                `json:"store,omitempty"`
	Error          *string               `json:"error"`
	Windows        []Metric              `json:"windows"`
	Mikrotik       []jsoniter.RawMessage `json:"mikrotik"`
	SNMPInterfaces []SNMPInterface       `json:"snmp_interfaces"`
}

// VersionInfo is the payload of /api/version.
type VersionInfo struct {
	Version string `json:"version"`
}

// Timestamp is an optional ISO timestamp. The backend sends 0 or false
// before its first sync, so anything that is not a string decodes as empty.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Timestamp(s)
	return nil
}

// String returns the raw ISO text, or "" when absent.
func (t Timestamp) String() string {
	return string(t)
}

// Value is a sample value. Prometheus encodes samples as strings but
// numbers and null are accepted too.
type Value struct {
	Raw   string
	Valid bool
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value{Raw: s, Valid: true}
		return nil
	}
	var n jsoniter.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = Value{Raw: n.String(), Valid: true}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Raw)
}

// Float parses the value as a float64.
func (v Value) Float() (float64, bool) {
	if !v.Valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.Raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String returns the raw value or "" when null.
func (v Value) String() string {
	return v.Raw
}

// StringValue returns a Value holding s.
func StringValue(s string) Value {
	return Value{Raw: s, Valid: true}
}

// StoresUpNow resolves the stores-up count: the status field when present,
// else the length of the up list, else 0.
func StoresUpNow(st StatusSnapshot, up UpSnapshot) int {
	if st.StoresUpNow != nil {
		return *st.StoresUpNow
	}
	if up.Stores != nil {
		return len(up.Stores)
	}
	return 0
}
