package engine

import (
	"context"
	"time"

	"github.com/tonhe/storewatch/internal/api"
)

// Source is the subset of the backend client the poller needs.
type Source interface {
	Registry(ctx context.Context) (api.Registry, error)
	Status(ctx context.Context) (api.StatusSnapshot, error)
	Up(ctx context.Context) (api.UpSnapshot, error)
}

// Tick is the outcome of one refresh cycle. When Err is set the cycle
// failed and the other payload fields must not be rendered.
type Tick struct {
	Seq      int
	At       time.Time
	Duration time.Duration
	Registry api.Registry
	Status   api.StatusSnapshot
	Up       api.UpSnapshot
	UpErr    error // non-fatal; Up holds the empty fallback
	Err      error
}

// OK reports whether the essential fetches succeeded.
func (t Tick) OK() bool {
	return t.Err == nil
}

// HistorySample records the stores-up count after a successful tick.
type HistorySample struct {
	Timestamp time.Time `json:"timestamp"`
	StoresUp  int       `json:"stores_up"`
}

// EngineState represents the lifecycle state of the poller.
type EngineState int

const (
	EngineStopped EngineState = iota
	EngineRunning
	EngineError
)

func (s EngineState) String() string {
	switch s {
	case EngineRunning:
		return "LIVE"
	case EngineError:
		return "ERROR"
	default:
		return "STOPPED"
	}
}

// EngineInfo provides summary information about the poller.
type EngineInfo struct {
	State      EngineState
	Interval   time.Duration
	LastTick   time.Time
	TickCount  int
	ErrorCount int
}

// Snapshot is a point-in-time copy of the poller state. LastOK is the
// newest successful tick; its Seq is 0 until one succeeds.
type Snapshot struct {
	Last    Tick
	LastOK  Tick
	History []HistorySample
	Info    EngineInfo
}
