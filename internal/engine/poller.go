package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tonhe/storewatch/internal/api"
	"golang.org/x/sync/errgroup"
)

// DefaultInterval is the delay between refresh cycles.
const DefaultInterval = 10 * time.Second

// Poller runs the refresh loop: every interval it fetches the registry,
// status and up endpoints concurrently and publishes the joined result.
type Poller struct {
	mu         sync.RWMutex
	cycleMu    sync.Mutex
	src        Source
	interval   time.Duration
	timeout    time.Duration
	history    *RingBuffer[HistorySample]
	last       Tick
	lastOK     Tick
	tickCount  int
	errorCount int
	running    bool
	stopOnce   sync.Once
	stopCh     chan struct{}
	now        func() time.Time
}

// NewPoller creates a Poller. A zero interval uses DefaultInterval; a zero
// timeout leaves each cycle unbounded.
func NewPoller(src Source, interval, timeout time.Duration, maxHistory int) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxHistory <= 0 {
		maxHistory = 360
	}
	return &Poller{
		src:      src,
		interval: interval,
		timeout:  timeout,
		history:  NewRingBuffer[HistorySample](maxHistory),
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
}

// Run performs a cycle immediately and then one per interval, whatever the
// outcome of the previous cycle. It blocks until ctx is done or Stop is
// called. Cycles never overlap: a slow cycle delays the next one.
func (p *Poller) Run(ctx context.Context) {
	p.mu.Lock()
	p.running = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Refresh(ctx)
	for {
		select {
		case <-ticker.C:
			p.Refresh(ctx)
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		}
	}
}

// Refresh executes a single cycle, records it and returns it. Concurrent
// calls are serialized so ticks are recorded in sequence order.
func (p *Poller) Refresh(ctx context.Context) Tick {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := p.now()
	tick := fetchAll(ctx, p.src)
	tick.At = start
	tick.Duration = p.now().Sub(start)

	p.record(&tick)
	return tick
}

// fetchAll issues the three requests concurrently and waits for all of
// them. The up endpoint is non-essential: its failure yields an empty list.
func fetchAll(ctx context.Context, src Source) Tick {
	var tick Tick
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reg, err := src.Registry(gctx)
		if err != nil {
			return err
		}
		tick.Registry = reg
		return nil
	})
	g.Go(func() error {
		st, err := src.Status(gctx)
		if err != nil {
			return err
		}
		tick.Status = st
		return nil
	})
	g.Go(func() error {
		up, err := src.Up(gctx)
		if err != nil {
			tick.UpErr = err
			up = api.UpSnapshot{Stores: []string{}}
		}
		tick.Up = up
		return nil
	})

	if err := g.Wait(); err != nil {
		return Tick{Err: err}
	}
	return tick
}

func (p *Poller) record(tick *Tick) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tickCount++
	tick.Seq = p.tickCount
	if tick.Err != nil {
		p.errorCount++
		log.Printf("refresh %d failed: %s", tick.Seq, api.Describe(tick.Err))
	} else {
		if tick.UpErr != nil {
			log.Printf("refresh %d: up endpoint unavailable: %s", tick.Seq, api.Describe(tick.UpErr))
		}
		p.history.Add(HistorySample{
			Timestamp: tick.At,
			StoresUp:  api.StoresUpNow(tick.Status, tick.Up),
		})
		p.lastOK = *tick
	}
	p.last = *tick
}

// Snapshot returns a point-in-time copy of the poller state.
// It is safe to call from any goroutine.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		Last:    p.last,
		LastOK:  p.lastOK,
		History: p.history.All(),
		Info:    p.infoLocked(),
	}
}

// Info returns summary information about the poller.
func (p *Poller) Info() EngineInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.infoLocked()
}

func (p *Poller) infoLocked() EngineInfo {
	state := EngineStopped
	if p.running {
		state = EngineRunning
		if p.tickCount > 0 && p.last.Err != nil {
			state = EngineError
		}
	}
	return EngineInfo{
		State:      state,
		Interval:   p.interval,
		LastTick:   p.last.At,
		TickCount:  p.tickCount,
		ErrorCount: p.errorCount,
	}
}

// Interval returns the delay between cycles.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Stop signals the loop to exit. It is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}
