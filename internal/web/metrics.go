package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/engine"
)

const namespace = "storewatch"

// pollerCollector exports the refresh loop state on every scrape.
type pollerCollector struct {
	poller *engine.Poller

	ticks      *prometheus.Desc
	tickErrors *prometheus.Desc
	storesUp   *prometheus.Desc
	registered *prometheus.Desc
	store      *prometheus.Desc
	reachable  *prometheus.Desc
}

func newPollerCollector(p *engine.Poller) *pollerCollector {
	return &pollerCollector{
		poller: p,
		ticks: prometheus.NewDesc(namespace+"_refresh_total",
			"Refresh cycles run since start.", nil, nil),
		tickErrors: prometheus.NewDesc(namespace+"_refresh_errors_total",
			"Refresh cycles that failed.", nil, nil),
		storesUp: prometheus.NewDesc(namespace+"_stores_up",
			"Stores reporting up in the last successful cycle.", nil, nil),
		registered: prometheus.NewDesc(namespace+"_stores_in_registry",
			"Stores in the backend registry in the last successful cycle.", nil, nil),
		store: prometheus.NewDesc(namespace+"_store_registered",
			"Store present in the registry in the last successful cycle.", []string{"store"}, nil),
		reachable: prometheus.NewDesc(namespace+"_prometheus_reachable",
			"Whether the backend reported its Prometheus as reachable in the last successful cycle.", nil, nil),
	}
}

func (c *pollerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ticks
	ch <- c.tickErrors
	ch <- c.storesUp
	ch <- c.registered
	ch <- c.store
	ch <- c.reachable
}

func (c *pollerCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.poller.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.ticks, prometheus.CounterValue, float64(snap.Info.TickCount))
	ch <- prometheus.MustNewConstMetric(c.tickErrors, prometheus.CounterValue, float64(snap.Info.ErrorCount))

	// Gauges keep reporting the last successful cycle while refreshes fail.
	last := snap.LastOK
	if last.Seq == 0 {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.storesUp, prometheus.GaugeValue,
		float64(api.StoresUpNow(last.Status, last.Up)))
	ch <- prometheus.MustNewConstMetric(c.registered, prometheus.GaugeValue,
		float64(last.Status.StoresInRegistry))
	reachable := 0.0
	if last.Status.PrometheusReachable {
		reachable = 1
	}
	ch <- prometheus.MustNewConstMetric(c.reachable, prometheus.GaugeValue, reachable)

	seen := make(map[string]bool, len(last.Registry.Stores))
	for _, e := range last.Registry.Stores {
		if seen[e.Store] {
			continue
		}
		seen[e.Store] = true
		ch <- prometheus.MustNewConstMetric(c.store, prometheus.GaugeValue, 1, e.Store)
	}
}
