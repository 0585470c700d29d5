// Package stats collects canonicity and walk statistics into a Prometheus registry.
package stats

import (
	"sync/atomic"

	"github.com/2x3systems/orbits/orbit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Collector implements orbit.Metrics.  Each Collector owns its registry, so independent runs never share counters.
type Collector struct {
	reg *prometheus.Registry

	inserts    *prometheus.CounterVec
	probes     prometheus.Histogram
	grows      prometheus.Counter
	capacity   prometheus.Gauge
	tests      *prometheus.CounterVec
	levelWidth prometheus.Histogram
	tasks      prometheus.Counter

	maxCapacity atomic.Int64
}

var _ orbit.Metrics = (*Collector)(nil)

// NewCollector returns a Collector with a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		reg: reg,
		inserts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orbits_set_inserts_total",
			Help: "Scratch set insert attempts by result",
		}, []string{"result"}),
		probes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "orbits_set_probes",
			Help:    "Occupied slots stepped over per insert",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 64},
		}),
		grows: factory.NewCounter(prometheus.CounterOpts{
			Name: "orbits_set_grows_total",
			Help: "Bounded set rehashes",
		}),
		capacity: factory.NewGauge(prometheus.GaugeOpts{
			Name: "orbits_set_capacity_max",
			Help: "Largest bounded set capacity reached",
		}),
		tests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orbits_canonicity_tests_total",
			Help: "Canonicity tests by result",
		}, []string{"result"}),
		levelWidth: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "orbits_level_width",
			Help:    "Candidates retained after one stabilizer chain level",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		tasks: factory.NewCounter(prometheus.CounterOpts{
			Name: "orbits_walk_tasks_total",
			Help: "Subtrees forked onto their own goroutine",
		}),
	}
}

// Registry exposes the underlying registry (e.g. for promhttp).
func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

func (c *Collector) SetInsert(probes int, added bool) {
	if added {
		c.inserts.WithLabelValues("added").Inc()
	} else {
		c.inserts.WithLabelValues("dupe").Inc()
	}
	c.probes.Observe(float64(probes))
}

func (c *Collector) SetGrow(newCapacity int) {
	c.grows.Inc()
	for {
		cur := c.maxCapacity.Load()
		if int64(newCapacity) <= cur {
			return
		}
		if c.maxCapacity.CompareAndSwap(cur, int64(newCapacity)) {
			c.capacity.Set(float64(newCapacity))
			return
		}
	}
}

func (c *Collector) CanonicityTest(canonical bool) {
	if canonical {
		c.tests.WithLabelValues("canonical").Inc()
	} else {
		c.tests.WithLabelValues("rejected").Inc()
	}
}

func (c *Collector) LevelWidth(width int) {
	c.levelWidth.Observe(float64(width))
}

func (c *Collector) TaskSpawned() {
	c.tasks.Inc()
}

// Snapshot is a point-in-time summary of a Collector.
type Snapshot struct {
	Added          uint64
	Dupes          uint64
	MeanProbes     float64
	Grows          uint64
	MaxCapacity    int
	Canonical      uint64
	Rejected       uint64
	Levels         uint64  // number of level sets observed
	MeanLevelWidth float64 // mean candidates per level set
	TasksForked    uint64
}

// Snapshot gathers the registry into a Snapshot.
func (c *Collector) Snapshot() (Snapshot, error) {
	families, err := c.reg.Gather()
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			label := ""
			if len(m.GetLabel()) > 0 {
				label = m.GetLabel()[0].GetValue()
			}
			switch mf.GetName() {
			case "orbits_set_inserts_total":
				if label == "added" {
					snap.Added = uint64(m.GetCounter().GetValue())
				} else {
					snap.Dupes = uint64(m.GetCounter().GetValue())
				}
			case "orbits_set_probes":
				snap.MeanProbes = mean(m.GetHistogram())
			case "orbits_set_grows_total":
				snap.Grows = uint64(m.GetCounter().GetValue())
			case "orbits_set_capacity_max":
				snap.MaxCapacity = int(m.GetGauge().GetValue())
			case "orbits_canonicity_tests_total":
				if label == "canonical" {
					snap.Canonical = uint64(m.GetCounter().GetValue())
				} else {
					snap.Rejected = uint64(m.GetCounter().GetValue())
				}
			case "orbits_level_width":
				snap.Levels = m.GetHistogram().GetSampleCount()
				snap.MeanLevelWidth = mean(m.GetHistogram())
			case "orbits_walk_tasks_total":
				snap.TasksForked = uint64(m.GetCounter().GetValue())
			}
		}
	}
	return snap, nil
}

func mean(h *dto.Histogram) float64 {
	if h.GetSampleCount() == 0 {
		return 0
	}
	return h.GetSampleSum() / float64(h.GetSampleCount())
}
