package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Physics holds the collectors for one physics world. A nil *Physics is
// valid and records nothing.
type Physics struct {
	tickDuration  prometheus.Histogram
	iterations    prometheus.Histogram
	candidates    prometheus.Histogram
	bodiesAborted prometheus.Counter
	contacts      *prometheus.CounterVec
	jobErrors     prometheus.Counter
	colliders     prometheus.Gauge
	bodies        prometheus.Gauge
	treeNodes     prometheus.Gauge
}

// NewPhysics registers the physics collectors with reg.
func NewPhysics(reg prometheus.Registerer) *Physics {
	f := promauto.With(reg)
	return &Physics{
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "physics_tick_duration_seconds",
			Help:    "Time spent in one physics update",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		iterations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "physics_resolution_iterations",
			Help:    "Sweep iterations used per body per tick",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 16, 32, 64, 100},
		}),
		candidates: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "physics_broadphase_candidates",
			Help:    "Colliders returned by one tree query",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		bodiesAborted: f.NewCounter(prometheus.CounterOpts{
			Name: "physics_bodies_aborted_total",
			Help: "Bodies whose resolution hit the iteration limit",
		}),
		contacts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "physics_contacts_total",
			Help: "Contacts found during resolution",
		}, []string{"kind"}), // Bounded: "collision", "trigger"
		jobErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "physics_workqueue_job_errors_total",
			Help: "Narrow-phase jobs that returned an error or panicked",
		}),
		colliders: f.NewGauge(prometheus.GaugeOpts{
			Name: "physics_colliders",
			Help: "Registered colliders",
		}),
		bodies: f.NewGauge(prometheus.GaugeOpts{
			Name: "physics_bodies",
			Help: "Registered rigidbodies",
		}),
		treeNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "physics_tree_nodes",
			Help: "Nodes in the spatial partition tree",
		}),
	}
}

func (m *Physics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(d.Seconds())
}

func (m *Physics) ObserveIterations(n int) {
	if m == nil {
		return
	}
	m.iterations.Observe(float64(n))
}

func (m *Physics) ObserveCandidates(n int) {
	if m == nil {
		return
	}
	m.candidates.Observe(float64(n))
}

func (m *Physics) BodyAborted() {
	if m == nil {
		return
	}
	m.bodiesAborted.Inc()
}

func (m *Physics) Contact(trigger bool) {
	if m == nil {
		return
	}
	kind := "collision"
	if trigger {
		kind = "trigger"
	}
	m.contacts.WithLabelValues(kind).Inc()
}

func (m *Physics) JobErrors(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.jobErrors.Add(float64(n))
}

// SetPopulation updates the registry and tree size gauges.
func (m *Physics) SetPopulation(colliders, bodies, treeNodes int) {
	if m == nil {
		return
	}
	m.colliders.Set(float64(colliders))
	m.bodies.Set(float64(bodies))
	m.treeNodes.Set(float64(treeNodes))
}
