// Package metrics exports engine activity to Prometheus.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"matrix-arcade/internal/puzzle"
)

const namespace = "matrix_arcade"

// Collector implements puzzle.Observer. One Collector is shared by every
// engine in the process; the collectors are goroutine-safe.
type Collector struct {
	spawned  *prometheus.CounterVec
	locked   *prometheus.CounterVec
	lines    prometheus.Counter
	episodes prometheus.Counter
	planning *prometheus.HistogramVec
	sessions prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_spawned_total",
			Help:      "Pieces spawned, by piece letter.",
		}, []string{"piece"}),
		locked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_locked_total",
			Help:      "Pieces merged into the board, by piece letter.",
		}, []string{"piece"}),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_cleared_total",
			Help:      "Full rows removed.",
		}),
		episodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "episodes_ended_total",
			Help:      "Episodes that ended in game over.",
		}),
		planning: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Time spent searching for a placement.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"result"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Connected sessions each running an engine.",
		}),
	}
	reg.MustRegister(c.spawned, c.locked, c.lines, c.episodes, c.planning, c.sessions)
	return c
}

func (c *Collector) Spawned(p puzzle.Piece) { c.spawned.WithLabelValues(p.String()).Inc() }
func (c *Collector) Locked(p puzzle.Piece)  { c.locked.WithLabelValues(p.String()).Inc() }
func (c *Collector) LinesCleared(n int)     { c.lines.Add(float64(n)) }
func (c *Collector) GameOver(_, _ int)      { c.episodes.Inc() }

func (c *Collector) Planned(d time.Duration, ok bool) {
	result := "found"
	if !ok {
		result = "none"
	}
	c.planning.WithLabelValues(result).Observe(d.Seconds())
}

// SessionStarted and SessionEnded track connected sessions.
func (c *Collector) SessionStarted() { c.sessions.Inc() }
func (c *Collector) SessionEnded()   { c.sessions.Dec() }

// StartHTTP serves /metrics from g on addr in the background.
func StartHTTP(addr string, g prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	go func() {
		log.Printf("Prometheus /metrics listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("metrics server error: %v", err)
		}
	}()
}
