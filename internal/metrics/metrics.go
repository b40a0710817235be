// Package metrics exposes Prometheus collectors describing a counting run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
	"github.com/olehluchkiv/artistpairs/internal/ingest"
)

const namespace = "artistpairs"

// Metrics contains the collectors for one process.
type Metrics struct {
	LinesRead       prometheus.Gauge
	LinesSkipped    *prometheus.GaugeVec
	Groups          prometheus.Gauge
	DistinctArtists prometheus.Gauge
	Candidates      prometheus.Gauge
	PairsFound      prometheus.Gauge
	PairsReported   prometheus.Gauge
	Threshold       prometheus.Gauge
	StageDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with Go runtime
// and process collectors, on a fresh registry.
func New() (*Metrics, *prometheus.Registry) {
	m := &Metrics{
		LinesRead: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "lines_read",
			Help:      "Lines read from the input",
		}),
		LinesSkipped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "lines_skipped",
			Help:      "Input lines skipped, by reason",
		}, []string{"reason"}),
		Groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "groups",
			Help:      "Playlists accepted for counting",
		}),
		DistinctArtists: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "distinct_artists",
			Help:      "Distinct artists seen across all playlists",
		}),
		Candidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "candidates",
			Help:      "Artists meeting the support threshold",
		}),
		PairsFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "pairs_found",
			Help:      "Distinct candidate pairs seen at least once",
		}),
		PairsReported: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "pairs_reported",
			Help:      "Pairs meeting the support threshold",
		}),
		Threshold: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "threshold",
			Help:      "Support threshold used for the run",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		m.LinesRead,
		m.LinesSkipped,
		m.Groups,
		m.DistinctArtists,
		m.Candidates,
		m.PairsFound,
		m.PairsReported,
		m.Threshold,
		m.StageDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m, reg
}

// ObserveIngest records ingestion statistics.
func (m *Metrics) ObserveIngest(stats ingest.Stats) {
	m.LinesRead.Set(float64(stats.Lines))
	m.LinesSkipped.WithLabelValues("blank").Set(float64(stats.Blank))
	m.LinesSkipped.WithLabelValues("single_entry").Set(float64(stats.SingleEntry))
}

// ObserveResult records the sizes and stage timings of a finished run.
func (m *Metrics) ObserveResult(result *cooccur.Result) {
	m.Groups.Set(float64(result.Groups))
	m.DistinctArtists.Set(float64(result.DistinctArtists))
	m.Candidates.Set(float64(result.Candidates))
	m.PairsFound.Set(float64(result.PairsFound))
	m.PairsReported.Set(float64(len(result.Pairs)))
	m.Threshold.Set(float64(result.Threshold))
	for _, st := range result.Timings {
		m.StageDuration.WithLabelValues(st.Stage).Observe(st.Duration.Seconds())
	}
}
