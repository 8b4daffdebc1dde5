package statistic

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "whitelist"

var (
	linesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Candidate lines checked, by the bucket that decided them.",
		},
		[]string{"verdict"},
	)

	survivorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "survivors_total",
			Help:      "Candidate lines kept after filtering.",
		},
	)

	filterDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filter_duration_seconds",
			Help:      "Duration of filtering runs.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	compileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Duration of rule compilation.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	indexEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_entries",
			Help:      "Entries of the current match index, by kind.",
		},
		[]string{"kind"},
	)

	reloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Index reloads, by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		linesTotal,
		survivorsTotal,
		filterDuration,
		compileDuration,
		indexEntries,
		reloadsTotal,
	)
}

// ObserveCompile records how long building an index took and its size per
// kind of entry.
func ObserveCompile(elapsed time.Duration, entries map[string]int) {
	compileDuration.Observe(elapsed.Seconds())
	for kind, n := range entries {
		indexEntries.WithLabelValues(kind).Set(float64(n))
	}
}

func ObserveReload(err error) {
	if err != nil {
		reloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	reloadsTotal.WithLabelValues("success").Inc()
}
