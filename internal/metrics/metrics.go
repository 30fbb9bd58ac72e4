package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "evaluasi"

// Registry holds every collector this service exports.
var Registry = prometheus.NewRegistry()

var (
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	RosterCommits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_commits_total",
		Help:      "Rosters committed to the store.",
	})

	PersistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_persist_failures_total",
		Help:      "Roster snapshots that could not be written.",
	})

	FallbackLoads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_fallback_loads_total",
		Help:      "Loads that fell back to the generated default roster.",
	})

	Edits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "editor_edits_total",
		Help:      "Draft field edits by category and result.",
	}, []string{"category", "result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		Logins,
		RosterCommits,
		PersistFailures,
		FallbackLoads,
		Edits,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
