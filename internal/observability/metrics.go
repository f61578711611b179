package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sgf_read_seconds",
		Help:    "Time spent tokenizing, parsing and validating an SGF document.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	ReadResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgf_read_results_total",
		Help: "SGF documents read, by outcome (ok or the error kind).",
	}, []string{"result"})

	InterpretDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sgf_interpret_seconds",
		Help:    "Time spent replaying a game tree.",
		Buckets: prometheus.DefBuckets,
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgf_goban_cache_lookups_total",
		Help: "Goban cache lookups, by outcome.",
	}, []string{"outcome"})

	ImportedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sgf_imported_records_total",
		Help: "Total number of records imported from disk.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sgf_watcher_events_total",
		Help: "Total number of file system events received by the import watcher.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sgf_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sgf_http_rate_limited_total",
		Help: "HTTP requests rejected by the rate limiter.",
	})
)
