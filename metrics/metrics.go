package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK               = "ok"
	ResultDuplicate        = "duplicate"
	ResultInvalidReference = "invalid_reference"
	ResultError            = "error"
)

var (
	LikeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "articlelike",
		Name:      "like_requests_total",
		Help:      "Like and unlike requests by action and result.",
	}, []string{"action", "result"})

	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "articlelike",
		Name:      "side_effect_failures_total",
		Help:      "Best-effort side effects (counter cache, events) that failed.",
	}, []string{"kind"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "articlelike",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
