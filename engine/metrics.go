package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var processDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "warden_content_process_duration_sec",
	Help: "Total duration of content item processing",
})

var contentProcessedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_content_processed",
	Help: "Number of content items processed to a terminal record",
}, []string{"category"})

var contentErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_content_errors",
	Help: "Number of content items which failed processing",
}, []string{"stage"})

var decisionCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_decisions",
	Help: "Number of moderation decisions recorded",
}, []string{"decision"})

var gateWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "warden_gate_wait_duration_sec",
	Help:    "Time spent waiting on human confirmation",
	Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
})
