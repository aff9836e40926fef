package gate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsOpened = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_gate_requests_opened",
	Help: "Number of confirmation requests opened",
})

var responsesMatched = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_gate_responses_matched",
	Help: "Number of operator responses matched to a pending request",
})

var responsesHeld = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_gate_responses_held",
	Help: "Number of operator responses buffered with no matching request",
})

var responsesStale = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_gate_responses_stale",
	Help: "Number of operator responses discarded as stale",
})

var requestsTimedOut = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_gate_requests_timeout",
	Help: "Number of confirmation requests which expired before an answer",
})

var heldSize = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "warden_gate_held_responses",
	Help: "Current size of the unmatched-response holding area",
})
