package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveSessions    = promauto.NewGauge(prometheus.GaugeOpts{Name: "wsbridge_active_sessions", Help: "Currently forwarding sessions"})
	SessionsTotal     = promauto.NewCounter(prometheus.CounterOpts{Name: "wsbridge_sessions_total", Help: "Sessions established (TCP connect succeeded)"})
	ConnectFailures   = promauto.NewCounter(prometheus.CounterOpts{Name: "wsbridge_connect_failures_total", Help: "TCP connects to the target port that failed"})
	BytesForwarded    = promauto.NewCounterVec(prometheus.CounterOpts{Name: "wsbridge_bytes_forwarded_total", Help: "Bytes forwarded by direction"}, []string{"direction"})
	MessagesForwarded = promauto.NewCounterVec(prometheus.CounterOpts{Name: "wsbridge_messages_forwarded_total", Help: "Messages/chunks forwarded by direction"}, []string{"direction"})
	RateLimitedTotal  = promauto.NewCounter(prometheus.CounterOpts{Name: "wsbridge_rate_limited_total", Help: "Connections rejected by rate limiting"})
	ErrorsTotal       = promauto.NewCounterVec(prometheus.CounterOpts{Name: "wsbridge_errors_total", Help: "Errors by type"}, []string{"type"})
	SessionDuration   = promauto.NewHistogram(prometheus.HistogramOpts{Name: "wsbridge_session_duration_seconds", Help: "Session lifetime seconds", Buckets: prometheus.ExponentialBuckets(0.01, 2, 16)})
)
