// Package metrics collects Prometheus counters for the auth flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuthMetrics is the interface the services record against.
type AuthMetrics interface {
	RecordLogin(provider string)
	RecordTokenPairIssued()
	RecordRotation()
	RecordRotationDenied(reason string)
	RecordTokensRevoked(count int64)
}

// Collector is the Prometheus-backed implementation.
type Collector struct {
	logins         *prometheus.CounterVec
	pairsIssued    prometheus.Counter
	rotations      prometheus.Counter
	rotationDenied *prometheus.CounterVec
	tokensRevoked  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkstash_logins_total",
			Help: "Completed logins by provider.",
		}, []string{"provider"}),
		pairsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkstash_token_pairs_issued_total",
			Help: "Access/refresh token pairs issued.",
		}),
		rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkstash_refresh_rotations_total",
			Help: "Successful refresh token rotations.",
		}),
		rotationDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkstash_refresh_rotations_denied_total",
			Help: "Denied refresh rotations by reason.",
		}, []string{"reason"}),
		tokensRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linkstash_refresh_tokens_revoked_total",
			Help: "Refresh tokens revoked via revoke-all.",
		}),
	}

	reg.MustRegister(
		c.logins,
		c.pairsIssued,
		c.rotations,
		c.rotationDenied,
		c.tokensRevoked,
	)

	return c
}

func (c *Collector) RecordLogin(provider string) {
	c.logins.WithLabelValues(provider).Inc()
}

func (c *Collector) RecordTokenPairIssued() {
	c.pairsIssued.Inc()
}

func (c *Collector) RecordRotation() {
	c.rotations.Inc()
}

func (c *Collector) RecordRotationDenied(reason string) {
	c.rotationDenied.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordTokensRevoked(count int64) {
	c.tokensRevoked.Add(float64(count))
}
