// Package metrics exposes prometheus counters for the reset and OTP flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "mindjournal"

// Metrics groups the collectors; each instance owns its registry so tests do
// not collide on the global default registerer.
type Metrics struct {
	Registry *prometheus.Registry

	ResetRequests   *prometheus.CounterVec // result
	ResetRedeemed   prometheus.Counter
	TokenRejections *prometheus.CounterVec // reason
	OTPSent         *prometheus.CounterVec // result
	OTPVerified     *prometheus.CounterVec // result
	SweepRemoved    *prometheus.CounterVec // store
	HTTPRequests    *prometheus.CounterVec // method, route, status
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ResetRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_reset_requests_total",
			Help:      "Password reset requests by outcome.",
		}, []string{"result"}),
		ResetRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_reset_redeemed_total",
			Help:      "Reset tokens successfully redeemed.",
		}),
		TokenRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reset_token_rejections_total",
			Help:      "Reset token checks that failed, by reason.",
		}, []string{"reason"}),
		OTPSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_sent_total",
			Help:      "OTP send attempts by outcome.",
		}, []string{"result"}),
		OTPVerified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "OTP verification attempts by outcome.",
		}, []string{"result"}),
		SweepRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_removed_total",
			Help:      "Expired records removed by the sweeper.",
		}, []string{"store"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ResetRequests,
		m.ResetRedeemed,
		m.TokenRejections,
		m.OTPSent,
		m.OTPVerified,
		m.SweepRemoved,
		m.HTTPRequests,
	)
	return m
}
