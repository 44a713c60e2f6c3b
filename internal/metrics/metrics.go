// Package metrics defines prometheus collectors for auth operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters incremented by the auth service.
type Metrics struct {
	Registrations  prometheus.Counter
	Logins         *prometheus.CounterVec
	SessionLookups *prometheus.CounterVec
	PasswordResets prometheus.Counter
}

// New creates the auth metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Number of successful user registrations.",
		}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Number of login attempts by result.",
		}, []string{"result"}),
		SessionLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_session_lookups_total",
			Help: "Number of session lookups by result.",
		}, []string{"result"}),
		PasswordResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_password_resets_total",
			Help: "Number of completed password resets.",
		}),
	}
	reg.MustRegister(m.Registrations, m.Logins, m.SessionLookups, m.PasswordResets)
	return m
}
