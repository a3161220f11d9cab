package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	OrdersCreated    *prometheus.CounterVec
	Captures         *prometheus.CounterVec
	EmailTransitions *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "orders_created_total",
			Help:      "Orders created, by payment method.",
		}, []string{"method"}),
		Captures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "order_captures_total",
			Help:      "Capture attempts, by result.",
		}, []string{"result"}),
		EmailTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lifecycle",
			Name:      "email_transitions_total",
			Help:      "Email verification transitions, by transition and result.",
		}, []string{"transition", "result"}),
	}
	reg.MustRegister(m.OrdersCreated, m.Captures, m.EmailTransitions)
	return m
}

// Nop returns collectors that are not registered anywhere.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}
