package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// Metrics counts workflow outcomes by result. Each instance owns its
// registry so several servers can live in one process.
type Metrics struct {
	registry    *prometheus.Registry
	votes       *prometheus.CounterVec
	suggestions *prometheus.CounterVec
	boardLoads  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pollboard_votes_total",
			Help: "Vote submissions by result.",
		}, []string{"result"}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pollboard_suggestions_total",
			Help: "Suggestion submissions by result.",
		}, []string{"result"}),
		boardLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pollboard_board_loads_total",
			Help: "Poll list loads by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.votes, m.suggestions, m.boardLoads)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
