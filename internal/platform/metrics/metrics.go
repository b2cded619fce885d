// Package metrics exposes credential derivation and resolution counters.
package metrics

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "icauth"

// Registry owns a private prometheus registry so that tests and the CLI
// never share process-global collectors.
type Registry struct {
	reg         *prometheus.Registry
	derivations *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	agents      *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_derivations_total",
			Help:      "Identity derivations by scheme, credential source and outcome.",
		}, []string{"scheme", "source", "outcome"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credential_resolutions_total",
			Help:      "Credential resolutions by source and outcome.",
		}, []string{"source", "outcome"}),
		agents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agents_built_total",
			Help:      "Agents handed out by the factory, by identity scheme.",
		}, []string{"scheme"}),
	}
	r.reg.MustRegister(r.derivations, r.resolutions, r.agents)
	return r
}

func (r *Registry) ObserveDerivation(scheme, source string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	r.derivations.WithLabelValues(label(scheme), label(source), outcome).Inc()
}

func (r *Registry) ObserveResolution(source, outcome string) {
	r.resolutions.WithLabelValues(label(source), label(outcome)).Inc()
}

func (r *Registry) ObserveAgent(scheme string) {
	r.agents.WithLabelValues(label(scheme)).Inc()
}

// Gatherer exposes the underlying registry for promhttp or testutil.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile dumps all metrics in the node_exporter textfile format.
func (r *Registry) WriteTextfile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("metrics textfile path is empty")
	}
	return prometheus.WriteToTextfile(path, r.reg)
}

func label(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "none"
	}
	return v
}
