// Copyright 2015 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics implements sched.MetricsSink against Prometheus
// collectors, so a running kernel's scheduling behavior (ready queue depth,
// tick and context-switch rates, donation chain depth) can be scraped the
// same way any other Go service's metrics would be.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sink is a sched.MetricsSink backed by Prometheus collectors.
type Sink struct {
	readyThreads        prometheus.Gauge
	ticks               prometheus.Counter
	contextSwitches     prometheus.Counter
	donationChainDepth  prometheus.Histogram
}

// NewSink constructs a Sink and registers its collectors with reg. Pass
// prometheus.NewRegistry() for an isolated registry, or
// prometheus.DefaultRegisterer to publish alongside everything else in the
// process.
func NewSink(reg prometheus.Registerer) *Sink {
	s := &Sink{
		readyThreads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kos",
			Subsystem: "sched",
			Name:      "ready_threads",
			Help:      "Number of threads currently on the ready list.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kos",
			Subsystem: "sched",
			Name:      "ticks_total",
			Help:      "Number of timer ticks processed.",
		}),
		contextSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kos",
			Subsystem: "sched",
			Name:      "context_switches_total",
			Help:      "Number of thread context switches performed.",
		}),
		donationChainDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kos",
			Subsystem: "sched",
			Name:      "donation_chain_depth",
			Help:      "Length of the priority donation chain walked on lock acquire.",
			Buckets:   prometheus.LinearBuckets(0, 1, 9),
		}),
	}
	reg.MustRegister(s.readyThreads, s.ticks, s.contextSwitches, s.donationChainDepth)
	return s
}

// SetReadyThreads implements sched.MetricsSink.
func (s *Sink) SetReadyThreads(n int) { s.readyThreads.Set(float64(n)) }

// IncTicks implements sched.MetricsSink.
func (s *Sink) IncTicks() { s.ticks.Inc() }

// IncContextSwitches implements sched.MetricsSink.
func (s *Sink) IncContextSwitches() { s.contextSwitches.Inc() }

// ObserveDonationChainDepth implements sched.MetricsSink.
func (s *Sink) ObserveDonationChainDepth(depth int) { s.donationChainDepth.Observe(float64(depth)) }

// Handler returns an http.Handler serving reg's metrics in the Prometheus
// exposition format, for wiring into a "serve-metrics" style subcommand.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
