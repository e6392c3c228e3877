// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keychain.
//
// go-keychain is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides an optional Prometheus instrumentation
// collector for the four terminal operations (Encrypt, Decrypt, Sign,
// Verify). Unlike the teacher's package-level promauto globals, a
// Collector is an explicit value wired in through a constructor option,
// so two Encrypters in the same process can use independent registries
// and no operation is instrumented unless its caller opts in.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the Prometheus namespace for every metric this package registers.
const Namespace = "jose"

// Operation names used as the "operation" label value.
const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
	OpSign    = "sign"
	OpVerify  = "verify"
)

// Status values used as the "status" label value.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Collector holds the counters and histograms for one registry. The zero
// value is not usable; construct with New.
type Collector struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	failuresTotal     *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg. Passing
// prometheus.NewRegistry() isolates the collector for tests; passing
// prometheus.DefaultRegisterer wires it into the process-wide endpoint a
// host application already exposes.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of encrypt/decrypt/sign/verify calls by operation and status",
			},
			[]string{"operation", "status"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of encrypt/decrypt/sign/verify calls in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "failures_total",
				Help:      "Total number of failures by operation and failure category",
			},
			[]string{"operation", "category"},
		),
	}
	for _, collector := range []prometheus.Collector{c.operationsTotal, c.operationDuration, c.failuresTotal} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe records the outcome and duration of one terminal operation call.
func (c *Collector) Observe(operation string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	c.operationsTotal.WithLabelValues(operation, status).Inc()
	c.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFailure records a failure with a specific category (e.g.
// "invalid", "not_supported", "verification_failed"), matching the three
// error kinds the protocol core distinguishes.
func (c *Collector) RecordFailure(operation, category string) {
	if c == nil {
		return
	}
	c.failuresTotal.WithLabelValues(operation, category).Inc()
}
