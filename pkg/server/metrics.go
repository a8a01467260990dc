// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"github.com/LeeDigitalWorks/zaplambda/pkg/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	factory = promauto.With(debug.Registry())

	InvocationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zaplambda",
			Subsystem: "server",
			Name:      "invocations_total",
			Help:      "HTTP invocations by response code",
		},
		[]string{"code"},
	)

	InvocationDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "zaplambda",
			Subsystem: "server",
			Name:      "invocation_duration_seconds",
			Help:      "HTTP invocation latency",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
