// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"strconv"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opGetObject     = "get_object"
	opHeadObject    = "head_object"
	opListObjects   = "list_objects"
	opListObjectsV2 = "list_objects_v2"
)

var (
	factory = promauto.With(debug.Registry())

	// RequestsTotal counts handled events by operation and returned status.
	RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zaplambda",
			Subsystem: "pipeline",
			Name:      "requests_total",
			Help:      "Total Object Lambda events handled",
		},
		[]string{"operation", "status"},
	)

	// RequestDuration tracks end-to-end handling latency.
	RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zaplambda",
			Subsystem: "pipeline",
			Name:      "request_duration_seconds",
			Help:      "Time from event receipt to response",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	// BytesWritten counts body bytes returned through write-backs.
	BytesWritten = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zaplambda",
			Subsystem: "pipeline",
			Name:      "bytes_written_total",
			Help:      "Total transformed bytes sent with WriteGetObjectResponse",
		},
	)

	// WriteBackFailures counts WriteGetObjectResponse calls that failed.
	WriteBackFailures = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zaplambda",
			Subsystem: "pipeline",
			Name:      "write_back_failures_total",
			Help:      "WriteGetObjectResponse calls that returned an error",
		},
	)
)

func observe(op string, status int, start time.Time) {
	RequestsTotal.WithLabelValues(op, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
