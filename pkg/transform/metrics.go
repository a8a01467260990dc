// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opCompress   = "compress"
	opDecompress = "decompress"
)

var (
	factory = promauto.With(debug.Registry())

	// CodecRatio tracks compression ratios (original_size / compressed_size)
	CodecRatio = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zaplambda",
			Subsystem: "transform",
			Name:      "compression_ratio",
			Help:      "Compression ratio (original_size / compressed_size)",
			Buckets:   []float64{1.0, 1.25, 1.5, 2.0, 3.0, 4.0, 5.0, 10.0},
		},
		[]string{"codec", "operation"},
	)

	// CodecDuration tracks time spent compressing/decompressing
	CodecDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zaplambda",
			Subsystem: "transform",
			Name:      "codec_duration_seconds",
			Help:      "Time spent compressing/decompressing objects",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"codec", "operation"},
	)

	// CodecBytesIn tracks bytes handed to a codec
	CodecBytesIn = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zaplambda",
			Subsystem: "transform",
			Name:      "codec_bytes_in_total",
			Help:      "Total bytes handed to a codec",
		},
		[]string{"codec", "operation"},
	)

	// CodecBytesOut tracks bytes produced by a codec
	CodecBytesOut = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zaplambda",
			Subsystem: "transform",
			Name:      "codec_bytes_out_total",
			Help:      "Total bytes produced by a codec",
		},
		[]string{"codec", "operation"},
	)
)

func recordCodec(c Codec, op string, inSize, outSize int, elapsed time.Duration) {
	labels := []string{c.String(), op}
	CodecBytesIn.WithLabelValues(labels...).Add(float64(inSize))
	CodecBytesOut.WithLabelValues(labels...).Add(float64(outSize))
	CodecDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())

	if op == opCompress {
		CodecRatio.WithLabelValues(labels...).Observe(Ratio(inSize, outSize))
	} else {
		CodecRatio.WithLabelValues(labels...).Observe(Ratio(outSize, inSize))
	}
}
