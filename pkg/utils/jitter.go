// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"math/rand/v2"
	"time"
)

// JitterUp adds random jitter that only increases the duration.
//
// Example: JitterUp(time.Minute, 0.25) returns 60s-75s (+0-25%)
func JitterUp(base time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return base
	}
	jitter := rand.Float64() * float64(base) * fraction
	return base + time.Duration(jitter)
}

// Backoff returns the delay before retry number attempt (starting at 1):
// base doubled per earlier retry, plus up to fraction of upward jitter.
func Backoff(base time.Duration, attempt int, fraction float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return JitterUp(base<<uint(min(attempt-1, 16)), fraction)
}
