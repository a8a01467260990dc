// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package objectrange selects the part of a transformed object a caller
// asked for, either through an HTTP Range value or a partNumber.
//
// Supported range forms:
//
//	<unit>=<start>-
//	<unit>=<start>-<end>
//	<unit>=-<suffix-length>
//
// S3 does not support multiple ranges per GetObject, so a value with more
// than one range fails to parse. Only the bytes unit is accepted.
package objectrange

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3err"
)

// UnitBytes is the only range unit S3 reports.
const UnitBytes = "bytes"

// RangeSpec is a parsed single range. At least one of HasStart and HasEnd
// is set for a valid spec. When only End is present it is a suffix length.
type RangeSpec struct {
	Unit     string
	Start    uint64
	End      uint64
	HasStart bool
	HasEnd   bool
}

// ParseRange parses <unit>=<start>?-<end>? where unit is one or more ASCII
// letters and start/end are decimal digit runs. The value is lowercased
// before matching. It reports false for any other shape.
func ParseRange(rangeStr string) (RangeSpec, bool) {
	s := strings.ToLower(rangeStr)

	unit, bounds, ok := strings.Cut(s, "=")
	if !ok || unit == "" || !isLetters(unit) {
		return RangeSpec{}, false
	}

	startStr, endStr, ok := strings.Cut(bounds, "-")
	if !ok || strings.Contains(endStr, "-") {
		return RangeSpec{}, false
	}

	spec := RangeSpec{Unit: unit}
	if startStr != "" {
		start, ok := parseDigits(startStr)
		if !ok {
			return RangeSpec{}, false
		}
		spec.Start, spec.HasStart = start, true
	}
	if endStr != "" {
		end, ok := parseDigits(endStr)
		if !ok {
			return RangeSpec{}, false
		}
		spec.End, spec.HasEnd = end, true
	}
	return spec, true
}

// ValidateRange reports whether rangeStr is a single, satisfiable-shaped
// bytes range.
func ValidateRange(rangeStr string) bool {
	_, ok := ParseValidRange(rangeStr)
	return ok
}

// ParseValidRange parses rangeStr and reports whether it is a single
// bytes range ValidateRange would accept.
func ParseValidRange(rangeStr string) (RangeSpec, bool) {
	spec, ok := ParseRange(rangeStr)
	if !ok {
		return RangeSpec{}, false
	}
	if spec.Unit != UnitBytes {
		return RangeSpec{}, false
	}
	if !spec.HasStart && !spec.HasEnd {
		return RangeSpec{}, false
	}
	if spec.HasStart && spec.HasEnd && spec.Start > spec.End {
		return RangeSpec{}, false
	}
	return spec, true
}

// Bounds returns the half-open [start, end) window the spec selects from
// an object of the given length. Positions past the end are clamped, so a
// start beyond the object yields an empty window rather than an error.
func (r RangeSpec) Bounds(length uint64) (start, end uint64) {
	switch {
	case !r.HasStart:
		if r.End >= length {
			return 0, length
		}
		return length - r.End, length
	case !r.HasEnd:
		start = r.Start
	default:
		start = r.Start
		end = length
		if r.End < length {
			end = r.End + 1
		}
		if start > end {
			start = end
		}
		return start, end
	}
	if start > length {
		start = length
	}
	return start, length
}

// ApplyRange returns the bytes of payload selected by rangeStr. An invalid
// range fails with an InvalidRequest error echoing rangeStr verbatim.
func ApplyRange(payload []byte, rangeStr string) ([]byte, error) {
	spec, ok := ParseValidRange(rangeStr)
	if !ok {
		return nil, InvalidRangeError(rangeStr)
	}
	start, end := spec.Bounds(uint64(len(payload)))
	return payload[start:end], nil
}

// InvalidRangeError is the caller-facing error for an unusable range.
func InvalidRangeError(rangeStr string) error {
	return s3err.ErrInvalidRequest.ToErrorResponseWithMessage("",
		fmt.Sprintf("Cannot process specific range: %s", rangeStr))
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func parseDigits(s string) (uint64, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
