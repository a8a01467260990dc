// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package objectrange

import (
	"strconv"
	"testing"

	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rangeStr string
		wantOK   bool
		want     RangeSpec
	}{
		{
			name:     "closed range",
			rangeStr: "bytes=0-499",
			wantOK:   true,
			want:     RangeSpec{Unit: "bytes", Start: 0, End: 499, HasStart: true, HasEnd: true},
		},
		{
			name:     "open-ended range",
			rangeStr: "bytes=500-",
			wantOK:   true,
			want:     RangeSpec{Unit: "bytes", Start: 500, HasStart: true},
		},
		{
			name:     "suffix range",
			rangeStr: "bytes=-100",
			wantOK:   true,
			want:     RangeSpec{Unit: "bytes", End: 100, HasEnd: true},
		},
		{
			name:     "uppercase unit is lowercased",
			rangeStr: "Bytes=1-2",
			wantOK:   true,
			want:     RangeSpec{Unit: "bytes", Start: 1, End: 2, HasStart: true, HasEnd: true},
		},
		{
			name:     "other unit parses",
			rangeStr: "items=1-2",
			wantOK:   true,
			want:     RangeSpec{Unit: "items", Start: 1, End: 2, HasStart: true, HasEnd: true},
		},
		{
			name:     "no bounds parses",
			rangeStr: "bytes=-",
			wantOK:   true,
			want:     RangeSpec{Unit: "bytes"},
		},
		{name: "empty", rangeStr: "", wantOK: false},
		{name: "missing unit", rangeStr: "=0-1", wantOK: false},
		{name: "missing equals", rangeStr: "bytes0-1", wantOK: false},
		{name: "missing hyphen", rangeStr: "bytes=10", wantOK: false},
		{name: "two hyphens", rangeStr: "bytes=0-1-2", wantOK: false},
		{name: "multi range", rangeStr: "bytes=0-1,3-4", wantOK: false},
		{name: "negative start", rangeStr: "bytes=--1", wantOK: false},
		{name: "signed start", rangeStr: "bytes=+1-2", wantOK: false},
		{name: "whitespace", rangeStr: "bytes= 0-1", wantOK: false},
		{name: "digit in unit", rangeStr: "byte5=0-1", wantOK: false},
		{name: "overflow", rangeStr: "bytes=0-99999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseRange(tt.rangeStr)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rangeStr string
		valid    bool
	}{
		{"bytes=0-0", true},
		{"bytes=0-", true},
		{"bytes=-0", true},
		{"bytes=10-15", true},
		{"BYTES=10-15", true},
		{"bytes=5-5", true},
		{"bytes=6-5", false},
		{"bytes=-", false},
		{"bits=0-1", false},
		{"bytes=0-1-2", false},
		{"bytes=-1-2", false},
		{"bytes=0-1,5-6", false},
		{"", false},
		{"0-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.rangeStr, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, ValidateRange(tt.rangeStr))
			// Validation is idempotent.
			assert.Equal(t, tt.valid, ValidateRange(tt.rangeStr))
		})
	}
}

func TestApplyRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  string
		rangeStr string
		want     string
	}{
		{name: "open range", payload: "hello", rangeStr: "bytes=2-", want: "llo"},
		{name: "suffix range", payload: "hello", rangeStr: "bytes=-2", want: "lo"},
		{name: "closed range", payload: "hello", rangeStr: "bytes=0-3", want: "hell"},
		{name: "closed range middle", payload: "amazonwebservices", rangeStr: "bytes=10-15", want: "ervice"},
		{name: "single byte", payload: "hello", rangeStr: "bytes=4-4", want: "o"},
		{name: "end past length is clamped", payload: "hello", rangeStr: "bytes=3-100", want: "lo"},
		{name: "suffix longer than payload", payload: "hello", rangeStr: "bytes=-100", want: "hello"},
		{name: "zero suffix", payload: "hello", rangeStr: "bytes=-0", want: ""},
		{name: "open start past length", payload: "hello", rangeStr: "bytes=10-", want: ""},
		{name: "closed start past length", payload: "hello", rangeStr: "bytes=10-20", want: ""},
		{name: "open start at length", payload: "hello", rangeStr: "bytes=5-", want: ""},
		{name: "empty payload", payload: "", rangeStr: "bytes=0-10", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ApplyRange([]byte(tt.payload), tt.rangeStr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyRangeInvalid(t *testing.T) {
	t.Parallel()

	for _, rangeStr := range []string{"bytes=5-1", "bits=0-1", "bytes=0-1-2", "Bytes=a-b", ""} {
		t.Run(rangeStr, func(t *testing.T) {
			t.Parallel()
			got, err := ApplyRange([]byte("hello"), rangeStr)
			require.Error(t, err)
			assert.Nil(t, got)

			s3e, ok := s3err.AsError(err)
			require.True(t, ok)
			assert.Equal(t, "InvalidRequest", s3e.Code)
			assert.Equal(t, 400, s3e.HTTPCode)
			assert.Equal(t, "Cannot process specific range: "+rangeStr, s3e.Message)
		})
	}
}

func TestApplyRangeClosedProperty(t *testing.T) {
	t.Parallel()

	payload := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	n := len(payload)
	for start := 0; start < n; start++ {
		for end := start; end < n; end++ {
			got, err := ApplyRange(payload, "bytes="+strconv.Itoa(start)+"-"+strconv.Itoa(end))
			require.NoError(t, err)
			require.Equal(t, payload[start:end+1], got)
			require.Len(t, got, end-start+1)
		}
	}
}

func TestApplyRangeSuffixAndOpenProperty(t *testing.T) {
	t.Parallel()

	payload := []byte("abcdefghijklmnopqrstuvwxyz")
	n := len(payload)
	for k := 0; k <= n; k++ {
		got, err := ApplyRange(payload, "bytes=-"+strconv.Itoa(k))
		require.NoError(t, err)
		assert.Equal(t, payload[n-k:], got)

		got, err = ApplyRange(payload, "bytes="+strconv.Itoa(k)+"-")
		require.NoError(t, err)
		assert.Equal(t, payload[k:], got)
	}
}

func TestRangeSpecBounds(t *testing.T) {
	t.Parallel()

	spec, ok := ParseRange("bytes=100-199")
	require.True(t, ok)

	start, end := spec.Bounds(1000)
	assert.Equal(t, uint64(100), start)
	assert.Equal(t, uint64(200), end)

	start, end = spec.Bounds(150)
	assert.Equal(t, uint64(100), start)
	assert.Equal(t, uint64(150), end)

	start, end = spec.Bounds(50)
	assert.Equal(t, start, end)
}

func TestParseValidRange(t *testing.T) {
	t.Parallel()

	spec, ok := ParseValidRange("Bytes=-10")
	require.True(t, ok)
	assert.False(t, spec.HasStart)
	assert.Equal(t, uint64(10), spec.End)

	for _, s := range []string{"items=0-1", "bytes=-", "bytes=9-1", "bytes=0-1,2-3"} {
		_, ok := ParseValidRange(s)
		assert.False(t, ok, s)
		assert.Equal(t, ValidateRange(s), ok, s)
	}
}
