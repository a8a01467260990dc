// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"os/user"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJitterUp(t *testing.T) {
	t.Parallel()

	base := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		up := JitterUp(base, 0.5)
		assert.GreaterOrEqual(t, up, base)
		assert.LessOrEqual(t, up, 150*time.Millisecond)
	}
	assert.Equal(t, base, JitterUp(base, -1))
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	base := 10 * time.Millisecond
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, base},
		{1, base},
		{2, 2 * base},
		{4, 8 * base},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Backoff(base, tt.attempt, 0), "attempt %d", tt.attempt)

		d := Backoff(base, tt.attempt, 0.5)
		assert.GreaterOrEqual(t, d, tt.want)
		assert.LessOrEqual(t, d, tt.want+tt.want/2)
	}
}

func TestSyncPoolBuffer(t *testing.T) {
	t.Parallel()

	buf := SyncPoolGetBuffer()
	buf.WriteString("payload")
	SyncPoolPutBuffer(buf)
	assert.Zero(t, buf.Len())
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "relative/path", ResolvePath("relative/path"))

	usr, err := user.Current()
	if err != nil {
		t.Skip("no current user")
	}
	assert.Equal(t, usr.HomeDir, ResolvePath("~"))
	assert.Equal(t, filepath.Join(usr.HomeDir, "events"), ResolvePath("~/events"))
}
