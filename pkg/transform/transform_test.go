// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "identity", "UPPER", " lower ", "lz4", "unzstd", "s2"} {
		tr, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, tr, name)
	}

	_, err := Lookup("gzip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identity")
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"identity", "lower", "lz4", "s2", "unlz4", "uns2", "unzstd", "upper", "zstd",
	}, Names())
}

func TestTextTransforms(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	up, err := Lookup("upper")
	require.NoError(t, err)
	got, err := up.Transform(ctx, []byte("Hello, World"))
	require.NoError(t, err)
	assert.Equal(t, "HELLO, WORLD", string(got))

	low, err := Lookup("lower")
	require.NoError(t, err)
	got, err = low.Transform(ctx, []byte("Hello, World"))
	require.NoError(t, err)
	assert.Equal(t, "hello, world", string(got))

	got, err = Identity.Transform(ctx, []byte("Hello"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(got))
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	random := make([]byte, 64*1024)
	_, err := rand.Read(random)
	require.NoError(t, err)

	inputs := map[string][]byte{
		"empty":        {},
		"small":        []byte("hello"),
		"compressible": bytes.Repeat([]byte("helloworld"), 10240),
		"random":       random,
	}

	for _, c := range []Codec{LZ4, ZSTD, S2} {
		for name, data := range inputs {
			t.Run(c.String()+"/"+name, func(t *testing.T) {
				t.Parallel()
				ctx := context.Background()
				compressed, err := Compressor(c).Transform(ctx, data)
				require.NoError(t, err)

				out, err := Decompressor(c).Transform(ctx, compressed)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(out))
				assert.True(t, bytes.Equal(data, out))
			})
		}
	}
}

func TestCompressShrinksRepetitiveData(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("helloworld"), 10240)
	for _, c := range []Codec{LZ4, ZSTD, S2} {
		out, err := Compress(c, data)
		require.NoError(t, err)
		assert.Less(t, len(out), len(data), c.String())
		assert.Greater(t, Ratio(len(data), len(out)), 1.0)
	}
}

func TestDecompressGarbage(t *testing.T) {
	t.Parallel()

	for _, c := range []Codec{LZ4, ZSTD, S2} {
		_, err := Decompress(c, []byte("definitely not compressed"))
		assert.Error(t, err, c.String())
	}
	_, err := Compress(Codec("brotli"), nil)
	assert.Error(t, err)
	assert.False(t, Codec("brotli").IsValid())
	assert.True(t, ZSTD.IsValid())
}

func TestDecompressSizeLimit(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte{0}, 1<<20)
	for _, c := range []Codec{LZ4, ZSTD, S2} {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			compressed, err := Compress(c, data)
			require.NoError(t, err)
			require.Less(t, len(compressed), 64*1024)

			_, err = decompress(c, compressed, 4096)
			require.ErrorIs(t, err, ErrDecodedTooLarge)

			out, err := decompress(c, compressed, len(data))
			require.NoError(t, err)
			assert.Len(t, out, len(data))
		})
	}
}

func TestParseChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	compressed, err := Compress(ZSTD, []byte("chained transform"))
	require.NoError(t, err)

	tr, err := Parse("unzstd,upper")
	require.NoError(t, err)
	out, err := tr.Transform(ctx, compressed)
	require.NoError(t, err)
	assert.Equal(t, "CHAINED TRANSFORM", string(out))

	_, err = Parse("upper,nope")
	assert.Error(t, err)
}

func TestChainStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	called := false
	tr := Chain(
		Func(func(context.Context, []byte) ([]byte, error) { return nil, boom }),
		Func(func(_ context.Context, b []byte) ([]byte, error) { called = true; return b, nil }),
	)
	_, err := tr.Transform(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, Ratio(10, 0))
	assert.Equal(t, 1.0, Ratio(10, 20))
	assert.Equal(t, 2.0, Ratio(10, 5))
}
