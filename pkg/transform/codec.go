// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names a compression format usable as a transform.
type Codec string

const (
	LZ4  Codec = "lz4"
	ZSTD Codec = "zstd"
	S2   Codec = "s2"
)

// MaxDecodedSize bounds the size of a decompressed object. Stored objects
// are untrusted, and a small frame can claim an arbitrarily large output.
const MaxDecodedSize = 1 << 30

// ErrDecodedTooLarge is returned when an object decompresses past the
// decoded size limit.
var ErrDecodedTooLarge = errors.New("decompressed object exceeds size limit")

// codecFuncs pairs the encoder and decoder of one format. decode must stop
// once the output would exceed limit bytes.
type codecFuncs struct {
	encode func(data []byte) ([]byte, error)
	decode func(data []byte, limit int) ([]byte, error)
}

var codecs = map[Codec]codecFuncs{
	LZ4:  {encode: encodeLZ4, decode: decodeLZ4},
	ZSTD: {encode: encodeZSTD, decode: decodeZSTD},
	S2:   {encode: encodeS2, decode: decodeS2},
}

// IsValid returns true if the codec is recognized
func (c Codec) IsValid() bool {
	_, ok := codecs[c]
	return ok
}

func (c Codec) String() string {
	return string(c)
}

// Compress encodes data with codec c. An empty object stays empty.
func Compress(c Codec, data []byte) ([]byte, error) {
	fns, ok := codecs[c]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", c)
	}
	if len(data) == 0 {
		return data, nil
	}
	return fns.encode(data)
}

// Decompress decodes data that was encoded with codec c. Output larger
// than MaxDecodedSize fails with ErrDecodedTooLarge.
func Decompress(c Codec, data []byte) ([]byte, error) {
	return decompress(c, data, MaxDecodedSize)
}

func decompress(c Codec, data []byte, limit int) ([]byte, error) {
	fns, ok := codecs[c]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", c)
	}
	if len(data) == 0 {
		return data, nil
	}
	out, err := fns.decode(data, limit)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", c, err)
	}
	return out, nil
}

// Compressor returns a Transformer that compresses objects with c.
func Compressor(c Codec) Transformer {
	return Func(func(_ context.Context, data []byte) ([]byte, error) {
		start := time.Now()
		out, err := Compress(c, data)
		if err != nil {
			return nil, err
		}
		recordCodec(c, opCompress, len(data), len(out), time.Since(start))
		return out, nil
	})
}

// Decompressor returns a Transformer that decompresses objects stored
// compressed with c.
func Decompressor(c Codec) Transformer {
	return Func(func(_ context.Context, data []byte) ([]byte, error) {
		start := time.Now()
		out, err := Decompress(c, data)
		if err != nil {
			return nil, err
		}
		recordCodec(c, opDecompress, len(data), len(out), time.Since(start))
		return out, nil
	})
}

// Ratio calculates the compression ratio (original / compressed).
// Returns 1.0 if compressed size is zero or larger than original.
func Ratio(originalSize, compressedSize int) float64 {
	if compressedSize <= 0 || compressedSize >= originalSize {
		return 1.0
	}
	return float64(originalSize) / float64(compressedSize)
}

// readLimited drains r, failing once more than limit bytes come out.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, ErrDecodedTooLarge
	}
	return out, nil
}

// lz4 frames go through pooled streaming writers and readers.
var (
	lz4Writers = sync.Pool{New: func() any { return lz4.NewWriter(nil) }}
	lz4Readers = sync.Pool{New: func() any { return lz4.NewReader(nil) }}
)

func encodeLZ4(data []byte) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, lz4.CompressBlockBound(len(data))))

	w := lz4Writers.Get().(*lz4.Writer)
	w.Reset(buf)
	defer func() {
		w.Reset(nil)
		lz4Writers.Put(w)
	}()

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeLZ4(data []byte, limit int) ([]byte, error) {
	r := lz4Readers.Get().(*lz4.Reader)
	r.Reset(bytes.NewReader(data))
	defer func() {
		r.Reset(nil)
		lz4Readers.Put(r)
	}()

	return readLimited(r, limit)
}

// zstd coders are single-threaded so concurrent invocations do not fan
// out goroutines. Decoders never allocate past MaxDecodedSize.
var (
	zstdEncoders = sync.Pool{New: func() any {
		enc, _ := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		return enc
	}}
	zstdDecoders = sync.Pool{New: func() any {
		dec, _ := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(MaxDecodedSize),
		)
		return dec
	}}
)

func encodeZSTD(data []byte) ([]byte, error) {
	enc := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func decodeZSTD(data []byte, limit int) ([]byte, error) {
	var h zstd.Header
	if err := h.Decode(data); err == nil && h.HasFCS && h.FrameContentSize > uint64(limit) {
		return nil, ErrDecodedTooLarge
	}

	dec := zstdDecoders.Get().(*zstd.Decoder)
	defer zstdDecoders.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, ErrDecodedTooLarge
	}
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, ErrDecodedTooLarge
	}
	return out, nil
}

func encodeS2(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

// decodeS2 checks the length prefix before allocating the output.
func decodeS2(data []byte, limit int) ([]byte, error) {
	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, ErrDecodedTooLarge
	}
	return s2.Decode(nil, data)
}
