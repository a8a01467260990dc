// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package transform holds the content transformations applied to objects
// before they are returned through the Object Lambda access point.
//
// A Transformer sees the whole object at once; the pipeline selects any
// Range or part from its output, never from the original.
package transform

import (
	"context"
)

// Transformer rewrites a fully materialized object.
type Transformer interface {
	Transform(ctx context.Context, data []byte) ([]byte, error)
}

// Func adapts an ordinary function to a Transformer.
type Func func(ctx context.Context, data []byte) ([]byte, error)

func (f Func) Transform(ctx context.Context, data []byte) ([]byte, error) {
	return f(ctx, data)
}

// Identity returns its input unchanged.
var Identity Transformer = Func(func(_ context.Context, data []byte) ([]byte, error) {
	return data, nil
})

// Chain applies transformers in order, feeding each the previous output.
func Chain(ts ...Transformer) Transformer {
	if len(ts) == 1 {
		return ts[0]
	}
	return Func(func(ctx context.Context, data []byte) ([]byte, error) {
		var err error
		for _, t := range ts {
			if data, err = t.Transform(ctx, data); err != nil {
				return nil, err
			}
		}
		return data, nil
	})
}
