// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"

	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3types"
)

// ListTransformer rewrites the entries of a ListObjects or ListObjectsV2
// result. The rest of the document is passed through.
type ListTransformer interface {
	TransformEntries(ctx context.Context, entries []s3types.ListObjectEntry) ([]s3types.ListObjectEntry, error)
}

// ListFunc adapts an ordinary function to a ListTransformer.
type ListFunc func(ctx context.Context, entries []s3types.ListObjectEntry) ([]s3types.ListObjectEntry, error)

func (f ListFunc) TransformEntries(ctx context.Context, entries []s3types.ListObjectEntry) ([]s3types.ListObjectEntry, error) {
	return f(ctx, entries)
}

// IdentityList leaves list results untouched.
var IdentityList ListTransformer = ListFunc(func(_ context.Context, entries []s3types.ListObjectEntry) ([]s3types.ListObjectEntry, error) {
	return entries, nil
})
