// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline turns S3 Object Lambda events into responses: it
// validates the caller's selection, fetches the original object through
// the presigned URL, transforms it, selects the requested bytes and hands
// the result to the write-back.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/LeeDigitalWorks/zaplambda/pkg/fetch"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3types"
	"github.com/LeeDigitalWorks/zaplambda/pkg/transform"
	"github.com/LeeDigitalWorks/zaplambda/pkg/writeback"
)

const (
	msgFetchFailed     = "Error occurred while getting the object."
	msgTransformFailed = "Error transforming the object."
	msgNoSuchKey       = "Requested key does not exist"
	msgListEncode      = "The Lambda function failed to transform the result to XML"
)

// Config is everything a Handler needs. Transformer and ListTransformer
// default to the identity transforms.
type Config struct {
	Fetcher         fetch.Fetcher
	Writer          writeback.Writer
	Transformer     transform.Transformer
	ListTransformer transform.ListTransformer

	// ChecksumAlgorithm names the digest reported in the
	// body-checksum-* metadata. Zero selects md5.
	ChecksumAlgorithm s3types.ChecksumAlgorithm

	// ForwardSignedHeaders also forwards headers listed in the presigned
	// URL's X-Amz-SignedHeaders.
	ForwardSignedHeaders bool
}

// Handler serves GetObject, HeadObject and ListObjects events. It holds no
// per-request state and is safe for concurrent use.
type Handler struct {
	fetcher         fetch.Fetcher
	writer          writeback.Writer
	transformer     transform.Transformer
	listTransformer transform.ListTransformer
	checksumAlg     s3types.ChecksumAlgorithm
	forwardSigned   bool
}

// New validates cfg and builds a Handler.
func New(cfg Config) (*Handler, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("pipeline: fetcher is required")
	}
	if cfg.Writer == nil {
		return nil, errors.New("pipeline: writer is required")
	}
	if cfg.Transformer == nil {
		cfg.Transformer = transform.Identity
	}
	if cfg.ListTransformer == nil {
		cfg.ListTransformer = transform.IdentityList
	}
	if cfg.ChecksumAlgorithm != s3types.ChecksumAlgorithmNone && !cfg.ChecksumAlgorithm.IsValid() {
		return nil, fmt.Errorf("pipeline: invalid checksum algorithm %d", cfg.ChecksumAlgorithm)
	}

	return &Handler{
		fetcher:         cfg.Fetcher,
		writer:          cfg.Writer,
		transformer:     cfg.Transformer,
		listTransformer: cfg.ListTransformer,
		checksumAlg:     cfg.ChecksumAlgorithm,
		forwardSigned:   cfg.ForwardSignedHeaders,
	}, nil
}

func (h *Handler) transform(ctx context.Context, data []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("transform panicked: %v", r)
		}
	}()
	return h.transformer.Transform(ctx, data)
}
