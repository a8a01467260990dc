// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/fetch"
	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/pipeline"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3types"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3client"
	"github.com/LeeDigitalWorks/zaplambda/pkg/transform"
	"github.com/LeeDigitalWorks/zaplambda/pkg/writeback"

	"github.com/spf13/cobra"
)

// PipelineOpts holds the settings shared by every command that handles events.
type PipelineOpts struct {
	// Write-back client
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
	CRC64NVME       bool

	// Processing
	ChecksumAlgorithm    string
	Transform            string
	ForwardSignedHeaders bool

	// Presigned fetch
	FetchTimeout time.Duration
	MaxIdleConns int

	DryRun bool
}

func addPipelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.String("region", "", "AWS region for WriteGetObjectResponse (defaults to the SDK's resolution)")
	f.String("endpoint", "", "Override the S3 endpoint, e.g. for a local stack")
	f.String("access_key_id", "", "Static access key; the default credential chain is used when empty")
	f.String("secret_access_key", "", "Static secret key")
	f.Bool("path_style", false, "Use path-style S3 addressing")
	f.Bool("crc64nvme_checksum", false, "Send ChecksumCRC64NVME with successful write-backs")

	f.String("checksum_algorithm", "md5", "Digest reported in body-checksum metadata (md5, sha256)")
	f.String("transform", transform.NameIdentity, fmt.Sprintf("Comma separated transform chain %v", transform.Names()))
	f.Bool("forward_signed_headers", false, "Also forward headers named in the presigned URL's X-Amz-SignedHeaders")

	f.Duration("fetch_timeout", 60*time.Second, "Timeout for the presigned fetch")
	f.Int("max_idle_conns", 100, "Idle connections kept by the fetch and S3 clients")

	f.Bool("dry_run", false, "Log write-backs instead of calling S3")
}

func loadPipelineOpts(cmd *cobra.Command) PipelineOpts {
	fl := NewFlagLoader(cmd)
	return PipelineOpts{
		Region:               fl.String("region"),
		Endpoint:             fl.String("endpoint"),
		AccessKeyID:          fl.String("access_key_id"),
		SecretAccessKey:      fl.String("secret_access_key"),
		PathStyle:            fl.Bool("path_style"),
		CRC64NVME:            fl.Bool("crc64nvme_checksum"),
		ChecksumAlgorithm:    fl.String("checksum_algorithm"),
		Transform:            fl.String("transform"),
		ForwardSignedHeaders: fl.Bool("forward_signed_headers"),
		FetchTimeout:         fl.Duration("fetch_timeout"),
		MaxIdleConns:         fl.Int("max_idle_conns"),
		DryRun:               fl.Bool("dry_run"),
	}
}

// buildHandler wires the fetch client, transform chain and write-back
// described by opts. Dry-run bodies are copied to dryRunOut when it is set.
func buildHandler(ctx context.Context, opts PipelineOpts, dryRunOut io.Writer) (*pipeline.Handler, error) {
	alg := s3types.ChecksumAlgorithmNone
	if opts.ChecksumAlgorithm != "" {
		var err error
		if alg, err = s3types.ParseChecksumAlgorithm(opts.ChecksumAlgorithm); err != nil {
			return nil, err
		}
	}

	tr, err := transform.Parse(opts.Transform)
	if err != nil {
		return nil, err
	}

	fetchOpts := fetch.DefaultOptions()
	if opts.FetchTimeout > 0 {
		fetchOpts.Timeout = opts.FetchTimeout
	}
	if opts.MaxIdleConns > 0 {
		fetchOpts.MaxIdleConns = opts.MaxIdleConns
	}

	var w writeback.Writer
	if opts.DryRun {
		w = &writeback.LogWriter{Out: dryRunOut}
	} else {
		client, err := s3client.New(ctx, s3client.Config{
			Endpoint:        opts.Endpoint,
			Region:          opts.Region,
			AccessKeyID:     opts.AccessKeyID,
			SecretAccessKey: opts.SecretAccessKey,
			PathStyle:       opts.PathStyle,
			MaxIdleConns:    opts.MaxIdleConns,
		})
		if err != nil {
			return nil, err
		}
		sw := writeback.NewS3Writer(client)
		sw.CRC64NVME = opts.CRC64NVME
		w = sw
	}

	logger.Info().
		Str("transform", opts.Transform).
		Str("checksum_algorithm", alg.String()).
		Bool("forward_signed_headers", opts.ForwardSignedHeaders).
		Bool("dry_run", opts.DryRun).
		Dur("fetch_timeout", fetchOpts.Timeout).
		Msg("Pipeline configuration")

	return pipeline.New(pipeline.Config{
		Fetcher:              fetch.NewClient(fetchOpts),
		Writer:               w,
		Transformer:          tr,
		ChecksumAlgorithm:    alg,
		ForwardSignedHeaders: opts.ForwardSignedHeaders,
	})
}
