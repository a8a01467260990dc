// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package s3client builds the S3 client used to deliver GetObject
// write-backs.
package s3client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the connection settings for the write-back client. With
// no static keys the default credential chain is used, which is what the
// Lambda runtime provides.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
	Timeout         time.Duration
	MaxIdleConns    int
}

func (c *Config) setDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 5 * time.Minute
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 100
	}
}

// New creates an S3 client from cfg.
func New(ctx context.Context, cfg Config) (*s3.Client, error) {
	cfg.setDefaults()

	// The SDK adds AWS_CA_BUNDLE roots through WithTransportOptions, so
	// the client has to stay buildable.
	httpClient := awshttp.NewBuildableClient().
		WithTimeout(cfg.Timeout).
		WithTransportOptions(func(t *http.Transport) {
			t.Proxy = http.ProxyFromEnvironment
			t.MaxIdleConns = cfg.MaxIdleConns
			t.MaxIdleConnsPerHost = max(cfg.MaxIdleConns/10, 2)
			t.IdleConnTimeout = 90 * time.Second
		})

	loadOpts := []func(*config.LoadOptions) error{
		config.WithHTTPClient(httpClient),
	}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.UsePathStyle = cfg.PathStyle
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	logger.Debug().
		Str("endpoint", cfg.Endpoint).
		Str("region", awsCfg.Region).
		Bool("static_credentials", cfg.AccessKeyID != "").
		Msg("Created S3 write-back client")

	return s3.NewFromConfig(awsCfg, opts...), nil
}
