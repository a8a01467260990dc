// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package writeback delivers GetObject directives to S3 Object Lambda.
package writeback

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/LeeDigitalWorks/zaplambda/pkg/checksum"
	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/response"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
)

// Writer completes a pending GetObject request.
type Writer interface {
	Write(ctx context.Context, route response.Route, d response.Directive) error
}

// API is the subset of *s3.Client the S3Writer calls.
type API interface {
	WriteGetObjectResponse(ctx context.Context, params *s3.WriteGetObjectResponseInput, optFns ...func(*s3.Options)) (*s3.WriteGetObjectResponseOutput, error)
}

// S3Writer sends directives with WriteGetObjectResponse.
type S3Writer struct {
	api API

	// CRC64NVME adds S3's full-object CRC64/NVME checksum to successful
	// responses.
	CRC64NVME bool
}

// NewS3Writer wraps api, normally an *s3.Client.
func NewS3Writer(api API) *S3Writer {
	return &S3Writer{api: api}
}

func (w *S3Writer) Write(ctx context.Context, route response.Route, d response.Directive) error {
	in, err := w.Input(route, d)
	if err != nil {
		return err
	}
	if _, err := w.api.WriteGetObjectResponse(ctx, in); err != nil {
		return fmt.Errorf("write get object response (status %d): %w", d.Status(), err)
	}
	return nil
}

// Input maps d onto a WriteGetObjectResponseInput.
func (w *S3Writer) Input(route response.Route, d response.Directive) (*s3.WriteGetObjectResponseInput, error) {
	in := &s3.WriteGetObjectResponseInput{
		RequestRoute: aws.String(route.OutputRoute),
		RequestToken: aws.String(route.OutputToken),
		StatusCode:   aws.Int32(int32(d.Status())),
	}

	switch d := d.(type) {
	case response.Write:
		in.Body = bytes.NewReader(d.Body)
		in.ContentLength = aws.Int64(int64(len(d.Body)))
		if len(d.Metadata) > 0 {
			in.Metadata = d.Metadata
		}
		applyAttributes(in, d.Attributes)
		if w.CRC64NVME {
			in.ChecksumCRC64NVME = aws.String(checksum.CRC64NVME(d.Body))
		}
	case response.WriteStatusOnly:
	case response.WriteError:
		in.ErrorCode = aws.String(d.ErrorCode)
		in.ErrorMessage = aws.String(d.ErrorMessage)
	default:
		return nil, fmt.Errorf("unknown directive %T", d)
	}
	return in, nil
}

func applyAttributes(in *s3.WriteGetObjectResponseInput, a response.Attributes) {
	if a.ContentType != "" {
		in.ContentType = aws.String(a.ContentType)
	}
	if a.CacheControl != "" {
		in.CacheControl = aws.String(a.CacheControl)
	}
	if a.ContentDisposition != "" {
		in.ContentDisposition = aws.String(a.ContentDisposition)
	}
	if a.ContentLanguage != "" {
		in.ContentLanguage = aws.String(a.ContentLanguage)
	}
	if a.LastModified != nil {
		in.LastModified = a.LastModified
	}
}

// LogWriter logs directives instead of sending them. Bodies are copied to
// Out when it is set. Used for dry runs.
type LogWriter struct {
	Out io.Writer
}

func (w *LogWriter) Write(ctx context.Context, route response.Route, d response.Directive) error {
	ev := logger.Ctx(ctx).Info().
		Str("output_route", route.OutputRoute).
		Int("status", d.Status()).
		Str("directive", fmt.Sprintf("%T", d))

	switch d := d.(type) {
	case response.Write:
		ev = ev.Str("size", humanize.Bytes(uint64(len(d.Body)))).Interface("metadata", d.Metadata)
		if w.Out != nil {
			if _, err := w.Out.Write(d.Body); err != nil {
				return fmt.Errorf("dry run output: %w", err)
			}
		}
	case response.WriteError:
		ev = ev.Str("error_code", d.ErrorCode).Str("error_message", d.ErrorMessage)
	}
	ev.Msg("dry run write-back")
	return nil
}
