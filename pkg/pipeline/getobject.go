// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/checksum"
	"github.com/LeeDigitalWorks/zaplambda/pkg/fetch"
	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/objectrange"
	"github.com/LeeDigitalWorks/zaplambda/pkg/request"
	"github.com/LeeDigitalWorks/zaplambda/pkg/response"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3consts"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3err"

	"github.com/dustin/go-humanize"
	"github.com/getsentry/sentry-go"
)

// HandleGetObject resolves a GetObject request and delivers the result
// with exactly one write-back call. The returned error is the write-back
// failure, if any.
func (h *Handler) HandleGetObject(ctx context.Context, gctx *request.GetObjectContext, ur request.UserRequest) error {
	start := time.Now()
	d := h.ResolveGetObject(ctx, gctx, ur)

	route := response.Route{OutputRoute: gctx.OutputRoute, OutputToken: gctx.OutputToken}
	err := h.writer.Write(ctx, route, d)
	observe(opGetObject, d.Status(), start)
	if w, ok := d.(response.Write); ok {
		BytesWritten.Add(float64(len(w.Body)))
	}
	if err != nil {
		WriteBackFailures.Inc()
		sentry.CaptureException(err)
		logger.Ctx(ctx).Error().Err(err).Int("status", d.Status()).Msg("write-back failed")
		return err
	}
	return nil
}

// ResolveGetObject runs the GetObject pipeline and returns the directive
// to send. Every failure is expressed as a directive.
func (h *Handler) ResolveGetObject(ctx context.Context, gctx *request.GetObjectContext, ur request.UserRequest) response.Directive {
	log := logger.Ctx(ctx)

	sel := request.Selectors(ur)
	if err := request.ValidateSelection(sel); err != nil {
		return errorDirective(err)
	}

	header := request.ForwardHeaders(ur.Headers, gctx.InputS3URL, h.forwardSigned)
	resp, err := h.fetcher.Fetch(ctx, http.MethodGet, gctx.InputS3URL, header)
	if err != nil {
		log.Error().Err(err).Msg("fetching original object")
		return response.ErrorFor(s3err.ErrInternalError, msgFetchFailed)
	}

	if resp.StatusCode == http.StatusNotModified {
		return response.WriteStatusOnly{StatusCode: http.StatusNotModified}
	}
	if !resp.OK() {
		return backendError(resp)
	}

	transformed, err := h.transform(ctx, resp.Body)
	if err != nil {
		log.Error().Err(err).Msg("transforming object")
		return response.ErrorFor(s3err.ErrInternalError, msgTransformFailed)
	}

	selected, err := selectBytes(transformed, sel)
	if err != nil {
		return errorDirective(err)
	}

	sum, err := checksum.Compute(h.checksumAlg, selected)
	if err != nil {
		log.Error().Err(err).Msg("computing checksum")
		return response.ErrorFor(s3err.ErrInternalError, msgTransformFailed)
	}

	log.Debug().
		Str("original", humanize.Bytes(uint64(len(resp.Body)))).
		Str("transformed", humanize.Bytes(uint64(len(transformed)))).
		Str("returned", humanize.Bytes(uint64(len(selected)))).
		Msg("object transformed")

	return response.Write{
		Body:       selected,
		Metadata:   sum.Metadata(),
		Attributes: attributesFrom(resp.Header),
	}
}

// selectBytes applies a part number first, then a range, else returns the
// whole payload.
func selectBytes(payload []byte, sel request.Selection) ([]byte, error) {
	switch {
	case sel.HasPartNumber():
		return objectrange.ApplyPartNumber(payload, sel.PartNumber)
	case sel.HasRange():
		return objectrange.ApplyRange(payload, sel.Range)
	default:
		return payload, nil
	}
}

func errorDirective(err error) response.WriteError {
	if e, ok := s3err.AsError(err); ok {
		return response.ErrorFrom(e)
	}
	return response.ErrorFor(s3err.ErrInternalError, err.Error())
}

// backendError passes a failed presigned fetch through to the caller. The
// error code comes from the S3 error document, or from the status when
// there is none.
func backendError(resp *fetch.Response) response.WriteError {
	code := backendErrorCode(resp)
	return response.WriteError{
		StatusCode:   resp.StatusCode,
		ErrorCode:    code,
		ErrorMessage: fmt.Sprintf("Received %s from the supporting Access Point.", code),
	}
}

func backendErrorCode(resp *fetch.Response) string {
	if len(resp.Body) > 0 {
		if e, err := s3err.ParseErrorResponse(resp.Body); err == nil {
			return e.Code
		}
	}
	return s3err.ErrorCodeForStatus(resp.StatusCode).Code()
}

func attributesFrom(h http.Header) response.Attributes {
	a := response.Attributes{
		ContentType:        h.Get(s3consts.ContentType),
		CacheControl:       h.Get(s3consts.CacheControl),
		ContentDisposition: h.Get(s3consts.ContentDisposition),
		ContentLanguage:    h.Get(s3consts.ContentLanguage),
	}
	if lm := h.Get(s3consts.LastModified); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			a.LastModified = &t
		}
	}
	return a
}
