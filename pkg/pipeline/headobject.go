// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/objectrange"
	"github.com/LeeDigitalWorks/zaplambda/pkg/request"
	"github.com/LeeDigitalWorks/zaplambda/pkg/response"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3consts"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3err"
)

// HandleHeadObject answers a HeadObject event. The object body is never
// fetched, so Content-Length describes the untransformed object narrowed
// to the caller's range or part.
func (h *Handler) HandleHeadObject(ctx context.Context, inputS3URL string, ur request.UserRequest) response.HeadResult {
	start := time.Now()
	res := h.resolveHeadObject(ctx, inputS3URL, ur)
	observe(opHeadObject, res.StatusCode, start)
	return res
}

func (h *Handler) resolveHeadObject(ctx context.Context, inputS3URL string, ur request.UserRequest) response.HeadResult {
	sel := request.Selectors(ur)
	if err := request.ValidateSelection(sel); err != nil {
		return headError(errorDirective(err))
	}

	header := request.ForwardHeaders(ur.Headers, inputS3URL, h.forwardSigned)
	resp, err := h.fetcher.Fetch(ctx, http.MethodHead, inputS3URL, header)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("fetching object headers")
		return headError(response.ErrorFor(s3err.ErrInternalError, msgFetchFailed))
	}

	if resp.StatusCode >= 400 {
		return headError(backendError(resp))
	}

	headers := flattenHeaders(resp.Header)
	if resp.StatusCode >= 300 {
		return response.HeadResult{StatusCode: resp.StatusCode, Headers: headers}
	}

	if err := narrowContentLength(headers, sel); err != nil {
		return headError(errorDirective(err))
	}
	return response.HeadResult{StatusCode: http.StatusOK, Headers: headers}
}

func headError(e response.WriteError) response.HeadResult {
	return response.HeadResult{StatusCode: e.StatusCode, ErrorCode: e.ErrorCode, ErrorMessage: e.ErrorMessage}
}

// flattenHeaders keeps the first value of each header under its lowercase
// name.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[strings.ToLower(k)] = v[0]
		}
	}
	return out
}

// narrowContentLength rewrites content-length for the selected window. A
// selection against a response without a usable length is an internal
// error.
func narrowContentLength(headers map[string]string, sel request.Selection) error {
	if !sel.HasRange() && !sel.HasPartNumber() {
		return nil
	}

	key := strings.ToLower(s3consts.ContentLength)
	length, err := strconv.ParseUint(headers[key], 10, 64)
	if err != nil {
		return s3err.ErrInternalError.ToErrorResponseWithMessage("", msgFetchFailed)
	}

	var start, end uint64
	if sel.HasPartNumber() {
		start, end, err = objectrange.PartBounds(length, sel.PartNumber)
		if err != nil {
			return err
		}
		headers[strings.ToLower(s3consts.PartsCount)] = strconv.FormatUint(objectrange.TotalParts(length), 10)
	} else {
		spec, ok := objectrange.ParseValidRange(sel.Range)
		if !ok {
			return objectrange.InvalidRangeError(sel.Range)
		}
		start, end = spec.Bounds(length)
	}
	headers[key] = strconv.FormatUint(end-start, 10)
	return nil
}
