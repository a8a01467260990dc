// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"bytes"
	"context"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/request"
	"github.com/LeeDigitalWorks/zaplambda/pkg/response"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3err"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3types"
)

// HandleListObjects answers a ListObjects (v1) event.
func (h *Handler) HandleListObjects(ctx context.Context, inputS3URL string, ur request.UserRequest) response.ListResult {
	start := time.Now()
	res := handleList(ctx, h, inputS3URL, ur, func(r *s3types.ListObjectsResult) *[]s3types.ListObjectEntry {
		return &r.Contents
	})
	observe(opListObjects, res.StatusCode, start)
	return res
}

// HandleListObjectsV2 answers a ListObjectsV2 event.
func (h *Handler) HandleListObjectsV2(ctx context.Context, inputS3URL string, ur request.UserRequest) response.ListResult {
	start := time.Now()
	res := handleList(ctx, h, inputS3URL, ur, func(r *s3types.ListObjectsV2Result) *[]s3types.ListObjectEntry {
		return &r.Contents
	})
	observe(opListObjectsV2, res.StatusCode, start)
	return res
}

type listDocument interface {
	s3types.ListObjectsResult | s3types.ListObjectsV2Result
}

func handleList[T listDocument](ctx context.Context, h *Handler, inputS3URL string, ur request.UserRequest, contents func(*T) *[]s3types.ListObjectEntry) response.ListResult {
	log := logger.Ctx(ctx)

	header := request.ForwardHeaders(ur.Headers, inputS3URL, h.forwardSigned)
	resp, err := h.fetcher.Fetch(ctx, http.MethodGet, inputS3URL, header)
	if err != nil {
		log.Error().Err(err).Msg("fetching list result")
		return listError(response.ErrorFor(s3err.ErrInternalError, msgFetchFailed))
	}
	if resp.StatusCode >= 400 {
		return listError(backendError(resp))
	}

	var doc T
	if err := xml.Unmarshal(resp.Body, &doc); err != nil {
		log.Warn().Err(err).Msg("parsing list result")
		return listError(response.ErrorFor(s3err.ErrNoSuchKey, msgNoSuchKey))
	}

	entries := contents(&doc)
	transformed, err := h.listTransformer.TransformEntries(ctx, *entries)
	if err != nil {
		log.Error().Err(err).Msg("transforming list result")
		return listError(response.ErrorFor(s3err.ErrInternalError, msgTransformFailed))
	}
	*entries = transformed

	out, err := encodeList(&doc)
	if err != nil {
		log.Error().Err(err).Msg("encoding list result")
		return listError(response.ErrorFor(s3err.ErrInternalError, msgListEncode))
	}
	return response.ListResult{StatusCode: http.StatusOK, ListResultXML: out}
}

func listError(e response.WriteError) response.ListResult {
	return response.ListResult{StatusCode: e.StatusCode, ErrorCode: e.ErrorCode, ErrorMessage: e.ErrorMessage}
}

func encodeList[T listDocument](doc *T) (string, error) {
	// The decoded namespace lives in XMLName; move it to the xmlns
	// attribute so it is written once.
	switch d := any(doc).(type) {
	case *s3types.ListObjectsResult:
		d.Xmlns, d.XMLName = namespaceOf(d.Xmlns, d.XMLName), xml.Name{}
	case *s3types.ListObjectsV2Result:
		d.Xmlns, d.XMLName = namespaceOf(d.Xmlns, d.XMLName), xml.Name{}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func namespaceOf(xmlns string, name xml.Name) string {
	if xmlns != "" {
		return xmlns
	}
	return name.Space
}
