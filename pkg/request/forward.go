// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3consts"
)

// SignedHeaders returns the lowercased header names listed in the
// X-Amz-SignedHeaders parameter of a presigned URL.
func SignedHeaders(presignedURL string) []string {
	u, err := url.Parse(presignedURL)
	if err != nil {
		return nil
	}
	raw := u.Query().Get(s3consts.XAmzSignedHeaders)
	if raw == "" {
		return nil
	}
	names := strings.Split(raw, s3consts.XAmzSignedHeadersDelimiter)
	for i, n := range names {
		names[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return names
}

// ForwardHeaders builds the header set for the presigned fetch. Headers on
// the allow-list are always copied; when includeSigned is set, headers the
// presigned URL was signed with are copied as well. Names keep the casing
// the caller used and Host is never forwarded.
func ForwardHeaders(h Headers, presignedURL string, includeSigned bool) http.Header {
	want := make(map[string]struct{}, len(s3consts.ForwardedHeaders))
	for _, name := range s3consts.ForwardedHeaders {
		want[strings.ToLower(name)] = struct{}{}
	}
	if includeSigned {
		for _, name := range SignedHeaders(presignedURL) {
			want[name] = struct{}{}
		}
	}
	delete(want, strings.ToLower(s3consts.Host))

	out := make(http.Header)
	for k, v := range h {
		if _, ok := want[strings.ToLower(k)]; ok {
			out[k] = []string{v}
		}
	}
	return out
}
