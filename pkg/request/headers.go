// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"net/url"
	"strings"

	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3consts"
)

// Headers is the header map of the user request. S3 delivers it with the
// casing the caller used, so lookups ignore case.
type Headers map[string]string

// Get returns the value of the header whose name matches key
// case-insensitively, and whether one was found. An exact match wins;
// among other spellings the lexically smallest name is used.
func (h Headers) Get(key string) (string, bool) {
	if v, ok := h[key]; ok {
		return v, true
	}
	var (
		match string
		found bool
	)
	for k := range h {
		if strings.EqualFold(k, key) && (!found || k < match) {
			match, found = k, true
		}
	}
	if !found {
		return "", false
	}
	return h[match], true
}

// Selection holds the Range and partNumber values a caller supplied. An
// empty string means absent.
type Selection struct {
	Range      string
	PartNumber string
}

// HasRange reports whether a Range was supplied.
func (s Selection) HasRange() bool { return s.Range != "" }

// HasPartNumber reports whether a partNumber was supplied.
func (s Selection) HasPartNumber() bool { return s.PartNumber != "" }

// Selectors extracts Range and partNumber from ur. Range comes from the
// headers first and falls back to the query string; partNumber is only
// read from the query string. The URL is lowercased before its query is
// parsed, so parameter names match regardless of case.
func Selectors(ur UserRequest) Selection {
	var sel Selection

	query := lowerQuery(ur.URL)
	if v, ok := ur.Headers.Get(s3consts.Range); ok && v != "" {
		sel.Range = v
	} else {
		sel.Range = query.Get(strings.ToLower(s3consts.Range))
	}
	sel.PartNumber = query.Get(strings.ToLower(s3consts.PartNumber))
	return sel
}

// lowerQuery parses the query of rawURL after lowercasing it. Malformed
// pairs (a bad escape, a ';') are skipped and the rest are kept.
func lowerQuery(rawURL string) url.Values {
	_, rawQuery, ok := strings.Cut(strings.ToLower(rawURL), "?")
	if !ok {
		return url.Values{}
	}
	rawQuery, _, _ = strings.Cut(rawQuery, "#")
	q, _ := url.ParseQuery(rawQuery)
	return q
}
