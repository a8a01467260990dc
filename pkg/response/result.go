// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package response

import (
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3err"
)

// HeadResult is returned to the runtime for a HeadObject event.
type HeadResult struct {
	StatusCode   int               `json:"statusCode"`
	Headers      map[string]string `json:"headers,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	ErrorCode    string            `json:"errorCode,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}

// ListResult is returned to the runtime for ListObjects and
// ListObjectsV2 events.
type ListResult struct {
	StatusCode    int    `json:"statusCode"`
	ListResultXML string `json:"listResultXml,omitempty"`
	ErrorCode     string `json:"errorCode,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

// ErrorFrom converts an s3err.Error into a WriteError.
func ErrorFrom(e s3err.Error) WriteError {
	return WriteError{StatusCode: e.HTTPCode, ErrorCode: e.Code, ErrorMessage: e.Message}
}

// ErrorFor builds a WriteError for code with a custom message.
func ErrorFor(code s3err.ErrorCode, message string) WriteError {
	return ErrorFrom(code.ToErrorResponseWithMessage("", message))
}
