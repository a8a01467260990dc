// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package s3err

import (
	"bytes"
	"encoding/xml"
	"errors"
	"net/http"
	"strings"
)

// APIError represents an S3 API error with its code, description, and HTTP status.
// Based on: https://docs.aws.amazon.com/AmazonS3/latest/API/ErrorResponses.html#ErrorCodeList
type APIError struct {
	Code           string
	Description    string
	HTTPStatusCode int
}

// Error is the XML error document exchanged with S3, and the error value
// handed around the pipeline once a request has a caller-facing failure.
type Error struct {
	XMLName   xml.Name `xml:"Error"`
	Code      string   `xml:"Code"`
	Message   string   `xml:"Message"`
	Resource  string   `xml:"Resource,omitempty"`
	RequestID string   `xml:"RequestId,omitempty"`
	HTTPCode  int      `xml:"-"`
}

func (e Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	b.WriteString(": ")
	if e.Resource != "" {
		b.WriteString(e.Resource)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ErrorCode is an enumeration of the S3 error codes this function emits.
type ErrorCode int

const (
	ErrNone ErrorCode = iota

	ErrAccessDenied
	ErrNoSuchKey
	ErrInvalidRequest
	ErrInvalidRange
	ErrPreconditionFailed
	ErrNotModified
	ErrInternalError
	ErrSlowDown
)

var errorCodeResponse = map[ErrorCode]APIError{
	ErrAccessDenied: {
		Code:           "AccessDenied",
		Description:    "Access Denied.",
		HTTPStatusCode: http.StatusForbidden,
	},
	ErrNoSuchKey: {
		Code:           "NoSuchKey",
		Description:    "The specified key does not exist.",
		HTTPStatusCode: http.StatusNotFound,
	},
	ErrInvalidRequest: {
		Code:           "InvalidRequest",
		Description:    "Invalid Request.",
		HTTPStatusCode: http.StatusBadRequest,
	},
	ErrInvalidRange: {
		Code:           "InvalidRange",
		Description:    "The requested range cannot be satisfied.",
		HTTPStatusCode: http.StatusRequestedRangeNotSatisfiable,
	},
	ErrPreconditionFailed: {
		Code:           "PreconditionFailed",
		Description:    "At least one of the preconditions you specified did not hold.",
		HTTPStatusCode: http.StatusPreconditionFailed,
	},
	ErrNotModified: {
		Code:           "NotModified",
		Description:    "Not Modified.",
		HTTPStatusCode: http.StatusNotModified,
	},
	ErrInternalError: {
		Code:           "InternalError",
		Description:    "We encountered an internal error. Please try again.",
		HTTPStatusCode: http.StatusInternalServerError,
	},
	ErrSlowDown: {
		Code:           "SlowDown",
		Description:    "Please reduce your request rate.",
		HTTPStatusCode: http.StatusServiceUnavailable,
	},
}

// APIError returns the full APIError struct for this error code.
func (e ErrorCode) APIError() APIError {
	if err, ok := errorCodeResponse[e]; ok {
		return err
	}
	return errorCodeResponse[ErrInternalError]
}

// Code returns the S3 error code string.
func (e ErrorCode) Code() string {
	return e.APIError().Code
}

// Description returns the error description.
func (e ErrorCode) Description() string {
	return e.APIError().Description
}

// Error implements the error interface.
func (e ErrorCode) Error() string {
	return e.Description()
}

// HTTPStatusCode returns the HTTP status code for this error.
func (e ErrorCode) HTTPStatusCode() int {
	return e.APIError().HTTPStatusCode
}

// ToErrorResponse creates an Error carrying the default description.
func (e ErrorCode) ToErrorResponse(resource string) Error {
	return e.ToErrorResponseWithMessage(resource, e.Description())
}

// ToErrorResponseWithMessage creates an Error with a custom message.
func (e ErrorCode) ToErrorResponseWithMessage(resource, message string) Error {
	api := e.APIError()
	return Error{
		Code:     api.Code,
		Message:  message,
		Resource: resource,
		HTTPCode: api.HTTPStatusCode,
	}
}

// ErrorCodeForStatus picks the closest error code for a backend status
// when the backend did not send a usable error document (HEAD responses
// never carry one).
func ErrorCodeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusForbidden:
		return ErrAccessDenied
	case http.StatusNotFound:
		return ErrNoSuchKey
	case http.StatusPreconditionFailed:
		return ErrPreconditionFailed
	case http.StatusRequestedRangeNotSatisfiable:
		return ErrInvalidRange
	case http.StatusNotModified:
		return ErrNotModified
	case http.StatusServiceUnavailable:
		return ErrSlowDown
	default:
		return ErrInternalError
	}
}

var errMissingCode = errors.New("s3err: error document has no Code element")

// ParseErrorResponse decodes an S3 XML error document. The document must
// carry a non-empty Code element.
func ParseErrorResponse(body []byte) (Error, error) {
	var e Error
	if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&e); err != nil {
		return Error{}, err
	}
	e.Code = strings.TrimSpace(e.Code)
	if e.Code == "" {
		return Error{}, errMissingCode
	}
	return e, nil
}

// AsError reports whether err is (or wraps) an Error and returns it.
func AsError(err error) (Error, bool) {
	var e Error
	if errors.As(err, &e) {
		return e, true
	}
	return Error{}, false
}
