// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package request models the S3 Object Lambda invocation event and the
// caller's original request carried inside it.
package request

import (
	"github.com/aws/aws-lambda-go/events"
)

// Event is the payload S3 Object Lambda sends to the function. Exactly one
// of the operation contexts is set.
type Event = events.S3ObjectLambdaEvent

// GetObjectContext carries the presigned input URL and the route/token
// pair WriteGetObjectResponse must be called with.
type GetObjectContext = events.S3ObjectLambdaGetObjectContext

// Operation names the S3 call an event was generated for.
type Operation string

const (
	OpGetObject     Operation = "GetObject"
	OpHeadObject    Operation = "HeadObject"
	OpListObjects   Operation = "ListObjects"
	OpListObjectsV2 Operation = "ListObjectsV2"
	OpUnknown       Operation = ""
)

// OperationOf reports which operation context is present on ev.
func OperationOf(ev *Event) Operation {
	switch {
	case ev.GetObjectContext != nil:
		return OpGetObject
	case ev.HeadObjectContext != nil:
		return OpHeadObject
	case ev.ListObjectsV2Context != nil:
		return OpListObjectsV2
	case ev.ListObjectsContext != nil:
		return OpListObjects
	default:
		return OpUnknown
	}
}

// InputS3URL returns the presigned URL of whichever context is set.
func InputS3URL(ev *Event) string {
	switch OperationOf(ev) {
	case OpGetObject:
		return ev.GetObjectContext.InputS3URL
	case OpHeadObject:
		return ev.HeadObjectContext.InputS3URL
	case OpListObjectsV2:
		return ev.ListObjectsV2Context.InputS3URL
	case OpListObjects:
		return ev.ListObjectsContext.InputS3URL
	}
	return ""
}

// UserRequest is the original request the caller made to the Object
// Lambda access point.
type UserRequest struct {
	URL     string
	Headers Headers
}

// NewUserRequest lifts the event's user request into a UserRequest.
func NewUserRequest(ur events.S3ObjectLambdaUserRequest) UserRequest {
	return UserRequest{URL: ur.URL, Headers: Headers(ur.Headers)}
}
