// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

const (
	RequestKey = "zaplambda-request-id"
)

type RequestID struct{}

// WithUUID returns ctx carrying a request id. An id already on ctx is
// kept; otherwise the Lambda invocation id is used when running inside
// the Lambda runtime, and a fresh UUID when not.
func WithUUID(c context.Context) (context.Context, string) {
	if id, ok := c.Value(RequestID{}).(string); ok && id != "" {
		return c, id
	}
	newID := ""
	if lc, ok := lambdacontext.FromContext(c); ok && lc.AwsRequestID != "" {
		newID = lc.AwsRequestID
	} else {
		newID = uuid.New().String()
	}
	c = context.WithValue(c, RequestID{}, newID)
	return c, newID
}

func FromUUID(c context.Context, reqID string) context.Context {
	return context.WithValue(c, RequestID{}, reqID)
}

// GetRequestID returns the id stored by WithUUID or FromUUID.
func GetRequestID(c context.Context) string {
	id, _ := c.Value(RequestID{}).(string)
	return id
}
