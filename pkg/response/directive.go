// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package response describes what a handler decided to send back. A
// GetObject handler produces exactly one Directive; HeadObject and
// ListObjects handlers return their result to the runtime directly.
package response

import (
	"fmt"
	"net/http"
	"time"
)

// Route identifies the pending GetObject request a write-back completes.
type Route struct {
	OutputRoute string
	OutputToken string
}

// Directive is one of Write, WriteStatusOnly or WriteError.
type Directive interface {
	// Status is the HTTP status the caller will see.
	Status() int
	isDirective()
}

// Attributes are object headers carried from the original object onto a
// successful write-back.
type Attributes struct {
	ContentType        string
	CacheControl       string
	ContentDisposition string
	ContentLanguage    string
	LastModified       *time.Time
}

// Write returns a transformed body.
type Write struct {
	Body       []byte
	Metadata   map[string]string
	Attributes Attributes
}

func (Write) Status() int  { return http.StatusOK }
func (Write) isDirective() {}

// WriteStatusOnly returns a bodiless status, e.g. 304.
type WriteStatusOnly struct {
	StatusCode int
}

func (w WriteStatusOnly) Status() int { return w.StatusCode }
func (WriteStatusOnly) isDirective()  {}

// WriteError returns an S3 error to the caller.
type WriteError struct {
	StatusCode   int
	ErrorCode    string
	ErrorMessage string
}

func (w WriteError) Status() int { return w.StatusCode }
func (WriteError) isDirective()  {}

func (w WriteError) Error() string {
	return fmt.Sprintf("%d %s: %s", w.StatusCode, w.ErrorCode, w.ErrorMessage)
}
