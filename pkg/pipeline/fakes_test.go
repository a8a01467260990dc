// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"net/http"
	"sync"

	"github.com/LeeDigitalWorks/zaplambda/pkg/fetch"
	"github.com/LeeDigitalWorks/zaplambda/pkg/response"
)

type fetchCall struct {
	Method string
	URL    string
	Header http.Header
}

type fakeFetcher struct {
	mu    sync.Mutex
	resp  *fetch.Response
	err   error
	calls []fetchCall
}

func (f *fakeFetcher) Fetch(_ context.Context, method, url string, header http.Header) (*fetch.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{Method: method, URL: url, Header: header})
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func okResponse(body string) *fetch.Response {
	return &fetch.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}
}

type writeCall struct {
	Route     response.Route
	Directive response.Directive
}

type fakeWriter struct {
	mu    sync.Mutex
	err   error
	calls []writeCall
}

func (w *fakeWriter) Write(_ context.Context, route response.Route, d response.Directive) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, writeCall{Route: route, Directive: d})
	return w.err
}
