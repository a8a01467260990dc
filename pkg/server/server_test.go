// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/LeeDigitalWorks/zaplambda/pkg/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getObjectEvent = `{
	"xAmzRequestId": "req-1",
	"getObjectContext": {
		"inputS3Url": "https://example.com/object?X-Amz-Signature=abc",
		"outputRoute": "route",
		"outputToken": "token"
	},
	"userRequest": {"url": "https://example.com/object", "headers": {"Range": "bytes=0-1"}},
	"protocolVersion": "1.00"
}`

type fakeInvoker struct {
	mu     sync.Mutex
	events []*request.Event
	result any
	err    error
}

func (f *fakeInvoker) Handle(_ context.Context, ev *request.Event) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.result, f.err
}

func newTestServer(t *testing.T, inv Invoker, rps float64) *Server {
	t.Helper()
	s, err := New(Config{Invoker: inv, MaxInvocationsPerSecond: rps})
	require.NoError(t, err)
	return s
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) invocationError {
	t.Helper()
	var e invocationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestNewRequiresInvoker(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	require.Error(t, err)
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	for _, path := range []string{InvokePath, RIEPath} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			inv := &fakeInvoker{result: map[string]int{"status_code": 200}}
			s := newTestServer(t, inv, 0)

			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(getObjectEvent))
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
			assert.JSONEq(t, `{"status_code":200}`, rec.Body.String())

			require.Len(t, inv.events, 1)
			ev := inv.events[0]
			assert.Equal(t, "req-1", ev.XAmzRequestID)
			require.NotNil(t, ev.GetObjectContext)
			assert.Equal(t, "route", ev.GetObjectContext.OutputRoute)
			assert.Equal(t, "bytes=0-1", ev.UserRequest.Headers["Range"])
		})
	}
}

func TestInvokeRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantType string
	}{
		{
			name:     "wrong method",
			method:   http.MethodGet,
			path:     InvokePath,
			wantCode: http.StatusMethodNotAllowed,
			wantType: "MethodNotAllowed",
		},
		{
			name:     "malformed json",
			method:   http.MethodPost,
			path:     InvokePath,
			body:     `{"getObjectContext":`,
			wantCode: http.StatusBadRequest,
			wantType: "InvalidRequestContentException",
		},
		{
			name:     "oversized event",
			method:   http.MethodPost,
			path:     InvokePath,
			body:     `{"x":"` + strings.Repeat("a", maxEventBytes) + `"}`,
			wantCode: http.StatusRequestEntityTooLarge,
			wantType: "RequestTooLargeException",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv := &fakeInvoker{}
			s := newTestServer(t, inv, 0)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantType, decodeError(t, rec).ErrorType)
			assert.Empty(t, inv.events)
		})
	}
}

func TestInvokeUnknownPath(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeInvoker{}, 0)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/nope", strings.NewReader("{}")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvokeHandlerError(t *testing.T) {
	t.Parallel()

	inv := &fakeInvoker{err: errors.New("event has no context")}
	s := newTestServer(t, inv, 0)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, InvokePath, strings.NewReader(`{}`)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "Unhandled", e.ErrorType)
	assert.Equal(t, "event has no context", e.ErrorMessage)
}

func TestInvokeRateLimited(t *testing.T) {
	t.Parallel()

	inv := &fakeInvoker{result: struct{}{}}
	s := newTestServer(t, inv, 0.001)

	first := httptest.NewRecorder()
	s.ServeHTTP(first, httptest.NewRequest(http.MethodPost, InvokePath, strings.NewReader(`{}`)))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	s.ServeHTTP(second, httptest.NewRequest(http.MethodPost, InvokePath, strings.NewReader(`{}`)))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "TooManyRequestsException", decodeError(t, second).ErrorType)
	assert.Len(t, inv.events, 1)
}

func TestInvokeOverHTTP(t *testing.T) {
	t.Parallel()

	inv := &fakeInvoker{result: map[string]int{"status_code": 200}}
	ts := httptest.NewServer(newTestServer(t, inv, 0))
	defer ts.Close()

	resp, err := ts.Client().Post(ts.URL+RIEPath, "application/json", strings.NewReader(getObjectEvent))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}
