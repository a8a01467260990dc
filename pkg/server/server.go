// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the event handler over HTTP so the function can
// be driven locally or by the Lambda runtime interface emulator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	reqctx "github.com/LeeDigitalWorks/zaplambda/pkg/context"
	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/request"

	"golang.org/x/time/rate"
)

const (
	InvokePath = "/invoke"
	// RIEPath is the invocation path of the Lambda runtime interface emulator.
	RIEPath = "/2015-03-31/functions/function/invocations"

	// Lambda caps synchronous payloads at 6 MB.
	maxEventBytes = 6 << 20

	requestIDHeader = "X-Amzn-RequestId"
)

// Invoker handles one decoded event. *pipeline.Handler implements it.
type Invoker interface {
	Handle(ctx context.Context, ev *request.Event) (any, error)
}

type Config struct {
	Invoker Invoker

	// MaxInvocationsPerSecond limits accepted invocations. Zero or less
	// disables limiting.
	MaxInvocationsPerSecond float64
}

// Server is an http.Handler that accepts Object Lambda events as JSON and
// replies with the handler's result.
type Server struct {
	invoker Invoker
	limiter *rate.Limiter
	mux     *http.ServeMux
}

// invocationError mirrors the error payload the Lambda runtime returns.
type invocationError struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

func New(cfg Config) (*Server, error) {
	if cfg.Invoker == nil {
		return nil, errors.New("server: invoker is required")
	}

	s := &Server{invoker: cfg.Invoker}
	if cfg.MaxInvocationsPerSecond > 0 {
		burst := int(math.Ceil(cfg.MaxInvocationsPerSecond))
		s.limiter = rate.NewLimiter(rate.Limit(cfg.MaxInvocationsPerSecond), burst)
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc(InvokePath, s.invoke)
	s.mux.HandleFunc(RIEPath, s.invoke)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w}

	defer func() {
		code := rec.statusCode
		if code == 0 {
			code = http.StatusOK
		}
		InvocationsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
		InvocationDuration.Observe(time.Since(start).Seconds())
	}()

	s.mux.ServeHTTP(rec, r)
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "invocations must be POST")
		return
	}

	if s.limiter != nil && !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "TooManyRequestsException", "Rate exceeded")
		return
	}

	ctx, requestID := reqctx.WithUUID(r.Context())
	w.Header().Set(requestIDHeader, requestID)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLargeException", "event exceeds "+strconv.Itoa(maxEventBytes)+" bytes")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequestContentException", err.Error())
		return
	}

	var ev request.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequestContentException", "could not parse event: "+err.Error())
		return
	}

	result, err := s.invoker.Handle(ctx, &ev)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("request_id", requestID).Msg("invocation failed")
		writeError(w, http.StatusInternalServerError, "Unhandled", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeError(w http.ResponseWriter, status int, errType, msg string) {
	writeJSON(w, status, invocationError{ErrorMessage: msg, ErrorType: errType})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode invocation result")
		status = http.StatusInternalServerError
		data = []byte(`{"errorMessage":"failed to encode result","errorType":"Unhandled"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.statusCode = code
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
