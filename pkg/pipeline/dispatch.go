// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"errors"
	"net/http"

	reqctx "github.com/LeeDigitalWorks/zaplambda/pkg/context"
	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/request"
)

// ErrUnknownEvent is returned for an event that carries none of the
// supported operation contexts.
var ErrUnknownEvent = errors.New("event has no getObjectContext, headObjectContext, listObjectsContext or listObjectsV2Context")

// GetObjectResult is what the runtime receives after a GetObject event;
// the object itself went out through the write-back.
type GetObjectResult struct {
	StatusCode int `json:"status_code"`
}

// Handle routes ev to the handler for its operation and returns the value
// the runtime should reply with.
func (h *Handler) Handle(ctx context.Context, ev *request.Event) (any, error) {
	ctx = withRequestLogger(ctx, ev)
	ur := request.NewUserRequest(ev.UserRequest)
	op := request.OperationOf(ev)

	logger.Ctx(ctx).Debug().Str("url", ur.URL).Msg("handling event")

	switch op {
	case request.OpGetObject:
		if err := h.HandleGetObject(ctx, ev.GetObjectContext, ur); err != nil {
			return nil, err
		}
		return GetObjectResult{StatusCode: http.StatusOK}, nil
	case request.OpHeadObject:
		return h.HandleHeadObject(ctx, ev.HeadObjectContext.InputS3URL, ur), nil
	case request.OpListObjects:
		return h.HandleListObjects(ctx, ev.ListObjectsContext.InputS3URL, ur), nil
	case request.OpListObjectsV2:
		return h.HandleListObjectsV2(ctx, ev.ListObjectsV2Context.InputS3URL, ur), nil
	default:
		return nil, ErrUnknownEvent
	}
}

func withRequestLogger(ctx context.Context, ev *request.Event) context.Context {
	if ev.XAmzRequestID != "" {
		ctx = reqctx.FromUUID(ctx, ev.XAmzRequestID)
	}
	ctx, id := reqctx.WithUUID(ctx)

	l := logger.Ctx(ctx).With().
		Str("request_id", id).
		Str("operation", string(request.OperationOf(ev))).
		Logger()
	return logger.WithLogger(ctx, &l)
}
