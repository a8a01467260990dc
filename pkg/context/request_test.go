// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithUUID(t *testing.T) {
	t.Parallel()

	ctx, id := WithUUID(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, GetRequestID(ctx))

	// An existing id is kept.
	ctx2, id2 := WithUUID(ctx)
	assert.Equal(t, id, id2)
	assert.Equal(t, ctx, ctx2)
}

func TestWithUUIDLambdaContext(t *testing.T) {
	t.Parallel()

	lc := &lambdacontext.LambdaContext{AwsRequestID: "c6af9ac6-7b61-11e6-9a41-93e8deadbeef"}
	ctx, id := WithUUID(lambdacontext.NewContext(context.Background(), lc))
	assert.Equal(t, lc.AwsRequestID, id)
	assert.Equal(t, lc.AwsRequestID, GetRequestID(ctx))
}

func TestFromUUID(t *testing.T) {
	t.Parallel()

	ctx := FromUUID(context.Background(), "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}
