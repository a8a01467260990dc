// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers keep state between calls, so a new one is built per object.

func upper(_ context.Context, data []byte) ([]byte, error) {
	return cases.Upper(language.Und).Bytes(data), nil
}

func lower(_ context.Context, data []byte) ([]byte, error) {
	return cases.Lower(language.Und).Bytes(data), nil
}
