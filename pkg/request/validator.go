// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"github.com/LeeDigitalWorks/zaplambda/pkg/objectrange"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3err"
)

const msgBothSelectors = "Cannot specify both Range and Part Number in Query"

// Validate checks the selection a user request carries before any object
// is fetched. The returned error is an s3err.Error with the message the
// caller should see.
func Validate(ur UserRequest) error {
	return ValidateSelection(Selectors(ur))
}

// ValidateSelection is Validate for an already extracted selection.
func ValidateSelection(sel Selection) error {
	if sel.HasRange() && sel.HasPartNumber() {
		return s3err.ErrInvalidRequest.ToErrorResponseWithMessage("", msgBothSelectors)
	}
	if sel.HasRange() && !objectrange.ValidateRange(sel.Range) {
		return objectrange.InvalidRangeError(sel.Range)
	}
	return nil
}
