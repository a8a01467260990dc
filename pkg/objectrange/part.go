// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package objectrange

import (
	"fmt"
	"strconv"

	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3consts"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3err"
)

// PartSize is the fixed size of every part but the last.
const PartSize = s3consts.PartSize

// TotalParts returns ceil(length / PartSize); an empty object has no parts.
func TotalParts(length uint64) uint64 {
	return (length + PartSize - 1) / PartSize
}

// PartBounds resolves partStr against an object of the given length and
// returns the half-open window of that part. Part numbers start at 1; part
// 0 is rejected like any other out-of-range number.
func PartBounds(length uint64, partStr string) (start, end uint64, err error) {
	total := TotalParts(length)

	n, convErr := strconv.Atoi(partStr)
	if convErr != nil || n < 1 || uint64(n) > total {
		return 0, 0, InvalidPartError(partStr, total)
	}

	start = uint64(n-1) * PartSize
	end = min(start+PartSize, length)
	return start, end, nil
}

// ApplyPartNumber returns part partStr of payload. The last part is shorter
// than PartSize when the payload does not divide evenly.
func ApplyPartNumber(payload []byte, partStr string) ([]byte, error) {
	start, end, err := PartBounds(uint64(len(payload)), partStr)
	if err != nil {
		return nil, err
	}
	return payload[start:end], nil
}

// InvalidPartError is the caller-facing error for an unusable part number.
func InvalidPartError(partStr string, total uint64) error {
	return s3err.ErrInvalidRequest.ToErrorResponseWithMessage("",
		fmt.Sprintf("Cannot specify part number: %s. Use part numbers 1 to %d.", partStr, total))
}
