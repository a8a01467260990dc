// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package s3types

import (
	"fmt"
	"strings"
)

// ChecksumAlgorithm names the digest attached to a transformed body.
type ChecksumAlgorithm uint8

const (
	ChecksumAlgorithmNone ChecksumAlgorithm = iota
	ChecksumAlgorithmMD5
	ChecksumAlgorithmSHA256
)

var (
	checksumAlgorithmTypes = map[ChecksumAlgorithm]string{
		ChecksumAlgorithmNone:   "none",
		ChecksumAlgorithmMD5:    "md5",
		ChecksumAlgorithmSHA256: "sha256",
	}
	checksumAlgorithmNames = map[string]ChecksumAlgorithm{
		"md5":    ChecksumAlgorithmMD5,
		"sha256": ChecksumAlgorithmSHA256,
	}
)

// String returns the lowercase name reported in body-checksum-algorithm.
func (c ChecksumAlgorithm) String() string {
	if name, ok := checksumAlgorithmTypes[c]; ok {
		return name
	}
	return "none"
}

func (c ChecksumAlgorithm) IsValid() bool {
	_, ok := checksumAlgorithmNames[c.String()]
	return ok
}

// ParseChecksumAlgorithm accepts algorithm names case-insensitively.
func ParseChecksumAlgorithm(s string) (ChecksumAlgorithm, error) {
	if alg, ok := checksumAlgorithmNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return alg, nil
	}
	return ChecksumAlgorithmNone, fmt.Errorf("unsupported checksum algorithm %q", s)
}
