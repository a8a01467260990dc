// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

// Package checksum computes the integrity digest attached to every
// successful write-back.
package checksum

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3consts"
	"github.com/LeeDigitalWorks/zaplambda/pkg/s3api/s3types"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = s3types.ChecksumAlgorithmMD5

// Checksum is a digest together with the algorithm that produced it.
// Digest is lowercase hex.
type Checksum struct {
	Algorithm s3types.ChecksumAlgorithm
	Digest    string
}

// Metadata returns the object metadata entries describing c.
func (c Checksum) Metadata() map[string]string {
	return map[string]string{
		s3consts.MetaBodyChecksumAlgorithm: c.Algorithm.String(),
		s3consts.MetaBodyChecksumDigest:    c.Digest,
	}
}

// Compute hashes payload with alg. ChecksumNone selects DefaultAlgorithm.
func Compute(alg s3types.ChecksumAlgorithm, payload []byte) (Checksum, error) {
	if alg == s3types.ChecksumAlgorithmNone {
		alg = DefaultAlgorithm
	}

	var pool *sync.Pool
	switch alg {
	case s3types.ChecksumAlgorithmMD5:
		pool = &md5Pool
	case s3types.ChecksumAlgorithmSHA256:
		pool = &sha256Pool
	default:
		return Checksum{}, fmt.Errorf("unsupported checksum algorithm %q", alg.String())
	}

	h := getHasher(pool)
	defer putHasher(pool, h)
	h.Write(payload)

	return Checksum{
		Algorithm: alg,
		Digest:    hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// CRC64NVME returns the base64 encoded big-endian CRC64/NVME of payload,
// the form S3 uses for its full-object ChecksumCRC64NVME value.
func CRC64NVME(payload []byte) string {
	h := getHasher(&crc64nvmePool)
	defer putHasher(&crc64nvmePool, h)
	h.Write(payload)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
