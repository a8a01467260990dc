// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package checksum

import (
	"crypto/md5"
	"hash"
	"sync"

	"github.com/minio/crc64nvme"
	"github.com/minio/sha256-simd"
)

var (
	md5Pool = sync.Pool{
		New: func() any {
			return md5.New()
		},
	}
	sha256Pool = sync.Pool{
		New: func() any {
			return sha256.New()
		},
	}
	crc64nvmePool = sync.Pool{
		New: func() any {
			return crc64nvme.New()
		},
	}
)

func getHasher(pool *sync.Pool) hash.Hash {
	return pool.Get().(hash.Hash)
}

func putHasher(pool *sync.Pool, h hash.Hash) {
	h.Reset()
	pool.Put(h)
}
