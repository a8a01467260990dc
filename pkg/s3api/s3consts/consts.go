// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package s3consts

const (
	// PartSize is the fixed part size used to answer partNumber requests
	// against a transformed object (5MiB, the S3 multipart minimum).
	PartSize = 5 * 1024 * 1024

	// --- Core request / tracing ---
	XAmzRequestID = "x-amz-request-id"

	// --- Selection ---
	Range      = "Range"
	PartNumber = "partNumber"

	// --- Presigned URL ---
	XAmzSignedHeaders          = "X-Amz-SignedHeaders"
	XAmzSignedHeadersDelimiter = ";"

	// --- Conditional requests ---
	IfMatch           = "If-Match"
	IfNoneMatch       = "If-None-Match"
	IfModifiedSince   = "If-Modified-Since"
	IfUnmodifiedSince = "If-Unmodified-Since"

	// --- Request payer / owner ---
	XAmzRequestPayer        = "x-amz-request-payer"
	XAmzExpectedBucketOwner = "x-amz-expected-bucket-owner"

	// --- Standard object headers ---
	Host               = "Host"
	ContentLength      = "Content-Length"
	ContentType        = "Content-Type"
	CacheControl       = "Cache-Control"
	ContentDisposition = "Content-Disposition"
	ContentLanguage    = "Content-Language"
	LastModified       = "Last-Modified"
	ETag               = "ETag"
	AcceptRanges       = "Accept-Ranges"
	PartsCount         = "x-amz-mp-parts-count"

	// --- Write-back metadata ---
	MetaBodyChecksumAlgorithm = "body-checksum-algorithm"
	MetaBodyChecksumDigest    = "body-checksum-digest"
)

// ForwardedHeaders are the user request headers passed through to the
// presigned GET. Range and partNumber apply to the transformed object and
// are never forwarded.
var ForwardedHeaders = []string{
	XAmzExpectedBucketOwner,
	XAmzRequestPayer,
	IfMatch,
	IfModifiedSince,
	IfNoneMatch,
	IfUnmodifiedSince,
}
