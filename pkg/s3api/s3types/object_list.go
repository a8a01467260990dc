// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package s3types

import "encoding/xml"

// ListObjectsResult represents the XML response for ListObjects (v1)
type ListObjectsResult struct {
	XMLName        xml.Name          `xml:"ListBucketResult"`
	Xmlns          string            `xml:"xmlns,attr,omitempty"`
	Name           string            `xml:"Name"`
	Prefix         string            `xml:"Prefix"`
	Marker         string            `xml:"Marker"`
	NextMarker     string            `xml:"NextMarker,omitempty"`
	MaxKeys        int               `xml:"MaxKeys"`
	Delimiter      string            `xml:"Delimiter,omitempty"`
	IsTruncated    bool              `xml:"IsTruncated"`
	EncodingType   string            `xml:"EncodingType,omitempty"`
	Contents       []ListObjectEntry `xml:"Contents"`
	CommonPrefixes []CommonPrefix    `xml:"CommonPrefixes,omitempty"`
}

// ListObjectsV2Result is the XML response for ListObjectsV2
type ListObjectsV2Result struct {
	XMLName               xml.Name          `xml:"ListBucketResult"`
	Xmlns                 string            `xml:"xmlns,attr,omitempty"`
	Name                  string            `xml:"Name"`
	Prefix                string            `xml:"Prefix"`
	Delimiter             string            `xml:"Delimiter,omitempty"`
	MaxKeys               int               `xml:"MaxKeys"`
	KeyCount              int               `xml:"KeyCount"`
	IsTruncated           bool              `xml:"IsTruncated"`
	EncodingType          string            `xml:"EncodingType,omitempty"`
	ContinuationToken     string            `xml:"ContinuationToken,omitempty"`
	NextContinuationToken string            `xml:"NextContinuationToken,omitempty"`
	StartAfter            string            `xml:"StartAfter,omitempty"`
	Contents              []ListObjectEntry `xml:"Contents"`
	CommonPrefixes        []CommonPrefix    `xml:"CommonPrefixes,omitempty"`
}

// ListObjectEntry represents an object in list responses
type ListObjectEntry struct {
	Key               string       `xml:"Key"`
	LastModified      string       `xml:"LastModified"`
	ETag              string       `xml:"ETag"`
	ChecksumAlgorithm []string     `xml:"ChecksumAlgorithm,omitempty"`
	Size              int64        `xml:"Size"`
	StorageClass      string       `xml:"StorageClass,omitempty"`
	Owner             *ObjectOwner `xml:"Owner,omitempty"`
}

// ObjectOwner represents an object owner in list responses
type ObjectOwner struct {
	ID          string `xml:"ID,omitempty"`
	DisplayName string `xml:"DisplayName,omitempty"`
}

// CommonPrefix represents a common prefix in list responses (for delimiter)
type CommonPrefix struct {
	Prefix string `xml:"Prefix"`
}
