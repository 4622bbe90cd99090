// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package cloudutil builds links to backed-up playlist files sitting in a
// Cloud Storage bucket (see package backup).
package cloudutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ClientType selects which link format CloudStorageURL produces, since the
// web console and the Android client resolve Cloud Storage links
// differently.
type ClientType int

const (
	WebClient ClientType = iota
	AndroidClient
)

// encodePathForCloudStorage converts the passed-in original Unix filename to
// the appropriate path for accessing the file via Cloud Storage. This includes
// both regular query escaping and replacing "+" with "%20" because Cloud
// Storage seems unhappy otherwise.
//
// See https://developers.google.com/storage/docs/bucketnaming#objectnames for
// additional object naming suggestions.
func encodePathForCloudStorage(p string) string {
	return strings.Replace(url.QueryEscape(p), "+", "%20", -1)
}

// CloudStorageURL builds a link to filePath in bucketName, formatted for
// the given client.
func CloudStorageURL(bucketName, filePath string, client ClientType) string {
	switch client {
	case WebClient:
		return fmt.Sprintf("https://storage.cloud.google.com/%s/%s", bucketName, encodePathForCloudStorage(filePath))
	case AndroidClient:
		return fmt.Sprintf("https://%s.storage.googleapis.com/%s", bucketName, encodePathForCloudStorage(filePath))
	default:
		panic(fmt.Sprintf("Invalid client type %v", client))
	}
}
