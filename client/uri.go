// Copyright 2024 The Musify Authors.
// All rights reserved.

package client

import (
	"strings"

	"github.com/musify-sync/musify/core/item"
)

// ApplyURITag interprets the raw value stored in a LocalTrack's configured
// URI tag and sets its HasURI tri-state accordingly:
// absent ⇔ URIUnknown, sentinel ⇔ URIUnavailable, anything else ⇔ URIValid.
// value is the tag's raw content, not yet parsed; ValidateIDType-style
// validation is left to the caller since it's remote-API-specific.
func (cfg *Config) ApplyURITag(t *item.LocalTrack, value string) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		t.HasURI = item.URIUnknown
		t.URI = ""
	case value == URIUnavailableSentinel:
		t.SetUnavailable()
	default:
		t.SetURI(value)
	}
}

// URITagValue extracts the stored URI-tag content from t's raw comments,
// the tag this package's default Config.URIUnavailableTag names.
func URITagValue(t *item.LocalTrack) string {
	if len(t.Tags.Comments) == 0 {
		return ""
	}
	return t.Tags.Comments[0]
}

// URITagOutput returns what should be written back to t's URI tag: the
// sentinel for a confirmed-unavailable track, the URI for a resolved one,
// or "" to clear the tag.
func URITagOutput(t *item.LocalTrack) string {
	switch t.HasURI {
	case item.URIUnavailable:
		return URIUnavailableSentinel
	case item.URIValid:
		return t.URI
	default:
		return ""
	}
}
