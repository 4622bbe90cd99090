// Copyright 2024 The Musify Authors.
// All rights reserved.

package client

import (
	"testing"

	"github.com/musify-sync/musify/core/item"
)

func TestApplyURITagTriStates(t *testing.T) {
	var cfg Config

	track := &item.LocalTrack{}
	cfg.ApplyURITag(track, "")
	if track.HasURI != item.URIUnknown {
		t.Errorf("empty tag -> %v, want URIUnknown", track.HasURI)
	}

	cfg.ApplyURITag(track, URIUnavailableSentinel)
	if track.HasURI != item.URIUnavailable {
		t.Errorf("sentinel tag -> %v, want URIUnavailable", track.HasURI)
	}

	cfg.ApplyURITag(track, "catalog:track:123")
	if track.HasURI != item.URIValid || track.URI != "catalog:track:123" {
		t.Errorf("URI tag -> %v/%q, want URIValid/catalog:track:123", track.HasURI, track.URI)
	}
}

func TestURITagOutputRoundTrip(t *testing.T) {
	track := &item.LocalTrack{}
	track.SetURI("catalog:track:1")
	if got := URITagOutput(track); got != "catalog:track:1" {
		t.Errorf("URITagOutput(valid) = %q, want catalog:track:1", got)
	}

	track.SetUnavailable()
	if got := URITagOutput(track); got != URIUnavailableSentinel {
		t.Errorf("URITagOutput(unavailable) = %q, want sentinel", got)
	}

	track.SetURI("")
	if got := URITagOutput(track); got != "" {
		t.Errorf("URITagOutput(unknown) = %q, want empty", got)
	}
}
