// Copyright 2024 The Musify Authors.
// All rights reserved.

package search

import (
	"testing"

	"github.com/musify-sync/musify/core/item"
)

func track(album, artist string, compilation bool) *item.LocalTrack {
	t := &item.LocalTrack{}
	t.Tags.Album = album
	t.Tags.AlbumArtist = artist
	t.Tags.Compilation = compilation
	return t
}

func TestGroupByAlbumBucketsByAlbumAndArtist(t *testing.T) {
	tracks := []*item.LocalTrack{
		track("Album A", "Artist 1", false),
		track("Album A", "Artist 1", false),
		track("Album B", "Artist 2", false),
		track("", "", false),
	}
	groups := groupByAlbum(tracks)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0].album != "Album A" || len(groups[0].tracks) != 2 {
		t.Errorf("group 0 = %+v, want Album A with 2 tracks", groups[0])
	}
}

func TestGroupByAlbumFlagsCompilation(t *testing.T) {
	tracks := []*item.LocalTrack{
		track("Greatest Hits", "Various", true),
		track("Greatest Hits", "Various", false),
	}
	groups := groupByAlbum(tracks)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if !groups[0].compilation {
		t.Error("expected group to be flagged as a compilation once any track is")
	}
}
