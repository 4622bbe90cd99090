// Copyright 2024 The Musify Authors.
// All rights reserved.

package test

import (
	"context"
	"testing"

	"github.com/musify-sync/musify/remoteapi"
)

func TestFakeClientPlaylistLifecycle(t *testing.T) {
	ctx := context.Background()
	c := NewFakeClient()

	url, err := c.CreatePlaylist(ctx, "Road Trip", false, false)
	if err != nil {
		t.Fatalf("CreatePlaylist failed: %v", err)
	}
	if len(c.Created) != 1 || c.Created[0] != "Road Trip" {
		t.Errorf("Created = %v, want [Road Trip]", c.Created)
	}

	if _, err := c.AddToPlaylist(ctx, url, []string{"fake:track:1", "fake:track:2"}, 0, false); err != nil {
		t.Fatalf("AddToPlaylist failed: %v", err)
	}
	resps, err := c.GetItems(ctx, []string{url}, remoteapi.KindPlaylist, 1, false, false)
	if err != nil || len(resps) != 1 {
		t.Fatalf("GetItems = %v, %v", resps, err)
	}
	pl := resps[0].(remoteapi.Playlist)
	if len(pl.Tracks) != 2 {
		t.Fatalf("playlist has %d tracks, want 2", len(pl.Tracks))
	}

	if _, err := c.ClearFromPlaylist(ctx, url, []string{"fake:track:1"}, 0); err != nil {
		t.Fatalf("ClearFromPlaylist failed: %v", err)
	}
	resps, _ = c.GetItems(ctx, []string{url}, remoteapi.KindPlaylist, 1, false, false)
	if len(resps[0].(remoteapi.Playlist).Tracks) != 1 {
		t.Fatalf("playlist has %d tracks after clear, want 1", len(resps[0].(remoteapi.Playlist).Tracks))
	}

	if _, err := c.DeletePlaylist(ctx, url); err != nil {
		t.Fatalf("DeletePlaylist failed: %v", err)
	}
	if len(c.Playlists) != 0 {
		t.Errorf("Playlists after delete = %v, want empty", c.Playlists)
	}
}

func TestNewLocalTrackPopulatesCleanTags(t *testing.T) {
	tr := NewLocalTrack("Song (Live)", "The Band", "Album [Deluxe]", 200)
	if tr.CleanTags().Title == "" {
		t.Error("clean tags not populated")
	}
}
