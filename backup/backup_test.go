// Copyright 2024 The Musify Authors.
// All rights reserved.

package backup

import (
	"encoding/json"
	"testing"
)

func TestObjectNameSanitizesSlashes(t *testing.T) {
	got := objectName("Road Trip/2024")
	want := "playlists/Road Trip_2024.json"
	if got != want {
		t.Errorf("objectName = %q, want %q", got, want)
	}
}

func TestPlaylistBlobRoundTrip(t *testing.T) {
	blob := playlistBlob{
		Name: "Favorites",
		Tracks: []trackBlob{
			{Name: "Song A", Path: "/music/a.mp3"},
			{Name: "Song B", URI: "catalog:track:123"},
		},
	}
	data, err := json.Marshal(blob)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var got playlistBlob
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Name != blob.Name || len(got.Tracks) != len(blob.Tracks) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, blob)
	}
	if got.Tracks[0].Path != "/music/a.mp3" || got.Tracks[1].URI != "catalog:track:123" {
		t.Errorf("track fields lost in round trip: %+v", got.Tracks)
	}
}

func TestNumWorkersDefaultsToOne(t *testing.T) {
	b := &GCSBacker{}
	if got := b.numWorkers(); got != 1 {
		t.Errorf("numWorkers() = %d, want 1", got)
	}
	b.NumWorkers = 5
	if got := b.numWorkers(); got != 5 {
		t.Errorf("numWorkers() = %d, want 5", got)
	}
}
