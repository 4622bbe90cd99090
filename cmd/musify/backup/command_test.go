// Copyright 2024 The Musify Authors.
// All rights reserved.

package backup

import (
	"testing"

	"github.com/musify-sync/musify/client"
)

func TestLoadRulePlaylistsEmptyWithoutRulesDir(t *testing.T) {
	cfg := &client.Config{MusicDir: t.TempDir()}
	got, err := loadRulePlaylists(cfg, nil)
	if err != nil {
		t.Fatalf("loadRulePlaylists failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d playlists, want 0 with no RulesDir configured", len(got))
	}
}

func TestLoadRulePlaylistsMissingDirIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	cfg := &client.Config{MusicDir: dir, RulesDir: dir + "/missing"}
	got, err := loadRulePlaylists(cfg, nil)
	if err != nil {
		t.Fatalf("loadRulePlaylists failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d playlists, want 0 for a missing rules dir", len(got))
	}
}
