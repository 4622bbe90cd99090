// Copyright 2024 The Musify Authors.
// All rights reserved.

package auto

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"

	"github.com/musify-sync/musify/client"
)

const emptyRule = `<?xml version="1.0" encoding="utf-8"?>
<SmartPlaylist>
  <Source>
    <Conditions CombineMethod="All"></Conditions>
  </Source>
</SmartPlaylist>
`

func TestExecuteRequiresRuleAndOut(t *testing.T) {
	cmd := &Command{Cfg: &client.Config{MusicDir: t.TempDir()}}
	if got := cmd.Execute(context.Background(), nil); got != subcommands.ExitUsageError {
		t.Errorf("Execute() with no -rule/-out = %v, want ExitUsageError", got)
	}
}

func TestExecuteWritesEmptyPlaylistForEmptyLibrary(t *testing.T) {
	dir := t.TempDir()
	rulePath := filepath.Join(dir, "rule.xautopf")
	if err := os.WriteFile(rulePath, []byte(emptyRule), 0644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out", "playlist.m3u")

	cmd := &Command{Cfg: &client.Config{MusicDir: dir}, rule: rulePath, out: outPath}
	if got := cmd.Execute(context.Background(), nil); got != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", got)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected output playlist to exist: %v", err)
	}
}
