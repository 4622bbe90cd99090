// Copyright 2024 The Musify Authors.
// All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalkCollectsPerFileDecodeErrorsAndSkipsNonMusic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "song.mp3"), []byte("not a real mp3"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	tracks, errs, err := Walk(dir, 0)
	if err != nil {
		t.Fatalf("Walk returned a fatal error: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("got %d tracks, want 0 (garbage mp3 should fail to decode)", len(tracks))
	}
	if len(errs) != 1 {
		t.Errorf("got %d per-file errors, want 1 (only song.mp3 should be attempted)", len(errs))
	}
}

func TestWalkEmptyDir(t *testing.T) {
	dir := t.TempDir()
	tracks, errs, err := Walk(dir, 0)
	if err != nil || len(tracks) != 0 || len(errs) != 0 {
		t.Errorf("Walk(empty dir) = %v, %v, %v; want 0, 0, nil", tracks, errs, err)
	}
}
