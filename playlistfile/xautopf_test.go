// Copyright 2024 The Musify Authors.
// All rights reserved.

package playlistfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/musify-sync/musify/core/auto"
	"github.com/musify-sync/musify/core/compare"
	"github.com/musify-sync/musify/core/limit"
)

const sampleXautopf = `<?xml version="1.0"?>
<SmartPlaylist>
  <Source>
    <Description>Recent rock</Description>
    <Conditions CombineMethod="All">
      <Condition Field="GenreSplits" Comparison="is" Value="rock"/>
      <Condition Field="Year" Comparison="in_range" Value="2000"/>
    </Conditions>
    <Limit Enabled="1" Count="25" Type="items" SelectedBy="most_recently_added"/>
    <SortBy Field="Title" Direction="Ascending"/>
    <ExceptionsInclude>/lib/a.mp3|/lib/b.mp3</ExceptionsInclude>
    <Exceptions>/lib/c.mp3</Exceptions>
  </Source>
</SmartPlaylist>`

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "rule.xautopf")
	if err := os.WriteFile(p, []byte(sampleXautopf), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestReadParsesExceptionsAndConditions(t *testing.T) {
	p := writeSample(t, t.TempDir())
	sp, err := Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if sp.Source.Description != "Recent rock" {
		t.Errorf("Description = %q", sp.Source.Description)
	}
	if sp.Source.ExceptionsInclude != "/lib/a.mp3|/lib/b.mp3" {
		t.Errorf("ExceptionsInclude = %q", sp.Source.ExceptionsInclude)
	}
	if sp.Source.Conditions == nil || len(sp.Source.Conditions.Condition) != 2 {
		t.Fatalf("Conditions = %+v", sp.Source.Conditions)
	}
}

func TestToRuleBuildsComparersLimiterAndSort(t *testing.T) {
	p := writeSample(t, t.TempDir())
	sp, err := Read(p)
	if err != nil {
		t.Fatal(err)
	}
	rule, err := ToRule(sp, auto.PathConfig{LibraryFolder: "/lib"})
	if err != nil {
		t.Fatal(err)
	}
	if !rule.MatchAll {
		t.Error("CombineMethod=All should set MatchAll")
	}
	if len(rule.Comparers) != 2 {
		t.Fatalf("got %d comparers, want 2", len(rule.Comparers))
	}
	if rule.Comparers[0].Field != compare.FieldGenres {
		t.Errorf("first comparer field = %v", rule.Comparers[0].Field)
	}
	if rule.Limiter == nil || rule.Limiter.Max != 25 || rule.Limiter.Kind != limit.KindItems {
		t.Fatalf("Limiter = %+v", rule.Limiter)
	}
	if rule.Limiter.PreSort != limit.PreSortMostRecentlyAdded {
		t.Errorf("PreSort = %v", rule.Limiter.PreSort)
	}
	if len(rule.Sort) != 1 || rule.Sort[0].Descending {
		t.Fatalf("Sort = %+v", rule.Sort)
	}
	if len(rule.IncludePaths) != 2 || len(rule.ExcludePaths) != 1 {
		t.Fatalf("IncludePaths=%v ExcludePaths=%v", rule.IncludePaths, rule.ExcludePaths)
	}
}

func TestSaveOnlyRewritesExceptions(t *testing.T) {
	dir := t.TempDir()
	p := writeSample(t, dir)
	sp, err := Read(p)
	if err != nil {
		t.Fatal(err)
	}
	wantDescription := sp.Source.Description

	if err := Save(p, sp, []string{"/lib/new.mp3"}, nil); err != nil {
		t.Fatal(err)
	}

	reread, err := Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if reread.Source.ExceptionsInclude != "/lib/new.mp3" {
		t.Errorf("ExceptionsInclude after save = %q", reread.Source.ExceptionsInclude)
	}
	if reread.Source.Exceptions != "" {
		t.Errorf("Exceptions after save = %q, want empty", reread.Source.Exceptions)
	}
	if reread.Source.Description != wantDescription {
		t.Errorf("Description changed after save: %q != %q", reread.Source.Description, wantDescription)
	}
	if reread.Source.Conditions == nil || len(reread.Source.Conditions.Condition) != 2 {
		t.Errorf("Conditions lost after save: %+v", reread.Source.Conditions)
	}
}

func TestM3URoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "mix.m3u")
	paths := []string{"/other/a.mp3", "/lib/b.mp3"}
	cfg := auto.PathConfig{LibraryFolder: "/lib", OtherFolders: []string{"/other"}}

	if err := WriteM3U(p, paths, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := ReadM3U(p)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/lib/a.mp3", "/lib/b.mp3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadM3USkipsBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "mix.m3u")
	content := "#EXTM3U\n\n/lib/a.mp3\n  \n/lib/b.mp3\n"
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadM3U(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "/lib/a.mp3" || got[1] != "/lib/b.mp3" {
		t.Fatalf("got %v", got)
	}
}
