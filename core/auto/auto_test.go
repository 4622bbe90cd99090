// Copyright 2024 The Musify Authors.
// All rights reserved.

package auto

import (
	"testing"

	"github.com/musify-sync/musify/core/compare"
	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/limit"
)

func track(path, album string, year int) *item.LocalTrack {
	t := &item.LocalTrack{Path: path, Tags: item.Tags{Album: album, Year: year}}
	return t
}

func TestEvaluateCombinesComparersIncludesExcludes(t *testing.T) {
	albumIs, err := compare.NewComparer(compare.FieldAlbum, "is", []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	yearRange, err := compare.NewComparer(compare.FieldYear, "in_range", []string{"2000", "2010"})
	if err != nil {
		t.Fatal(err)
	}

	a := track("/lib/a.mp3", "y", 1990)
	b := track("/lib/b.mp3", "y", 1990)
	c := track("/lib/c.mp3", "x", 2005)
	d := track("/lib/d.mp3", "x", 1999)
	universe := []*item.LocalTrack{a, b, c, d}

	rule := Rule{
		Comparers:    []*compare.Comparer{albumIs, yearRange},
		MatchAll:     true,
		IncludePaths: []string{"/lib/a.mp3"},
		ExcludePaths: []string{"/lib/b.mp3"},
		PathConfig:   PathConfig{LibraryFolder: "/lib"},
	}

	result, err := Evaluate(universe, nil, rule)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 2 || result[0] != a || result[1] != c {
		t.Fatalf("got %v tracks, want [a, c]", pathsOf(result))
	}
}

func pathsOf(tracks []*item.LocalTrack) []string {
	var out []string
	for _, t := range tracks {
		out = append(out, t.Path)
	}
	return out
}

func TestEvaluateTrivialComparersReturnsIncludesMinusExcludes(t *testing.T) {
	a := track("/lib/a.mp3", "", 0)
	b := track("/lib/b.mp3", "", 0)
	universe := []*item.LocalTrack{a, b}

	rule := Rule{
		IncludePaths: []string{"/lib/a.mp3", "/lib/b.mp3"},
		ExcludePaths: []string{"/lib/b.mp3"},
		PathConfig:   PathConfig{LibraryFolder: "/lib"},
	}
	result, err := Evaluate(universe, nil, rule)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 1 || result[0] != a {
		t.Fatalf("got %v, want [a]", pathsOf(result))
	}
}

func TestEvaluateAppliesLimiterAndSorter(t *testing.T) {
	a := track("/lib/a.mp3", "X", 0)
	b := track("/lib/b.mp3", "Y", 0)
	c := track("/lib/c.mp3", "Z", 0)
	universe := []*item.LocalTrack{a, b, c}

	rule := Rule{
		IncludePaths: []string{"/lib/a.mp3", "/lib/b.mp3", "/lib/c.mp3"},
		PathConfig:   PathConfig{LibraryFolder: "/lib"},
		Limiter:      &limit.Limiter{Max: 2, Kind: limit.KindItems},
		Sort:         []SortField{{Field: compare.FieldAlbum, Descending: true}},
	}
	result, err := Evaluate(universe, nil, rule)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 2 {
		t.Fatalf("limiter didn't apply: got %d tracks", len(result))
	}
	if result[0] != b || result[1] != a {
		t.Fatalf("sorter didn't reorder descending by album: got %v", pathsOf(result))
	}
}

func TestNormalizePathsExcludesTakePrecedence(t *testing.T) {
	cfg := PathConfig{LibraryFolder: "/lib"}
	includes, excludes := NormalizePaths([]string{"/lib/a.mp3", "/lib/b.mp3"}, []string{"/lib/b.mp3"}, cfg)
	if len(includes) != 1 || includes[0] != "/lib/a.mp3" {
		t.Fatalf("includes = %v, want only a.mp3", includes)
	}
	if len(excludes) != 1 {
		t.Fatalf("excludes = %v", excludes)
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	cfg := PathConfig{LibraryFolder: "/lib", OtherFolders: []string{"/other"}}
	p := "/other/sub/Track.mp3"
	once := cfg.NormalizePath(p)
	twice := cfg.NormalizePath(once)
	if once != twice {
		t.Fatalf("NormalizePath not idempotent: %q vs %q", once, twice)
	}
}
