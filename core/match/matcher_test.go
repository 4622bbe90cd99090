// Copyright 2024 The Musify Authors.
// All rights reserved.

package match

import (
	"testing"

	"github.com/musify-sync/musify/core/item"
)

type fakeItem struct {
	clean   item.CleanTags
	name    string
	artist  string
	album   string
	artists []string
	items   []Taggable
}

func (f fakeItem) CleanTags() item.CleanTags { return f.clean }
func (f fakeItem) RawName() string           { return f.name }
func (f fakeItem) RawArtist() string         { return f.artist }
func (f fakeItem) RawAlbum() string          { return f.album }
func (f fakeItem) ArtistList() []string      { return f.artists }
func (f fakeItem) Items() []Taggable         { return f.items }

func TestScoreNameWithReductionPenalty(t *testing.T) {
	source := fakeItem{clean: item.CleanTags{Name: "love song"}, name: "Love Song"}
	cand := fakeItem{clean: item.CleanTags{Name: "love song live"}, name: "Love Song Live"}
	got := scoreName(source, cand)
	if got != 0.5 {
		t.Fatalf("scoreName = %v, want 0.5 (1.0 overlap - 0.5 reduction)", got)
	}
}

func TestScoreArtistWeighting(t *testing.T) {
	source := fakeItem{clean: item.CleanTags{Artist: "alpha beta"}}
	cand := fakeItem{artists: []string{"alpha", "gamma"}}
	got := scoreArtist(source, cand)
	want := 0.5
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("scoreArtist = %v, want %v", got, want)
	}
}

func TestScoreLength(t *testing.T) {
	source := fakeItem{clean: item.CleanTags{Length: 120}}
	cand := fakeItem{clean: item.CleanTags{Length: 125}}
	got := scoreLength(source, cand)
	want := 115.0 / 120.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("scoreLength = %v, want %v", got, want)
	}
}

func TestKaraokeFilterRejectsCandidate(t *testing.T) {
	m := New()
	source := fakeItem{clean: item.CleanTags{Name: "song"}, name: "Song"}
	candidates := []Taggable{
		fakeItem{clean: item.CleanTags{Name: "song"}, name: "Song (Karaoke Version)"},
	}
	_, _, ok := m.ScoreMatch(source, candidates, 0.1, 0.8, []Field{FieldName})
	if ok {
		t.Fatal("expected karaoke candidate to be rejected when AllowKaraoke is false")
	}
}

func TestScoreMatchPicksBestAboveMin(t *testing.T) {
	m := New()
	source := fakeItem{clean: item.CleanTags{Name: "love song", Artist: "alpha"}, name: "Love Song", artist: "Alpha"}
	low := fakeItem{clean: item.CleanTags{Name: "unrelated"}, name: "Unrelated", artists: []string{"zzz"}}
	high := fakeItem{clean: item.CleanTags{Name: "love song", Artist: "alpha"}, name: "Love Song", artists: []string{"alpha"}}
	got, _, ok := m.ScoreMatch(source, []Taggable{low, high}, 0.1, 0.95, []Field{FieldName, FieldArtist})
	if !ok {
		t.Fatal("expected a match above min_score")
	}
	if got.(fakeItem).name != "Love Song" {
		t.Fatalf("expected the high-scoring candidate, got %+v", got)
	}
}

func TestScoreMatchEmptyCandidatesReturnsNoMatch(t *testing.T) {
	m := New()
	source := fakeItem{clean: item.CleanTags{Name: "x"}, name: "x"}
	_, _, ok := m.ScoreMatch(source, nil, 0.1, 0.8, nil)
	if ok {
		t.Fatal("expected no match for empty candidate list")
	}
}
