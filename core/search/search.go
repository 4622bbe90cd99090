// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package search implements the Searcher: drives the remote
// query endpoint to populate match candidates, then calls the Matcher to
// resolve local tracks and albums to remote URIs.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/match"
	"github.com/musify-sync/musify/core/tagnorm"
	"github.com/musify-sync/musify/remoteapi"
)

// Settings is a per-kind (track or album) configuration record:
// which clean-tag fields feed each of the three query-fallback
// tiers, which fields the Matcher scores on, and the score thresholds.
type Settings struct {
	SearchFields1 []string
	SearchFields2 []string
	SearchFields3 []string
	MatchFields   []match.Field
	ResultCount   int
	MinScore      float64
	MaxScore      float64
}

// DefaultItemsSettings returns the settings used for loose track searches.
func DefaultItemsSettings() Settings {
	return Settings{
		SearchFields1: []string{"name", "artist"},
		SearchFields2: []string{"name", "album"},
		SearchFields3: []string{"name"},
		MatchFields:   []match.Field{match.FieldName, match.FieldArtist, match.FieldAlbum, match.FieldLength},
		ResultCount:   10,
		MinScore:      0.1,
		MaxScore:      0.8,
	}
}

// DefaultAlbumSettings returns the settings used for whole-album searches
// on non-compilation albums.
func DefaultAlbumSettings() Settings {
	return Settings{
		SearchFields1: []string{"name", "artist"},
		SearchFields2: []string{"name"},
		SearchFields3: []string{"artist"},
		MatchFields:   []match.Field{match.FieldName, match.FieldArtist, match.FieldItems},
		ResultCount:   10,
		MinScore:      0.1,
		MaxScore:      0.8,
	}
}

// Result is the outcome of searching one collection.
type Result struct {
	Matched   []*item.LocalTrack
	Unmatched []*item.LocalTrack
	Skipped   []*item.LocalTrack
	Traces    []match.Trace
}

func cleanFields(c item.CleanTags) map[string]string {
	return map[string]string{
		"name":   c.Name,
		"artist": c.Artist,
		"album":  c.Album,
	}
}

// buildQuery joins the non-empty field values named by tier, in order.
func buildQuery(fields map[string]string, tier []string) string {
	var parts []string
	for _, f := range tier {
		if v := fields[f]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Searcher drives remoteapi queries and the Matcher for local tracks and
// albums. TagConfig is used for tagging remote results with comparable clean
// tags, matching the same normalization the local library applies.
type Searcher struct {
	Client    remoteapi.Client
	Matcher   *match.Matcher
	TagConfig tagnorm.Config
	ItemsCfg  Settings
	AlbumCfg  Settings
}

// New builds a Searcher with the default settings.
func New(c remoteapi.Client) *Searcher {
	return &Searcher{
		Client:    c,
		Matcher:   match.New(),
		TagConfig: tagnorm.DefaultConfig(),
		ItemsCfg:  DefaultItemsSettings(),
		AlbumCfg:  DefaultAlbumSettings(),
	}
}

func (s *Searcher) cleanRemote(name, artist, album string) item.CleanTags {
	return tagnorm.Clean(tagnorm.Source{Name: name, Title: name, Artist: artist, Album: album}, s.TagConfig)
}

// cleanRemoteAlbum leaves Title empty so the album's name is cleaned as
// an album (dash preprocess, "ep" stoplist), not as a track title.
func (s *Searcher) cleanRemoteAlbum(name, artist string) item.CleanTags {
	return tagnorm.Clean(tagnorm.Source{Name: name, Artist: artist, Album: name}, s.TagConfig)
}

// toRemoteTrack converts a remoteapi.Response (a remoteapi.Track) into the
// core's item.RemoteTrack, populating clean tags with the same normalizer
// local tracks use so the Matcher compares like with like.
func (s *Searcher) toRemoteTrack(resp remoteapi.Response) (*item.RemoteTrack, bool) {
	t, ok := resp.(remoteapi.Track)
	if !ok {
		return nil, false
	}
	var artists []string
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	rawArtist := strings.Join(artists, "; ")
	rt := &item.RemoteTrack{
		Identity:   item.Identity{Name: t.Name, URI: t.URI, HasURI: item.URIValid},
		Artists:    artists,
		Album:      t.Album.Name,
		TrackTotal: t.Album.TotalTracks,
		DiscNumber: t.DiscNumber,
		Length:     float64(t.DurationMs) / 1000,
		RawName:    t.Name,
		RawArtist:  rawArtist,
		RawAlbum:   t.Album.Name,
	}
	rt.SetCleanTags(s.cleanRemote(t.Name, rawArtist, t.Album.Name))
	return rt, true
}

func (s *Searcher) toRemoteAlbum(resp remoteapi.Response) (*item.RemoteAlbum, bool) {
	a, ok := resp.(remoteapi.Album)
	if !ok {
		return nil, false
	}
	var artists []string
	for _, ar := range a.Artists {
		artists = append(artists, ar.Name)
	}
	rawArtist := strings.Join(artists, "; ")
	ra := &item.RemoteAlbum{
		Identity:   item.Identity{Name: a.Name, URI: a.URI, HasURI: item.URIValid},
		Artists:    artists,
		TrackTotal: a.TotalTracks,
	}
	for _, t := range a.Tracks {
		rt, _ := s.toRemoteTrack(t)
		if rt != nil {
			ra.Tracks = append(ra.Tracks, rt)
		}
	}
	ra.SetCleanTags(s.cleanRemoteAlbum(a.Name, rawArtist))
	return ra, true
}

// ReloadRemoteTrack re-fetches rt's response by URI and replaces its
// fields in place, including clean tags. Returns remoteapi.ErrNotFound
// when the remote service no longer knows the URI.
func (s *Searcher) ReloadRemoteTrack(ctx context.Context, rt *item.RemoteTrack) error {
	resps, err := s.Client.GetItems(ctx, []string{rt.ItemURI()}, remoteapi.KindTrack, 1, false, false)
	if err != nil {
		return err
	}
	for _, r := range resps {
		if fresh, ok := s.toRemoteTrack(r); ok && fresh.ItemURI() == rt.ItemURI() {
			fresh.Response = r
			*rt = *fresh
			return nil
		}
	}
	return remoteapi.ErrNotFound
}

// searchTracksTiered runs the three-tier query fallback and
// returns the first tier whose query returns results.
func (s *Searcher) searchTracksTiered(ctx context.Context, fields map[string]string, cfg Settings) ([]*item.RemoteTrack, error) {
	for _, tier := range [][]string{cfg.SearchFields1, cfg.SearchFields2, cfg.SearchFields3} {
		q := buildQuery(fields, tier)
		if q == "" {
			continue
		}
		resps, err := s.Client.Query(ctx, q, remoteapi.KindTrack, cfg.ResultCount, true)
		if err != nil {
			return nil, err
		}
		var out []*item.RemoteTrack
		for _, r := range resps {
			if rt, ok := s.toRemoteTrack(r); ok {
				out = append(out, rt)
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return nil, nil
}

// matchTrack runs the three-tier search then the Matcher for a single
// track, setting its URI on success.
func (s *Searcher) matchTrack(ctx context.Context, t *item.LocalTrack) (bool, error) {
	candidates, err := s.searchTracksTiered(ctx, cleanFields(t.CleanTags()), s.ItemsCfg)
	if err != nil {
		return false, err
	}
	if len(candidates) == 0 {
		return false, nil
	}
	taggables := make([]match.Taggable, len(candidates))
	for i, c := range candidates {
		taggables[i] = RemoteTrackViewOf(c)
	}
	best, _, ok := s.Matcher.ScoreMatch(match.TrackView{LocalTrack: t}, taggables, s.ItemsCfg.MinScore, s.ItemsCfg.MaxScore, s.ItemsCfg.MatchFields)
	if !ok {
		return false, nil
	}
	rt := best.(match.RemoteTrackView)
	t.SetURI(rt.ItemURI())
	return true, nil
}

// RemoteTrackViewOf is a small indirection so this package doesn't need to
// repeat match.RemoteTrackView's struct literal syntax at every call site.
func RemoteTrackViewOf(t *item.RemoteTrack) match.RemoteTrackView { return match.RemoteTrackView{RemoteTrack: t} }

// SearchItems runs ITEMS-kind search over a loose set of tracks: the
// compilation/unknown-album dispatch path. Tracks whose URI state is
// already known (a URI, or marked unavailable) are skipped.
func (s *Searcher) SearchItems(ctx context.Context, tracks []*item.LocalTrack) (Result, error) {
	var res Result
	for _, t := range tracks {
		if t.ItemHasURI() != item.URIUnknown {
			res.Skipped = append(res.Skipped, t)
			continue
		}
		matched, err := s.matchTrack(ctx, t)
		if err != nil {
			return res, err
		}
		if matched {
			res.Matched = append(res.Matched, t)
		} else {
			res.Unmatched = append(res.Unmatched, t)
		}
	}
	return res, nil
}

// SearchAlbum implements the non-compilation album dispatch:
// search the album as a unit, reload the winning candidate's tracks, then
// match any still-unmatched source tracks against that candidate's track
// list individually.
func (s *Searcher) SearchAlbum(ctx context.Context, name, artist string, tracks []*item.LocalTrack) (Result, error) {
	var res Result
	var toSearch []*item.LocalTrack
	for _, t := range tracks {
		if t.ItemHasURI() != item.URIUnknown {
			res.Skipped = append(res.Skipped, t)
		} else {
			toSearch = append(toSearch, t)
		}
	}
	if len(toSearch) == 0 {
		return res, nil
	}

	clean := s.cleanRemoteAlbum(name, artist)
	fields := map[string]string{"name": clean.Name, "artist": clean.Artist}
	var candidates []*item.RemoteAlbum
	for _, tier := range [][]string{s.AlbumCfg.SearchFields1, s.AlbumCfg.SearchFields2, s.AlbumCfg.SearchFields3} {
		q := buildQuery(fields, tier)
		if q == "" {
			continue
		}
		resps, err := s.Client.Query(ctx, q, remoteapi.KindAlbum, s.AlbumCfg.ResultCount, true)
		if err != nil {
			return res, err
		}
		for _, r := range resps {
			if ra, ok := s.toRemoteAlbum(r); ok {
				candidates = append(candidates, ra)
			}
		}
		if len(candidates) > 0 {
			break
		}
	}
	if len(candidates) == 0 {
		res.Unmatched = toSearch
		return res, nil
	}

	// Candidate ordering: sort by |candidate.track_total - len(source)|
	// ascending before scoring.
	sort.SliceStable(candidates, func(i, j int) bool {
		return abs(candidates[i].TrackTotal-len(toSearch)) < abs(candidates[j].TrackTotal-len(toSearch))
	})

	source := match.LocalAlbum{Name: name, Artist: artist, Clean: clean, Tracks: toSearch}
	taggables := make([]match.Taggable, len(candidates))
	for i, c := range candidates {
		taggables[i] = match.AlbumView{RemoteAlbum: c}
	}
	best, traces, ok := s.Matcher.ScoreMatch(source, taggables, s.AlbumCfg.MinScore, s.AlbumCfg.MaxScore, s.AlbumCfg.MatchFields)
	res.Traces = append(res.Traces, traces...)
	if !ok {
		res.Unmatched = toSearch
		return res, nil
	}
	bestAlbum := best.(match.AlbumView)

	resps, err := s.Client.GetItems(ctx, []string{bestAlbum.Identity.URI}, remoteapi.KindAlbum, 1, true, true)
	var albumTracks []*item.RemoteTrack
	if err == nil {
		for _, r := range resps {
			if ra, ok := s.toRemoteAlbum(r); ok {
				albumTracks = ra.Tracks
				break
			}
		}
	}
	if len(albumTracks) == 0 {
		albumTracks = bestAlbum.Tracks
	}
	candTaggables := make([]match.Taggable, len(albumTracks))
	for i, c := range albumTracks {
		candTaggables[i] = RemoteTrackViewOf(c)
	}

	for _, t := range toSearch {
		itemBest, itemTraces, ok := s.Matcher.ScoreMatch(match.TrackView{LocalTrack: t}, candTaggables, 0.1, 0.8, []match.Field{match.FieldName})
		res.Traces = append(res.Traces, itemTraces...)
		if !ok {
			res.Unmatched = append(res.Unmatched, t)
			continue
		}
		rt := itemBest.(match.RemoteTrackView)
		t.SetURI(rt.ItemURI())
		res.Matched = append(res.Matched, t)
	}
	return res, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
