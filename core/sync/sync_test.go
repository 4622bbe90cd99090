// Copyright 2024 The Musify Authors.
// All rights reserved.

package sync

import (
	"context"
	"testing"

	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/remoteapi"
)

// stubClient is a minimal remoteapi.Client test double that records
// add/remove calls against a playlist's URI and keeps its remote URI set in
// sync, so idempotence across consecutive Sync calls can be verified.
type stubClient struct {
	remote      map[string][]string
	addCalls    [][]string
	removeCalls [][]string
}

func (s *stubClient) Query(ctx context.Context, query string, kind remoteapi.Kind, limit int, useCache bool) ([]remoteapi.Response, error) {
	return nil, nil
}
func (s *stubClient) GetItems(ctx context.Context, values []string, kind remoteapi.Kind, limit int, extend, useCache bool) ([]remoteapi.Response, error) {
	return nil, nil
}
func (s *stubClient) GetUserItems(ctx context.Context, user string, kind remoteapi.Kind, limit int, useCache bool) ([]remoteapi.Response, error) {
	return nil, nil
}
func (s *stubClient) GetTracks(ctx context.Context, values []string, features bool, limit int, useCache bool) ([]remoteapi.Response, error) {
	return nil, nil
}
func (s *stubClient) CreatePlaylist(ctx context.Context, name string, public, collaborative bool) (string, error) {
	return name, nil
}
func (s *stubClient) AddToPlaylist(ctx context.Context, playlist string, items []string, limit int, skipDupes bool) (int, error) {
	s.addCalls = append(s.addCalls, items)
	s.remote[playlist] = append(s.remote[playlist], items...)
	return len(items), nil
}
func (s *stubClient) DeletePlaylist(ctx context.Context, playlist string) (string, error) {
	delete(s.remote, playlist)
	return playlist, nil
}
func (s *stubClient) ClearFromPlaylist(ctx context.Context, playlist string, items []string, limit int) (int, error) {
	s.removeCalls = append(s.removeCalls, items)
	remove := map[string]bool{}
	for _, u := range items {
		remove[u] = true
	}
	var kept []string
	for _, u := range s.remote[playlist] {
		if !remove[u] {
			kept = append(kept, u)
		}
	}
	s.remote[playlist] = kept
	return len(items), nil
}
func (s *stubClient) GetPlaylistURL(ctx context.Context, playlistOrName string) (string, error) {
	return playlistOrName, nil
}
func (s *stubClient) ValidateIDType(value string, kind remoteapi.Kind) bool { return true }
func (s *stubClient) Convert(value string, kind remoteapi.Kind, typeIn, typeOut string) (string, error) {
	return value, nil
}

func newPlaylist(uri string, trackURIs []string) *item.RemotePlaylist {
	pl := &item.RemotePlaylist{Identity: item.Identity{Name: "p", URI: uri, HasURI: item.URIValid}}
	for _, u := range trackURIs {
		pl.Tracks = append(pl.Tracks, &item.RemoteTrack{Identity: item.Identity{URI: u, HasURI: item.URIValid}})
	}
	return pl
}

func localTracks(uris ...string) []*item.LocalTrack {
	var out []*item.LocalTrack
	for _, u := range uris {
		t := &item.LocalTrack{}
		t.SetURI(u)
		out = append(out, t)
	}
	return out
}

func TestSyncModeSync(t *testing.T) {
	c := &stubClient{remote: map[string][]string{"p": {"x", "y", "z"}}}
	pl := newPlaylist("p", []string{"x", "y", "z"})
	items := localTracks("y", "z", "w")

	res, err := Sync(context.Background(), c, pl, items, ModeSync, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Removed != 1 || res.Added != 1 || res.Unchanged != 2 || res.Start != 3 || res.Final != 3 || res.Difference != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSyncIdempotent(t *testing.T) {
	c := &stubClient{remote: map[string][]string{"p": {"x", "y", "z"}}}
	pl := newPlaylist("p", []string{"x", "y", "z"})
	items := localTracks("y", "z", "w")

	if _, err := Sync(context.Background(), c, pl, items, ModeSync, false); err != nil {
		t.Fatal(err)
	}
	// Rebuild the playlist view to reflect what the stub client now holds,
	// as a real reload would, then sync again with the same items.
	pl2 := newPlaylist("p", c.remote["p"])
	res, err := Sync(context.Background(), c, pl2, items, ModeSync, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Added != 0 || res.Removed != 0 || res.Unchanged != 3 {
		t.Fatalf("second sync should be a no-op, got %+v", res)
	}
}

func TestSyncModeNewNeverRemoves(t *testing.T) {
	c := &stubClient{remote: map[string][]string{"p": {"x"}}}
	pl := newPlaylist("p", []string{"x"})
	items := localTracks("y")

	res, err := Sync(context.Background(), c, pl, items, ModeNew, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Removed != 0 || res.Added != 1 {
		t.Fatalf("mode new must never remove: %+v", res)
	}
	if len(c.removeCalls) != 0 {
		t.Fatal("mode new must never call ClearFromPlaylist")
	}
}

func TestSyncDryRunCountsExact(t *testing.T) {
	c := &stubClient{remote: map[string][]string{"p": {"x", "y"}}}
	pl := newPlaylist("p", []string{"x", "y"})
	items := localTracks("y", "z")

	res, err := Sync(context.Background(), c, pl, items, ModeSync, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Removed != 1 || res.Added != 1 {
		t.Fatalf("dry run should still report exact counts: %+v", res)
	}
	if len(c.removeCalls) != 0 || len(c.addCalls) != 0 {
		t.Fatal("dry run must not call the API")
	}
}

func TestLibrarySyncCreatesMissingPlaylist(t *testing.T) {
	c := &stubClient{remote: map[string][]string{}}
	want := map[string][]*item.LocalTrack{"new-list": localTracks("a", "b")}

	results, err := LibrarySync(context.Background(), c, map[string]*item.RemotePlaylist{}, want, ModeNew, false)
	if err != nil {
		t.Fatal(err)
	}
	res, ok := results["new-list"]
	if !ok {
		t.Fatal("missing result for new-list")
	}
	if res.Added != 2 || res.Start != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}
