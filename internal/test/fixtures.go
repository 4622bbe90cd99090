// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package test holds fixtures shared by the musify packages' tests.
package test

import (
	"context"

	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/tagnorm"
	"github.com/musify-sync/musify/remoteapi"
)

// FakeClient is a minimal remoteapi.Client test double: it returns a fixed
// track/album/playlist result set regardless of the query, and records
// playlist create/add/clear/delete calls so tests can assert on them.
type FakeClient struct {
	Tracks    []remoteapi.Track
	Albums    []remoteapi.Album
	Playlists []remoteapi.Playlist

	Created []string // names passed to CreatePlaylist
	Added   map[string][]string
	Cleared map[string][]string
	Deleted []string
}

// NewFakeClient returns a FakeClient with its recording maps initialized.
func NewFakeClient() *FakeClient {
	return &FakeClient{Added: map[string][]string{}, Cleared: map[string][]string{}}
}

func (f *FakeClient) Query(ctx context.Context, query string, kind remoteapi.Kind, limit int, useCache bool) ([]remoteapi.Response, error) {
	var out []remoteapi.Response
	switch kind {
	case remoteapi.KindAlbum:
		for _, a := range f.Albums {
			out = append(out, a)
		}
	case remoteapi.KindPlaylist:
		for _, p := range f.Playlists {
			out = append(out, p)
		}
	default:
		for _, t := range f.Tracks {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *FakeClient) GetItems(ctx context.Context, values []string, kind remoteapi.Kind, limit int, extend, useCache bool) ([]remoteapi.Response, error) {
	var out []remoteapi.Response
	switch kind {
	case remoteapi.KindPlaylist:
		for _, p := range f.Playlists {
			for _, v := range values {
				if p.URI == v {
					out = append(out, p)
				}
			}
		}
	case remoteapi.KindAlbum:
		for _, a := range f.Albums {
			out = append(out, a)
		}
	default:
		for _, t := range f.Tracks {
			for _, v := range values {
				if t.URI == v {
					out = append(out, t)
				}
			}
		}
	}
	return out, nil
}

func (f *FakeClient) GetUserItems(ctx context.Context, user string, kind remoteapi.Kind, limit int, useCache bool) ([]remoteapi.Response, error) {
	return f.Query(ctx, "", kind, limit, useCache)
}

func (f *FakeClient) GetTracks(ctx context.Context, values []string, features bool, limit int, useCache bool) ([]remoteapi.Response, error) {
	return f.GetItems(ctx, values, remoteapi.KindTrack, limit, false, useCache)
}

func (f *FakeClient) CreatePlaylist(ctx context.Context, name string, public, collaborative bool) (string, error) {
	f.Created = append(f.Created, name)
	uri := "fake:playlist:" + name
	f.Playlists = append(f.Playlists, remoteapi.Playlist{Name: name, URI: uri})
	return uri, nil
}

func (f *FakeClient) AddToPlaylist(ctx context.Context, playlist string, items []string, limit int, skipDupes bool) (int, error) {
	f.Added[playlist] = append(f.Added[playlist], items...)
	for i, p := range f.Playlists {
		if p.URI == playlist {
			for _, uri := range items {
				f.Playlists[i].Tracks = append(f.Playlists[i].Tracks, remoteapi.PlaylistTrack{
					Track: remoteapi.Track{Name: uri, URI: uri},
				})
			}
		}
	}
	return len(items), nil
}

func (f *FakeClient) DeletePlaylist(ctx context.Context, playlist string) (string, error) {
	f.Deleted = append(f.Deleted, playlist)
	var kept []remoteapi.Playlist
	for _, p := range f.Playlists {
		if p.URI != playlist {
			kept = append(kept, p)
		}
	}
	f.Playlists = kept
	return playlist, nil
}

func (f *FakeClient) ClearFromPlaylist(ctx context.Context, playlist string, items []string, limit int) (int, error) {
	f.Cleared[playlist] = append(f.Cleared[playlist], items...)
	remove := map[string]bool{}
	for _, uri := range items {
		remove[uri] = true
	}
	for i, p := range f.Playlists {
		if p.URI != playlist {
			continue
		}
		var kept []remoteapi.PlaylistTrack
		for _, pt := range p.Tracks {
			if !remove[pt.Track.URI] {
				kept = append(kept, pt)
			}
		}
		f.Playlists[i].Tracks = kept
		return len(items), nil
	}
	return 0, nil
}

func (f *FakeClient) GetPlaylistURL(ctx context.Context, playlistOrName string) (string, error) {
	return playlistOrName, nil
}

func (f *FakeClient) ValidateIDType(value string, kind remoteapi.Kind) bool { return value != "" }

func (f *FakeClient) Convert(value string, kind remoteapi.Kind, typeIn, typeOut string) (string, error) {
	return value, nil
}

// NewLocalTrack builds a LocalTrack with its clean tags already populated,
// the way every core package's tests build fixtures inline; centralized
// here so CLI-level tests don't repeat it.
func NewLocalTrack(title, artist, album string, length float64) *item.LocalTrack {
	t := &item.LocalTrack{
		Identity: item.Identity{Name: title},
		Tags:     item.Tags{Title: title, Artist: artist, Album: album, Length: length},
	}
	t.SetCleanTags(tagnorm.Clean(tagnorm.Source{
		Name: title, Title: title, Artist: artist, Album: album, Length: length,
	}, tagnorm.DefaultConfig()))
	return t
}
