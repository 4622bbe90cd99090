// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package remoteapi defines the external remote-catalogue interface the
// core consumes and a concrete client shaped like a Spotify-
// style Web API.
package remoteapi

import (
	"context"
	"errors"
)

// Kind discriminates the item type a remote-API call operates on.
type Kind int

const (
	KindTrack Kind = iota
	KindAlbum
	KindPlaylist
	KindArtist
)

// ErrNotFound is returned when a remote lookup finds nothing.
var ErrNotFound = errors.New("remoteapi: not found")

// ErrAmbiguous reports an opaque value that fits more than one ID type.
// HTTPClient.Convert does not return it.
var ErrAmbiguous = errors.New("remoteapi: ambiguous identifier")

// Response is an opaque remote-native object: a track, album, or playlist
// payload. HTTPClient populates it with the Track, Album and Playlist
// value types from types.go; callers type-assert to those types.
type Response interface{}

// Client is the remote-API contract the core depends on. Every call that
// performs I/O accepts a context; the read calls (Query, GetItems,
// GetUserItems, GetTracks) also take a useCache hint, and concrete clients
// decide how to honor it.
type Client interface {
	Query(ctx context.Context, query string, kind Kind, limit int, useCache bool) ([]Response, error)
	GetItems(ctx context.Context, values []string, kind Kind, limit int, extend bool, useCache bool) ([]Response, error)
	GetUserItems(ctx context.Context, user string, kind Kind, limit int, useCache bool) ([]Response, error)
	GetTracks(ctx context.Context, values []string, features bool, limit int, useCache bool) ([]Response, error)

	CreatePlaylist(ctx context.Context, name string, public, collaborative bool) (string, error)
	AddToPlaylist(ctx context.Context, playlist string, items []string, limit int, skipDupes bool) (int, error)
	DeletePlaylist(ctx context.Context, playlist string) (string, error)
	ClearFromPlaylist(ctx context.Context, playlist string, items []string, limit int) (int, error)
	GetPlaylistURL(ctx context.Context, playlistOrName string) (string, error)

	ValidateIDType(value string, kind Kind) bool
	Convert(value string, kind Kind, typeIn, typeOut string) (string, error)
}
