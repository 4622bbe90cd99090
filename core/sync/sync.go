// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package sync implements the playlist sync engine: computing
// add/remove/unchanged sets between a local item-set's intent and a remote
// playlist's current tracks, and executing that diff in one of three modes.
package sync

import (
	"context"

	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/remoteapi"
)

// Mode selects the sync policy.
type Mode int

const (
	// ModeNew adds only items not already on the remote playlist. Never
	// removes anything.
	ModeNew Mode = iota
	// ModeRefresh clears all remote items, then adds everything in items.
	ModeRefresh
	// ModeSync clears remote items not in items, then adds items not
	// already remote.
	ModeSync
)

// Result is the outcome of one sync call.
type Result struct {
	Start      int
	Added      int
	Removed    int
	Unchanged  int
	Difference int
	Final      int
}

// AddToPlaylistLimit bounds how many URIs are sent to the remote API per
// AddToPlaylist call; 0 means no limit imposed here (the client decides).
const AddToPlaylistLimit = 0

// Sync reconciles playlist's remote tracks against items under mode. When
// items is nil, the playlist's own current tracks are used. dryRun computes the exact
// result without issuing any writes.
func Sync(ctx context.Context, c remoteapi.Client, playlist *item.RemotePlaylist, items []*item.LocalTrack, mode Mode, dryRun bool) (Result, error) {
	var objURIs []string
	seen := map[string]bool{}
	if items == nil {
		for _, t := range playlist.Tracks {
			if t.ItemURI() != "" && !seen[t.ItemURI()] {
				objURIs = append(objURIs, t.ItemURI())
				seen[t.ItemURI()] = true
			}
		}
	} else {
		for _, t := range items {
			if t.ItemURI() != "" && !seen[t.ItemURI()] {
				objURIs = append(objURIs, t.ItemURI())
				seen[t.ItemURI()] = true
			}
		}
	}

	remoteURIs := make([]string, 0, len(playlist.Tracks))
	remoteSet := map[string]bool{}
	for _, t := range playlist.Tracks {
		if t.ItemURI() != "" && !remoteSet[t.ItemURI()] {
			remoteURIs = append(remoteURIs, t.ItemURI())
			remoteSet[t.ItemURI()] = true
		}
	}
	objSet := map[string]bool{}
	for _, u := range objURIs {
		objSet[u] = true
	}

	res := Result{Start: len(remoteURIs)}

	var toAdd, toRemove []string
	switch mode {
	case ModeRefresh:
		toRemove = remoteURIs
		toAdd = objURIs
	case ModeSync:
		for _, u := range remoteURIs {
			if !objSet[u] {
				toRemove = append(toRemove, u)
			}
		}
		for _, u := range objURIs {
			if !remoteSet[u] {
				toAdd = append(toAdd, u)
			}
		}
	case ModeNew:
		for _, u := range objURIs {
			if !remoteSet[u] {
				toAdd = append(toAdd, u)
			}
		}
	}

	res.Removed = len(toRemove)
	res.Added = len(toAdd)
	res.Unchanged = res.Start - res.Removed
	res.Final = res.Start - res.Removed + res.Added
	res.Difference = res.Final - res.Start

	if dryRun {
		return res, nil
	}

	if len(toRemove) > 0 {
		removeItems := make([]string, len(toRemove))
		copy(removeItems, toRemove)
		n, err := c.ClearFromPlaylist(ctx, playlist.ItemURI(), removeItems, AddToPlaylistLimit)
		if err != nil {
			return Result{}, err
		}
		res.Removed = n
	}
	if len(toAdd) > 0 {
		addItems := make([]string, len(toAdd))
		copy(addItems, toAdd)
		n, err := c.AddToPlaylist(ctx, playlist.ItemURI(), addItems, AddToPlaylistLimit, true)
		if err != nil {
			return Result{}, err
		}
		res.Added = n
	}
	res.Unchanged = res.Start - res.Removed
	res.Final = res.Start - res.Removed + res.Added
	res.Difference = res.Final - res.Start
	return res, nil
}

// LibrarySync runs Sync across multiple named playlists,
// creating any playlist on the remote service that doesn't already exist
// before running the chosen mode. existing maps playlist name to the
// already-resolved *item.RemotePlaylist (nil if it doesn't exist yet); want
// maps playlist name to the local items that should end up on it.
func LibrarySync(ctx context.Context, c remoteapi.Client, existing map[string]*item.RemotePlaylist, want map[string][]*item.LocalTrack, mode Mode, dryRun bool) (map[string]Result, error) {
	results := make(map[string]Result, len(want))
	for name, tracks := range want {
		pl := existing[name]
		if pl == nil {
			if dryRun {
				pl = &item.RemotePlaylist{Identity: item.Identity{Name: name}}
			} else {
				url, err := c.CreatePlaylist(ctx, name, false, false)
				if err != nil {
					return nil, err
				}
				pl = &item.RemotePlaylist{Identity: item.Identity{Name: name, URI: url, HasURI: item.URIValid}}
			}
		}
		res, err := Sync(ctx, c, pl, tracks, mode, dryRun)
		if err != nil {
			return nil, err
		}
		results[name] = res
	}
	return results, nil
}
