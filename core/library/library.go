// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package library implements the Library aggregator: a thin
// holder for a tracks list and a name→playlist map, exposing derived
// grouping views and delegating merge/restore/backup/sync to the
// packages that actually implement them.
package library

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/musify-sync/musify/core/auto"
	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/sortx"
	syncengine "github.com/musify-sync/musify/core/sync"
	"github.com/musify-sync/musify/remoteapi"
)

// Playlist is a local playlist: a name, the tracks it currently holds, and
// (for auto-playlists) the rule that produces them. Rule is nil for a
// manually curated playlist.
type Playlist struct {
	Name   string
	Tracks []*item.LocalTrack
	Rule   *auto.Rule
}

// TrackLoader scans the library's music folders into a flat track list.
// A tag read failure on an individual file skips that item and records
// its path; the scan continues.
type TrackLoader interface {
	LoadTracks(ctx context.Context) (tracks []*item.LocalTrack, errs []error, err error)
}

// PlaylistLoader reads playlist definitions (manual files or auto-playlist
// rule files) and evaluates them against a track universe.
type PlaylistLoader interface {
	LoadPlaylists(ctx context.Context, universe []*item.LocalTrack) (map[string]*Playlist, error)
}

// Backer backs playlists up to and restores them from durable storage,
// delegated to the backup package.
type Backer interface {
	Backup(ctx context.Context, playlists map[string]*Playlist) error
	Restore(ctx context.Context) (map[string]*Playlist, error)
}

// Library holds a library's tracks and playlists and exposes the derived
// views and delegated operations. It is deliberately thin:
// loading, tag I/O, and remote sync all live in other packages.
type Library struct {
	Client remoteapi.Client

	TrackSource    TrackLoader
	PlaylistSource PlaylistLoader
	Backer         Backer

	tracks    []*item.LocalTrack
	playlists map[string]*Playlist

	// Errors collects per-item scan failures from the most recent Load
	// call.
	Errors []error
}

// New builds a Library around the given track/playlist sources and backup
// target. Any of them may be nil if that capability isn't needed.
func New(c remoteapi.Client, tl TrackLoader, pl PlaylistLoader, b Backer) *Library {
	return &Library{Client: c, TrackSource: tl, PlaylistSource: pl, Backer: b}
}

// Load populates tracks and/or playlists. Auto-playlist evaluation needs the final track
// universe, so when both are requested the track scan runs first and
// playlist loading follows; this is the one load ordering dependency in an
// otherwise independent pair of scans.
func (l *Library) Load(ctx context.Context, loadTracks, loadPlaylists bool) error {
	if loadTracks && l.TrackSource != nil {
		tracks, errs, err := l.TrackSource.LoadTracks(ctx)
		if err != nil {
			return err
		}
		l.tracks = tracks
		l.Errors = errs
	}
	if loadPlaylists && l.PlaylistSource != nil {
		playlists, err := l.PlaylistSource.LoadPlaylists(ctx, l.tracks)
		if err != nil {
			return err
		}
		l.playlists = playlists
	}
	return nil
}

// Views bundles the four derived group-by views, computing
// them concurrently since each is an independent read-only pass over the
// same track list.
type Views struct {
	Folders map[string][]*item.LocalTrack
	Albums  map[string][]*item.LocalTrack
	Artists map[string][]*item.LocalTrack
	Genres  map[string][]*item.LocalTrack
}

// BuildViews computes all four views at once.
func (l *Library) BuildViews(ctx context.Context) (Views, error) {
	var v Views
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { v.Folders = l.Folders(); return nil })
	g.Go(func() error { v.Albums = l.Albums(); return nil })
	g.Go(func() error { v.Artists = l.Artists(); return nil })
	g.Go(func() error { v.Genres = l.Genres(); return nil })
	if err := g.Wait(); err != nil {
		return Views{}, err
	}
	return v, nil
}

// Items returns the library's current track list.
func (l *Library) Items() []*item.LocalTrack { return l.tracks }

// SetItems replaces the track list directly, bypassing TrackSource. Used
// by callers (tests, CLI commands) that already have tracks in hand.
func (l *Library) SetItems(tracks []*item.LocalTrack) { l.tracks = tracks }

// Playlists returns the name→playlist map.
func (l *Library) Playlists() map[string]*Playlist { return l.playlists }

// SetPlaylists replaces the playlist map directly, bypassing PlaylistSource.
func (l *Library) SetPlaylists(playlists map[string]*Playlist) { l.playlists = playlists }

// Folders groups tracks by the lowercased containing directory.
func (l *Library) Folders() map[string][]*item.LocalTrack {
	return sortx.GroupByField(l.tracks, func(t *item.LocalTrack) string {
		return strings.ToLower(filepath.Dir(t.Path))
	})
}

// Albums groups tracks by album tag: albums[a] is exactly those tracks
// with album == a.
func (l *Library) Albums() map[string][]*item.LocalTrack {
	return sortx.GroupByField(l.tracks, func(t *item.LocalTrack) string {
		return t.Tags.Album
	})
}

// Artists groups tracks by artist tag.
func (l *Library) Artists() map[string][]*item.LocalTrack {
	return sortx.GroupByField(l.tracks, func(t *item.LocalTrack) string {
		return t.Tags.Artist
	})
}

// Genres groups tracks by genre, a set-valued tag: a track with multiple
// genres appears in each genre's group.
func (l *Library) Genres() map[string][]*item.LocalTrack {
	return sortx.GroupByMultiField(l.tracks, func(t *item.LocalTrack) []string {
		return t.Tags.Genres
	})
}

// GetFilteredPlaylists copies the playlists matching include/exclude
// (by name; an empty include means "all") into new Playlist values with
// their own track lists, and drops items whose listed tags contain any
// listed filter value, case-folded and matched by substring. The tracks
// themselves are not copied: the returned lists hold the library's own
// *item.LocalTrack pointers, and Rule is shared as well.
func (l *Library) GetFilteredPlaylists(include, exclude []string, filterTags map[string][]string) map[string]*Playlist {
	includeSet := toSet(include)
	excludeSet := toSet(exclude)

	out := make(map[string]*Playlist)
	for name, pl := range l.playlists {
		if len(includeSet) > 0 && !includeSet[name] {
			continue
		}
		if excludeSet[name] {
			continue
		}
		cp := &Playlist{Name: pl.Name, Rule: pl.Rule}
		for _, t := range pl.Tracks {
			if matchesFilterTags(t, filterTags) {
				continue
			}
			cp.Tracks = append(cp.Tracks, t)
		}
		out[name] = cp
	}
	return out
}

func toSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

func matchesFilterTags(t *item.LocalTrack, filterTags map[string][]string) bool {
	for field, values := range filterTags {
		actual, ok := stringTagValue(t, field)
		if !ok {
			continue
		}
		actual = strings.ToLower(actual)
		for _, v := range values {
			if strings.Contains(actual, strings.ToLower(v)) {
				return true
			}
		}
	}
	return false
}

// stringTagValue returns the string-tag value named by field, case
// insensitively. Only string tags participate in filter_tags;
// numeric fields report ok=false.
func stringTagValue(t *item.LocalTrack, field string) (string, bool) {
	switch strings.ToLower(field) {
	case "title":
		return t.Tags.Title, true
	case "artist":
		return t.Tags.Artist, true
	case "album":
		return t.Tags.Album, true
	case "albumartist":
		return t.Tags.AlbumArtist, true
	case "genres", "genre":
		return strings.Join(t.Tags.Genres, "; "), true
	case "comment":
		return strings.Join(t.Tags.Comments, "; "), true
	default:
		return "", false
	}
}

// MergePlaylists merges another set of local playlists into this library's,
// appending tracks not already present (matched by URI when both sides
// have one, else by name) and preserving each playlist's existing order.
func (l *Library) MergePlaylists(other map[string]*Playlist) {
	if l.playlists == nil {
		l.playlists = map[string]*Playlist{}
	}
	for name, pl := range other {
		cur, ok := l.playlists[name]
		if !ok {
			l.playlists[name] = pl
			continue
		}
		col := item.NewCollection[*item.LocalTrack](name, false)
		col.Extend(cur.Tracks)
		col.Extend(pl.Tracks)
		cur.Tracks = col.Items()
	}
}

// BackupPlaylists hands the current playlist set to Backer for durable
// storage.
func (l *Library) BackupPlaylists(ctx context.Context) error {
	return l.Backer.Backup(ctx, l.playlists)
}

// RestorePlaylists loads a previously backed-up playlist set from Backer
// and merges it into the library.
func (l *Library) RestorePlaylists(ctx context.Context) error {
	restored, err := l.Backer.Restore(ctx)
	if err != nil {
		return err
	}
	l.MergePlaylists(restored)
	return nil
}

// Sync resolves each named playlist's current remote state (creating it on
// the remote service first if it doesn't exist) and runs the sync engine
// against it. names selects which of the library's playlists
// to sync; a nil names syncs all of them.
func (l *Library) Sync(ctx context.Context, names []string, mode syncengine.Mode, reload, dryRun bool) (map[string]syncengine.Result, error) {
	want := map[string][]*item.LocalTrack{}
	if names == nil {
		for name, pl := range l.playlists {
			want[name] = pl.Tracks
		}
	} else {
		for _, name := range names {
			pl, ok := l.playlists[name]
			if !ok {
				continue
			}
			want[name] = pl.Tracks
		}
	}

	existing := map[string]*item.RemotePlaylist{}
	for name := range want {
		pl, err := l.resolveRemotePlaylist(ctx, name, reload)
		if err != nil {
			return nil, err
		}
		existing[name] = pl
	}

	return syncengine.LibrarySync(ctx, l.Client, existing, want, mode, dryRun)
}

// resolveRemotePlaylist looks up name's remote playlist by running a
// playlist-kind catalogue Query for name and matching the results on name;
// it returns nil (not an error) when
// none exists yet, so Sync knows to create it before pushing.
func (l *Library) resolveRemotePlaylist(ctx context.Context, name string, reload bool) (*item.RemotePlaylist, error) {
	resps, err := l.Client.Query(ctx, name, remoteapi.KindPlaylist, 1, !reload)
	if err != nil {
		return nil, err
	}
	for _, r := range resps {
		pl, ok := r.(remoteapi.Playlist)
		if !ok || pl.Name != name {
			continue
		}
		return playlistFromResponse(pl), nil
	}
	return nil, nil
}

func playlistFromResponse(pl remoteapi.Playlist) *item.RemotePlaylist {
	rp := &item.RemotePlaylist{
		Identity: item.Identity{Name: pl.Name, URI: pl.URI, HasURI: item.URIValid},
	}
	for _, pt := range pl.Tracks {
		var artists []string
		for _, a := range pt.Track.Artists {
			artists = append(artists, a.Name)
		}
		rp.Tracks = append(rp.Tracks, &item.RemoteTrack{
			Identity: item.Identity{Name: pt.Track.Name, URI: pt.Track.URI, HasURI: item.URIValid},
			Artists:  artists,
			Album:    pt.Track.Album.Name,
			Length:   float64(pt.Track.DurationMs) / 1000,
			RawName:  pt.Track.Name,
		})
	}
	return rp
}
