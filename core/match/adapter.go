// Copyright 2024 The Musify Authors.
// All rights reserved.

package match

import "github.com/musify-sync/musify/core/item"

// DefaultArtistSeparators is the priority-ordered list of substrings used
// to split a raw multi-artist tag when no more specific configuration is
// available.
var DefaultArtistSeparators = []string{";", "/", ","}

// TrackView adapts a *item.LocalTrack to Taggable.
type TrackView struct {
	*item.LocalTrack
}

func (v TrackView) RawName() string   { return v.Tags.Title }
func (v TrackView) RawArtist() string { return v.Tags.Artist }
func (v TrackView) RawAlbum() string  { return v.Tags.Album }
func (v TrackView) ArtistList() []string {
	return v.LocalTrack.ArtistList(DefaultArtistSeparators)
}

// RemoteTrackView adapts a *item.RemoteTrack to Taggable.
type RemoteTrackView struct {
	*item.RemoteTrack
}

func (v RemoteTrackView) RawName() string      { return v.RemoteTrack.RawName }
func (v RemoteTrackView) RawArtist() string    { return v.RemoteTrack.RawArtist }
func (v RemoteTrackView) RawAlbum() string     { return v.RemoteTrack.RawAlbum }
func (v RemoteTrackView) ArtistList() []string { return v.Artists }

// AlbumView adapts a *item.RemoteAlbum to Collection: its own name/artist
// serve as the raw fields a karaoke filter or reduction penalty would
// check, and Items() exposes its tracks for the recursive "items" score.
type AlbumView struct {
	*item.RemoteAlbum
}

func (v AlbumView) RawName() string   { return v.Identity.Name }
func (v AlbumView) RawArtist() string {
	if len(v.Artists) == 0 {
		return ""
	}
	return v.Artists[0]
}
func (v AlbumView) RawAlbum() string     { return v.Identity.Name }
func (v AlbumView) ArtistList() []string { return v.Artists }
func (v AlbumView) Items() []Taggable {
	out := make([]Taggable, len(v.Tracks))
	for i, t := range v.Tracks {
		out[i] = RemoteTrackView{t}
	}
	return out
}

// TrackTotal exposes the album's declared track count so callers can order
// album candidates by |track_total - len(source)| before scoring.
func (v AlbumView) TrackTotal() int { return v.RemoteAlbum.TrackTotal }

// URI exposes the album's resolved URI.
func (v AlbumView) URI() string { return v.Identity.URI }

// LocalAlbum adapts a same-album group of local tracks to Collection so a
// whole local album can be matched against a remote AlbumView in one
// ScoreMatch call.
type LocalAlbum struct {
	Name   string
	Artist string
	Clean  item.CleanTags
	Tracks []*item.LocalTrack
}

func (a LocalAlbum) CleanTags() item.CleanTags { return a.Clean }
func (a LocalAlbum) RawName() string           { return a.Name }
func (a LocalAlbum) RawArtist() string         { return a.Artist }
func (a LocalAlbum) RawAlbum() string          { return a.Name }
func (a LocalAlbum) ArtistList() []string {
	lt := &item.LocalTrack{Tags: item.Tags{Artist: a.Artist}}
	return lt.ArtistList(DefaultArtistSeparators)
}
func (a LocalAlbum) Items() []Taggable {
	out := make([]Taggable, len(a.Tracks))
	for i, t := range a.Tracks {
		out[i] = TrackView{t}
	}
	return out
}
