// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package item defines the identity model shared by local and remote music
// objects: tracks, albums, and playlists.
package item

import (
	"strings"
	"time"
)

// HasURI describes a local item's tri-state relationship with the remote
// catalogue: unknown (never searched), unavailable (confirmed absent from
// the remote service), or valid (resolved to a URI).
type HasURI int

const (
	// URIUnknown means the item has never been searched against the remote
	// catalogue. Corresponds to the URI tag being absent.
	URIUnknown HasURI = iota
	// URIUnavailable means a prior search confirmed the item isn't present
	// on the remote service. Stored as a sentinel string in the URI tag.
	URIUnavailable
	// URIValid means the item carries a URI that parses as valid.
	URIValid
)

func (s HasURI) String() string {
	switch s {
	case URIUnknown:
		return "unknown"
	case URIUnavailable:
		return "unavailable"
	case URIValid:
		return "valid"
	default:
		return "invalid"
	}
}

// CleanTags holds the normalized, comparable values produced by the tag
// normalizer (see package tagnorm). The Matcher depends only on these
// fields, never on raw tags.
type CleanTags struct {
	Name   string
	Title  string
	Artist string
	Album  string
	Length float64
	Year   int
}

// Named is implemented by anything with a display name.
type Named interface {
	ItemName() string
}

// URIAware is implemented by anything that carries the tri-state URI
// relationship described by HasURI.
type URIAware interface {
	ItemURI() string
	ItemHasURI() HasURI
}

// Cleaner is implemented by anything the tag normalizer can populate.
type Cleaner interface {
	CleanTags() CleanTags
	SetCleanTags(CleanTags)
}

// Item is the common identity contract for local and remote music objects.
// Identity is the URI when present, else the name (see Identity.Key).
type Item interface {
	Named
	URIAware
	Cleaner
}

// Identity is the common identity data embedded by every concrete item
// type: LocalTrack, RemoteTrack, RemoteAlbum, and RemotePlaylist all
// embed an Identity and get Name/URI/CleanTags behavior for free.
type Identity struct {
	Name   string
	URI    string
	HasURI HasURI
	Clean  CleanTags
}

// ItemName implements Named.
func (id *Identity) ItemName() string { return id.Name }

// ItemURI implements URIAware.
func (id *Identity) ItemURI() string { return id.URI }

// ItemHasURI implements URIAware.
func (id *Identity) ItemHasURI() HasURI { return id.HasURI }

// CleanTags implements Cleaner.
func (id *Identity) CleanTags() CleanTags { return id.Clean }

// SetCleanTags implements Cleaner.
func (id *Identity) SetCleanTags(c CleanTags) { id.Clean = c }

// SetURI assigns uri and marks HasURI accordingly. An empty uri clears the
// field back to URIUnknown.
func (id *Identity) SetURI(uri string) {
	id.URI = uri
	if uri == "" {
		id.HasURI = URIUnknown
	} else {
		id.HasURI = URIValid
	}
}

// SetUnavailable marks the item as confirmed absent from the remote
// catalogue: a prior search or user decision found no remote match,
// distinct from never having searched.
func (id *Identity) SetUnavailable() {
	id.URI = ""
	id.HasURI = URIUnavailable
}

// Key returns the identity key used for contains-set comparisons: the URI
// when present, else the name.
func (id *Identity) Key() string {
	if id.URI != "" {
		return id.URI
	}
	return id.Name
}

// FileProperties holds filesystem/container-level facts about a local
// track that aren't musical metadata.
type FileProperties struct {
	Ext        string
	Size       int64
	Kind       string // container kind, e.g. "mp3", "flac"
	Channels   int
	BitRate    int
	BitDepth   int
	SampleRate int
}

// LibraryState holds mutable bookkeeping the local library keeps about a
// track's presence in the user's listening history.
type LibraryState struct {
	DateAdded    time.Time
	LastPlayed   time.Time
	PlayCount    int
	DateModified time.Time
}

// Tags holds the raw (uncleaned) musical metadata read from or written to
// a local audio file's tag container.
type Tags struct {
	Title        string
	Artist       string
	Album        string
	AlbumArtist  string
	TrackNumber  int
	TrackTotal   int
	DiscNumber   int
	DiscTotal    int
	Year         int
	BPM          float64
	Key          string
	Genres       []string
	Comments     []string
	Images       [][]byte
	Compilation  bool
	Length       float64
	Rating       float64
	AlbumID      string // MusicBrainz-flavored opaque album identity
	CoverID      string
	RecordingID  string
	DiscSubtitle string
}

// LocalTrack is a music file stored on disk.
type LocalTrack struct {
	Identity
	Path  string
	Tags  Tags
	Props FileProperties
	State LibraryState
}

// ArtistList splits a raw multi-artist tag string using the separator the
// track's tags use for joining artist names, in priority order. Searchers
// and the Matcher both need this to score against each constituent artist.
func (t *LocalTrack) ArtistList(seps []string) []string {
	return splitArtists(t.Tags.Artist, seps)
}

func splitArtists(raw string, seps []string) []string {
	if raw == "" {
		return nil
	}
	parts := []string{raw}
	for _, sep := range seps {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RemoteTrack is a track obtained from the remote catalogue. It is
// immutable from the core's perspective: Reload replaces the whole
// Response rather than mutating fields in place.
type RemoteTrack struct {
	Identity
	Response    interface{} // remote-native response blob
	Artists     []string
	Album       string
	TrackTotal  int
	DiscNumber  int
	Length      float64 // seconds
	Year        int
	RawName     string // name before cleaning, used for reduction/karaoke checks
	RawArtist   string
	RawAlbum    string
}

// RemoteAlbum is an item-collection with a URI and a page-able track list.
type RemoteAlbum struct {
	Identity
	Artists    []string
	TrackTotal int
	Tracks     []*RemoteTrack
	Images     []string
}

// RemotePlaylist is an item-collection with collection-level metadata.
type RemotePlaylist struct {
	Identity
	Owner       string
	Followers   int
	Description string
	Tracks      []*RemoteTrack
	DateAdded   map[string]time.Time // per-item, keyed by track URI
	Images      []string
}

// Length sums the lengths of a RemotePlaylist's tracks.
func (p *RemotePlaylist) Length() float64 {
	var total float64
	for _, t := range p.Tracks {
		total += t.Length
	}
	return total
}
