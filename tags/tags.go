// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package tags implements the tag reader/writer facade: reading a
// local audio file's metadata into a field→value map and file properties,
// and writing or clearing individual fields. Reading decodes via
// github.com/derat/taglib-go; writing needs a mutation API taglib-go
// doesn't expose, so it uses github.com/bogem/id3v2 instead.
package tags

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Field names the tags package and core/compare share, restricted to
// those an audio container can hold.
const (
	FieldTitle        = "title"
	FieldArtist       = "artist"
	FieldAlbum        = "album"
	FieldAlbumArtist  = "albumartist"
	FieldTrack        = "track"
	FieldTrackTotal   = "tracktotal"
	FieldDisc         = "disc"
	FieldDiscTotal    = "disctotal"
	FieldYear         = "year"
	FieldBPM          = "bpm"
	FieldGenres       = "genres"
	FieldComments     = "comments"
	FieldRating       = "rating"
	FieldAlbumID      = "albumid"
	FieldCoverID      = "coverid"
	FieldRecordingID  = "recordingid"
	FieldDiscSubtitle = "discsubtitle"
)

// recordingIDOwner is the UFID owner string MusicBrainz/Picard uses for a
// recording's stable ID.
const recordingIDOwner = "http://musicbrainz.org"

// id3v2TagIDs maps field names to the ID3v2 frame IDs (or, for TXXX/UFID
// frames, "FRAME:description" pairs) that hold them, constant per
// container format. Only ID3v2 (MP3) is implemented; other
// containers would add their own map alongside this one.
var id3v2TagIDs = map[string][]string{
	FieldTitle:        {"TIT2"},
	FieldArtist:       {"TPE1"},
	FieldAlbum:        {"TALB"},
	FieldAlbumArtist:  {"TPE2"},
	FieldTrack:        {"TRCK"},
	FieldDisc:         {"TPOS"},
	FieldYear:         {"TDRC", "TYER"},
	FieldBPM:          {"TBPM"},
	FieldGenres:       {"TCON"},
	FieldComments:     {"COMM"},
	FieldDiscSubtitle: {"TSST"},
	FieldAlbumID:      {"TXXX:MusicBrainz Album Id"},
	FieldCoverID:      {"TXXX:musify Cover Id"},
	FieldRecordingID:  {"UFID:" + recordingIDOwner},
}

// TagIDs returns the container-native tag IDs backing field, or nil if the
// field has no ID3v2 representation.
func TagIDs(field string) []string {
	ids := id3v2TagIDs[field]
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// TagMap is a field name → raw value(s) read from (or to write to) a tag
// container. Single-valued fields (title, artist, ...) carry exactly one
// element; genres and comments may carry several.
type TagMap map[string][]string

// First returns field's first value, or "" if absent.
func (m TagMap) First(field string) string {
	if vs := m[field]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// nonAlbumTracksValue is the sentinel MusicBrainz/Picard writes for
// standalone recordings with no parent album.
const nonAlbumTracksValue = "[non-album tracks]"

// albumDiscRegexp matches pre-NGS MusicBrainz album names used for
// multi-disc releases: "Some Album (disc 2: The Second Disc)". The first
// subgroup is the disc number, the second the optional disc/medium title.
var albumDiscRegexp = regexp.MustCompile(`\s+\(disc (\d+)(?::\s+([^)]+))?\)$`)

// ExtractAlbumDisc splits a disc number and optional subtitle out of an
// album name formatted the MusicBrainz way, returning the original name
// and discNum=0 if none is present.
func ExtractAlbumDisc(orig string) (album string, discNum int, discTitle string) {
	ms := albumDiscRegexp.FindStringSubmatch(orig)
	if ms == nil {
		return orig, 0, ""
	}
	n, err := strconv.Atoi(ms[1])
	if err != nil {
		n = 0
	}
	return orig[:len(orig)-len(ms[0])], n, ms[2]
}

// IsMusicPath reports whether p's extension suggests it holds audio this
// package can read. Only MP3/ID3v2 is implemented.
func IsMusicPath(p string) bool {
	return strings.ToLower(filepath.Ext(p)) == ".mp3"
}

// Reason codes explain why Write/DeleteTags recorded a field as updated.
const (
	ReasonAdded = iota
	ReasonReplaced
	ReasonCleared
)

// SyncResultTrack is the per-file outcome of a Write or DeleteTags call.
type SyncResultTrack struct {
	Saved   bool
	Updated map[string]int
}
