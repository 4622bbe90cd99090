// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package auto implements the auto-playlist evaluator: path
// sanitization, Comparer/Limiter/Sorter composition, and the evaluate()
// pipeline that turns a rule set plus a universe of local tracks into an
// ordered, filtered, limited, sorted playlist.
package auto

import (
	"path/filepath"
	"strings"

	"github.com/musify-sync/musify/core/compare"
	"github.com/musify-sync/musify/core/item"
)

// TrackFields adapts a *item.LocalTrack to compare.Track, resolving the
// closed Field enum to the track's current value so the Comparer can infer
// a type on first use.
type TrackFields struct {
	*item.LocalTrack
}

// FieldValue implements compare.Track.
func (t TrackFields) FieldValue(f compare.Field) interface{} {
	tags := t.Tags
	switch f {
	case compare.FieldTitle:
		return tags.Title
	case compare.FieldArtist:
		return tags.Artist
	case compare.FieldAlbum:
		return tags.Album
	case compare.FieldTrack:
		return tags.TrackNumber
	case compare.FieldGenres:
		return strings.Join(tags.Genres, "; ")
	case compare.FieldYear:
		return tags.Year
	case compare.FieldBPM:
		return tags.BPM
	case compare.FieldDisc:
		return tags.DiscNumber
	case compare.FieldAlbumArtist:
		return tags.AlbumArtist
	case compare.FieldComment:
		return strings.Join(tags.Comments, "; ")
	case compare.FieldRating:
		return tags.Rating
	case compare.FieldLength:
		return tags.Length
	case compare.FieldFolder:
		return strings.ToLower(filepath.Dir(t.Path))
	case compare.FieldPath:
		return strings.ToLower(t.Path)
	case compare.FieldFilename:
		return strings.ToLower(filepath.Base(t.Path))
	case compare.FieldExt:
		return t.Props.Ext
	case compare.FieldDateAdded:
		return t.State.DateAdded
	case compare.FieldPlayCount:
		return t.State.PlayCount
	default:
		return nil
	}
}

var _ compare.Track = TrackFields{}
