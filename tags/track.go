// Copyright 2024 The Musify Authors.
// All rights reserved.

package tags

import (
	"path/filepath"
	"strconv"

	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/tagnorm"
)

// ReadTrack reads path's tags and file properties and assembles a
// LocalTrack from them, including clean tags. Length and BPM are not read
// and stay zero. Callers handle URI-tag
// interpretation themselves: which tag holds the URI sentinel is a
// library-level config choice, not something this package hardcodes.
func ReadTrack(path string, cfg tagnorm.Config) (*item.LocalTrack, error) {
	m, props, err := Read(path)
	if err != nil {
		return nil, err
	}

	t := &item.LocalTrack{Path: path, Props: props}
	t.Tags.Title = m.First(FieldTitle)
	t.Tags.Artist = m.First(FieldArtist)
	t.Tags.Album = m.First(FieldAlbum)
	t.Tags.AlbumArtist = m.First(FieldAlbumArtist)
	t.Tags.AlbumID = m.First(FieldAlbumID)
	t.Tags.CoverID = m.First(FieldCoverID)
	t.Tags.RecordingID = m.First(FieldRecordingID)
	t.Tags.DiscSubtitle = m.First(FieldDiscSubtitle)
	t.Tags.Genres = m[FieldGenres]
	t.Tags.Comments = m[FieldComments]
	if n, err := strconv.Atoi(m.First(FieldTrack)); err == nil {
		t.Tags.TrackNumber = n
	}
	if n, err := strconv.Atoi(m.First(FieldDisc)); err == nil {
		t.Tags.DiscNumber = n
	}
	if n, err := strconv.Atoi(m.First(FieldYear)); err == nil {
		t.Tags.Year = n
	}

	t.Name = t.Tags.Title
	if t.Name == "" {
		t.Name = filepath.Base(path)
	}
	t.SetCleanTags(tagnorm.Clean(tagnorm.Source{
		Name:   t.Name,
		Title:  t.Tags.Title,
		Artist: t.Tags.Artist,
		Album:  t.Tags.Album,
		Length: t.Tags.Length,
		Year:   t.Tags.Year,
	}, cfg))
	return t, nil
}

// ReloadTrack re-reads t's file from disk and replaces its tags, file
// properties, and clean tags in place, discarding any unsaved mutations.
// t's path and URI state are untouched.
func ReloadTrack(t *item.LocalTrack, cfg tagnorm.Config) error {
	fresh, err := ReadTrack(t.Path, cfg)
	if err != nil {
		return err
	}
	t.Name = fresh.Name
	t.Tags = fresh.Tags
	t.Props = fresh.Props
	t.SetCleanTags(fresh.CleanTags())
	return nil
}

// SaveTrack writes t's current mutable tags back to its file, replacing
// each field's existing frames. Only fields with a value set are written;
// clearing a field is DeleteTags' job.
func SaveTrack(t *item.LocalTrack, dryRun bool) (SyncResultTrack, error) {
	mutations := map[string]interface{}{}
	putStr := func(field, v string) {
		if v != "" {
			mutations[field] = v
		}
	}
	putStr(FieldTitle, t.Tags.Title)
	putStr(FieldArtist, t.Tags.Artist)
	putStr(FieldAlbum, t.Tags.Album)
	putStr(FieldAlbumArtist, t.Tags.AlbumArtist)
	putStr(FieldAlbumID, t.Tags.AlbumID)
	putStr(FieldCoverID, t.Tags.CoverID)
	putStr(FieldRecordingID, t.Tags.RecordingID)
	putStr(FieldDiscSubtitle, t.Tags.DiscSubtitle)
	if len(t.Tags.Genres) > 0 {
		mutations[FieldGenres] = t.Tags.Genres
	}
	if len(t.Tags.Comments) > 0 {
		mutations[FieldComments] = t.Tags.Comments
	}
	if t.Tags.TrackNumber > 0 {
		mutations[FieldTrack] = t.Tags.TrackNumber
	}
	if t.Tags.DiscNumber > 0 {
		mutations[FieldDisc] = t.Tags.DiscNumber
	}
	if t.Tags.Year > 0 {
		mutations[FieldYear] = t.Tags.Year
	}
	if t.Tags.BPM > 0 {
		mutations[FieldBPM] = t.Tags.BPM
	}
	return Write(t.Path, mutations, true, dryRun)
}
