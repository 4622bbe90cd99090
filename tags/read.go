// Copyright 2024 The Musify Authors.
// All rights reserved.

package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/derat/taglib-go/taglib"

	"github.com/musify-sync/musify/core/item"
)

// Read decodes path's ID3v2 tags into a TagMap and the file's container
// properties. A read failure here is the caller's to catch and log
// per-item; Read itself just returns the error.
func Read(path string) (TagMap, item.FileProperties, error) {
	props := item.FileProperties{Ext: filepath.Ext(path), Kind: "mp3"}

	f, err := os.Open(path)
	if err != nil {
		return nil, props, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, props, err
	}
	props.Size = fi.Size()

	tag, err := taglib.Decode(f, fi.Size())
	if err != nil {
		return nil, props, fmt.Errorf("tags: decode %s: %w", path, err)
	}

	m := TagMap{}
	setOne(m, FieldTitle, tag.Title())
	setOne(m, FieldArtist, tag.Artist())
	setOne(m, FieldAlbum, tag.Album())
	setOne(m, FieldGenres, tag.Genre())
	setOne(m, FieldComments, tag.Comment())
	if year := tag.Year(); !year.IsZero() {
		setOne(m, FieldYear, strconv.Itoa(year.Year()))
	}
	if track := tag.Track(); track > 0 {
		setOne(m, FieldTrack, strconv.Itoa(int(track)))
	}
	if disc := tag.Disc(); disc > 0 {
		setOne(m, FieldDisc, strconv.Itoa(int(disc)))
	}

	custom := tag.CustomFrames()
	setOne(m, FieldAlbumID, custom["MusicBrainz Album Id"])
	setOne(m, FieldCoverID, custom["musify Cover Id"])
	setOne(m, FieldRecordingID, tag.UniqueFileIdentifiers()[recordingIDOwner])

	// Album artist and disc subtitle (TPE2/TSST) aren't part of the
	// GenericTag interface; fall back to custom-frame lookups.
	if aa := custom["TPE2"]; aa != "" && aa != tag.Artist() {
		setOne(m, FieldAlbumArtist, aa)
	}
	setOne(m, FieldDiscSubtitle, custom["TSST"])

	if album, disc, subtitle := ExtractAlbumDisc(tag.Album()); disc != 0 {
		m[FieldAlbum] = []string{album}
		if m.First(FieldDisc) == "" {
			setOne(m, FieldDisc, strconv.Itoa(disc))
		}
		if m.First(FieldDiscSubtitle) == "" {
			setOne(m, FieldDiscSubtitle, subtitle)
		}
	}
	if tag.Album() == nonAlbumTracksValue {
		delete(m, FieldAlbum)
	}

	return m, props, nil
}

func setOne(m TagMap, field, value string) {
	if value != "" {
		m[field] = []string{value}
	}
}
