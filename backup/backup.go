// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package backup implements library.Backer against Google Cloud Storage:
// each local playlist is serialized to a small JSON blob and stored under
// a per-playlist object key. Restore reverses Backup byte-for-byte, so
// the two are a round trip. Uploads and downloads run through a small
// fixed-size worker pool; object listing is a single sequential pass.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/musify-sync/musify/cloudutil"
	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/library"
)

const objectPrefix = "playlists/"

// trackBlob is the minimal per-track record a backup needs to restore
// playlist membership: enough to re-identify the track (by URI when
// present, else by path) without round-tripping every tag.
type trackBlob struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
	URI  string `json:"uri,omitempty"`
}

type playlistBlob struct {
	Name   string      `json:"name"`
	Tracks []trackBlob `json:"tracks"`
}

// GCSBacker implements library.Backer against a single GCS bucket.
// NumWorkers bounds concurrent object reads/writes.
type GCSBacker struct {
	Bucket     string
	Client     *storage.Client
	NumWorkers int

	// LinkClient selects the link format used in the log line printed
	// after each upload (cloudutil.WebClient by default). Set to
	// cloudutil.AndroidClient when backups are triggered from the
	// Android client rather than a browser session.
	LinkClient cloudutil.ClientType
}

// NewGCSBacker builds a GCSBacker authenticated with application default
// credentials.
func NewGCSBacker(ctx context.Context, bucket string) (*GCSBacker, error) {
	creds, err := google.FindDefaultCredentials(ctx, storage.ScopeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("backup: finding credentials: %w", err)
	}
	c, err := storage.NewClient(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("backup: creating client: %w", err)
	}
	return &GCSBacker{Bucket: bucket, Client: c, NumWorkers: 10}, nil
}

func (b *GCSBacker) numWorkers() int {
	if b.NumWorkers <= 0 {
		return 1
	}
	return b.NumWorkers
}

func objectName(playlistName string) string {
	return objectPrefix + strings.ReplaceAll(playlistName, "/", "_") + ".json"
}

// Backup uploads one JSON object per playlist, overwriting any existing
// backup of the same name. Implements library.Backer.
func (b *GCSBacker) Backup(ctx context.Context, playlists map[string]*library.Playlist) error {
	type job struct {
		name string
		pl   *library.Playlist
	}
	jobs := make(chan job, len(playlists))
	results := make(chan error, len(playlists))

	for i := 0; i < b.numWorkers(); i++ {
		go func() {
			for j := range jobs {
				results <- b.uploadOne(ctx, j.name, j.pl)
			}
		}()
	}
	for name, pl := range playlists {
		jobs <- job{name, pl}
	}
	close(jobs)

	var firstErr error
	for range playlists {
		if err := <-results; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (b *GCSBacker) uploadOne(ctx context.Context, name string, pl *library.Playlist) error {
	blob := playlistBlob{Name: name}
	for _, t := range pl.Tracks {
		blob.Tracks = append(blob.Tracks, trackBlob{Name: t.Name, Path: t.Path, URI: t.URI})
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("backup: marshal %q: %w", name, err)
	}

	obj := objectName(name)
	w := b.Client.Bucket(b.Bucket).Object(obj).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("backup: write %q: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("backup: close %q: %w", name, err)
	}
	log.Printf("backed up playlist %q to %s", name, cloudutil.CloudStorageURL(b.Bucket, obj, b.LinkClient))
	return nil
}

// Restore downloads every backed-up playlist blob and rebuilds a
// name→Playlist map of LocalTrack stubs (Name/Path/URI only; the caller is
// expected to merge these into its authoritative, fully-tagged track
// list by path or URI rather than treat them as complete records).
// Implements library.Backer.
func (b *GCSBacker) Restore(ctx context.Context) (map[string]*library.Playlist, error) {
	bucket := b.Client.Bucket(b.Bucket)
	var names []string
	it := bucket.Objects(ctx, &storage.Query{Prefix: objectPrefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, fmt.Errorf("backup: listing objects: %w", err)
		}
		names = append(names, attrs.Name)
	}

	type result struct {
		pl  *library.Playlist
		err error
	}
	jobs := make(chan string, len(names))
	results := make(chan result, len(names))
	for i := 0; i < b.numWorkers(); i++ {
		go func() {
			for name := range jobs {
				pl, err := b.downloadOne(ctx, bucket, name)
				results <- result{pl, err}
			}
		}()
	}
	for _, name := range names {
		jobs <- name
	}
	close(jobs)

	out := make(map[string]*library.Playlist, len(names))
	var firstErr error
	for range names {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		out[r.pl.Name] = r.pl
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (b *GCSBacker) downloadOne(ctx context.Context, bucket *storage.BucketHandle, object string) (*library.Playlist, error) {
	r, err := bucket.Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: read %q: %w", object, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("backup: read %q: %w", object, err)
	}

	var blob playlistBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("backup: unmarshal %q: %w", object, err)
	}

	pl := &library.Playlist{Name: blob.Name}
	for _, tb := range blob.Tracks {
		lt := &item.LocalTrack{Identity: item.Identity{Name: tb.Name}, Path: tb.Path}
		if tb.URI != "" {
			lt.SetURI(tb.URI)
		}
		pl.Tracks = append(pl.Tracks, lt)
	}
	return pl, nil
}
