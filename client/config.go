// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package client holds configuration shared across the musify command-line
// binaries; every cmd/musify subcommand embeds a Config.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/musify-sync/musify/remoteapi"
)

// URIUnavailableSentinel is the reserved value written to a LocalTrack's
// URI tag to mean "searched and confirmed absent from the remote
// catalogue", distinct from the tag being
// simply absent.
const URIUnavailableSentinel = "musify:unavailable"

// Config holds configuration details for the musify client executable.
type Config struct {
	// RemoteBaseURL is the base URL of the remote catalogue's Web API.
	RemoteBaseURL string `json:"remoteBaseUrl"`
	// Auth holds the OAuth2 client-credentials used to authenticate against
	// the remote catalogue (see remoteapi.NewHTTPClient).
	Auth remoteapi.AuthConfig `json:"auth"`

	// MusicDir is the base directory containing local track files.
	MusicDir string `json:"musicDir"`
	// RulesDir is the base directory containing .xautopf auto-playlist
	// definitions.
	RulesDir string `json:"rulesDir"`
	// PlaylistDir is the base directory containing plain M3U playlists.
	PlaylistDir string `json:"playlistDir"`
	// BackupBucket is the Google Cloud Storage bucket playlists are backed
	// up to and restored from (see package backup).
	BackupBucket string `json:"backupBucket"`

	// URIUnavailableTag names the tag field that stores the sentinel value
	// meaning a track was searched and confirmed absent from the remote
	// catalogue.
	URIUnavailableTag string `json:"uriUnavailableTag"`

	// ArtistRewrites maps original tag artist names to replacement names
	// used for searching and syncing. Lets a user fix incorrectly tagged
	// files without retagging them.
	ArtistRewrites map[string]string `json:"artistRewrites"`
	// AlbumIDRewrites maps original MusicBrainz album IDs to replacement
	// IDs used for searching.
	AlbumIDRewrites map[string]string `json:"albumIdRewrites"`
}

// LoadConfig loads a JSON-marshaled Config from the file at p, fills in
// defaults, and validates it.
func LoadConfig(p string, dst *Config) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	d := json.NewDecoder(f)
	if err := d.Decode(dst); err != nil {
		return err
	}

	if dst.URIUnavailableTag == "" {
		dst.URIUnavailableTag = "comments" // matches tags.FieldComments
	}
	if dst.PlaylistDir == "" {
		dst.PlaylistDir = filepath.Join(os.Getenv("HOME"), "musify", "playlists")
	}
	if err := dst.checkRemoteBaseURL(); err != nil {
		return err
	}
	if err := dst.checkMusicDir(); err != nil {
		return err
	}
	return nil
}

// checkRemoteBaseURL returns an error if cfg.RemoteBaseURL is unset or
// malformed.
func (cfg *Config) checkRemoteBaseURL() error {
	if cfg.RemoteBaseURL == "" {
		return errors.New("remoteBaseUrl not set")
	}
	if _, err := url.Parse(cfg.RemoteBaseURL); err != nil {
		return fmt.Errorf("bad remoteBaseUrl %q: %v", cfg.RemoteBaseURL, err)
	}
	return nil
}

// checkMusicDir returns an error if cfg.MusicDir is unset.
func (cfg *Config) checkMusicDir() error {
	if cfg.MusicDir == "" {
		return errors.New("musicDir not set")
	}
	return nil
}

// RewriteArtist applies cfg.ArtistRewrites to artist, returning it
// unchanged if no rewrite is configured.
func (cfg *Config) RewriteArtist(artist string) string {
	if r, ok := cfg.ArtistRewrites[artist]; ok {
		return r
	}
	return artist
}

// RewriteAlbumID applies cfg.AlbumIDRewrites to id, returning it unchanged
// if no rewrite is configured.
func (cfg *Config) RewriteAlbumID(id string) string {
	if r, ok := cfg.AlbumIDRewrites[id]; ok {
		return r
	}
	return id
}
