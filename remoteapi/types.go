// Copyright 2024 The Musify Authors.
// All rights reserved.

package remoteapi

// The types below mirror the shape of a Spotify-style Web API response,
// trimmed to the fields the core's Searcher/Checker/sync engine actually
// read. They are the Response payloads a concrete Client returns.

// SimpleArtist is the minimal artist reference embedded in tracks/albums.
type SimpleArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	URI  string `json:"uri"`
}

// SimpleAlbum is the minimal album reference embedded in a track.
type SimpleAlbum struct {
	Name        string         `json:"name"`
	ID          string         `json:"id"`
	URI         string         `json:"uri"`
	Artists     []SimpleArtist `json:"artists"`
	TotalTracks int            `json:"total_tracks"`
	ReleaseDate string         `json:"release_date"`
	Images      []Image        `json:"images"`
}

// Image is an image link with known dimensions.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Track is the track payload returned by Query/GetItems/GetTracks for
// KindTrack.
type Track struct {
	Name       string         `json:"name"`
	ID         string         `json:"id"`
	URI        string         `json:"uri"`
	Album      SimpleAlbum    `json:"album"`
	Artists    []SimpleArtist `json:"artists"`
	DurationMs int            `json:"duration_ms"`
	DiscNumber int            `json:"disc_number"`
	Popularity int            `json:"popularity"`
}

// Album is the album payload returned for KindAlbum, including a
// page-able track list.
type Album struct {
	Name        string         `json:"name"`
	ID          string         `json:"id"`
	URI         string         `json:"uri"`
	Artists     []SimpleArtist `json:"artists"`
	TotalTracks int            `json:"total_tracks"`
	Tracks      []Track        `json:"tracks"`
	Images      []Image        `json:"images"`
}

// PlaylistTrack wraps a Track with the date it was added to a playlist.
type PlaylistTrack struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// Playlist is the playlist payload returned for KindPlaylist.
type Playlist struct {
	Name        string          `json:"name"`
	ID          string          `json:"id"`
	URI         string          `json:"uri"`
	Owner       string          `json:"owner"`
	Followers   int             `json:"followers"`
	Description string          `json:"description"`
	Tracks      []PlaylistTrack `json:"tracks"`
	Images      []Image         `json:"images"`
}
