// Copyright 2024 The Musify Authors.
// All rights reserved.

package remoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
)

// AuthConfig holds the OAuth2 client-credentials needed to talk to the
// remote catalogue.
type AuthConfig struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	TokenURL     string `json:"tokenUrl"`
}

// HTTPClient is a concrete remoteapi.Client backed by a Spotify-Web-API-
// shaped HTTP service.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient builds a Client authenticated via OAuth2 client
// credentials.
func NewHTTPClient(ctx context.Context, baseURL string, auth AuthConfig) *HTTPClient {
	cc := clientcredentials.Config{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		TokenURL:     auth.TokenURL,
	}
	return &HTTPClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    cc.Client(ctx),
	}
}

func (c *HTTPClient) endpoint(path string, q url.Values) string {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, q), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("remoteapi: GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func kindPath(k Kind) string {
	switch k {
	case KindTrack:
		return "tracks"
	case KindAlbum:
		return "albums"
	case KindPlaylist:
		return "playlists"
	case KindArtist:
		return "artists"
	default:
		return "tracks"
	}
}

// Query implements Client.Query.
func (c *HTTPClient) Query(ctx context.Context, query string, kind Kind, limit int, useCache bool) ([]Response, error) {
	q := url.Values{"q": {query}, "type": {kindPath(kind)}, "limit": {strconv.Itoa(limit)}}
	var raw struct {
		Tracks struct {
			Items []Track `json:"items"`
		} `json:"tracks"`
		Albums struct {
			Items []Album `json:"items"`
		} `json:"albums"`
		Playlists struct {
			Items []Playlist `json:"items"`
		} `json:"playlists"`
	}
	if err := c.getJSON(ctx, "/search", q, &raw); err != nil {
		return nil, err
	}
	switch kind {
	case KindAlbum:
		return toResponses(raw.Albums.Items), nil
	case KindPlaylist:
		return toResponses(raw.Playlists.Items), nil
	default:
		return toResponses(raw.Tracks.Items), nil
	}
}

func toResponses[T any](items []T) []Response {
	out := make([]Response, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}

// GetItems implements Client.GetItems.
func (c *HTTPClient) GetItems(ctx context.Context, values []string, kind Kind, limit int, extend bool, useCache bool) ([]Response, error) {
	q := url.Values{"ids": {strings.Join(values, ",")}}
	switch kind {
	case KindAlbum:
		var out struct {
			Albums []Album `json:"albums"`
		}
		if err := c.getJSON(ctx, "/albums", q, &out); err != nil {
			return nil, err
		}
		return toResponses(out.Albums), nil
	default:
		var out struct {
			Tracks []Track `json:"tracks"`
		}
		if err := c.getJSON(ctx, "/tracks", q, &out); err != nil {
			return nil, err
		}
		return toResponses(out.Tracks), nil
	}
}

// GetUserItems implements Client.GetUserItems.
func (c *HTTPClient) GetUserItems(ctx context.Context, user string, kind Kind, limit int, useCache bool) ([]Response, error) {
	path := fmt.Sprintf("/me/%s", kindPath(kind))
	if user != "" {
		path = fmt.Sprintf("/users/%s/%s", url.PathEscape(user), kindPath(kind))
	}
	var out struct {
		Items []Playlist `json:"items"`
	}
	if err := c.getJSON(ctx, path, url.Values{"limit": {strconv.Itoa(limit)}}, &out); err != nil {
		return nil, err
	}
	return toResponses(out.Items), nil
}

// GetTracks implements Client.GetTracks (optional audio-feature
// enrichment; the base track payload is always returned).
func (c *HTTPClient) GetTracks(ctx context.Context, values []string, features bool, limit int, useCache bool) ([]Response, error) {
	return c.GetItems(ctx, values, KindTrack, limit, false, useCache)
}

// CreatePlaylist implements Client.CreatePlaylist.
func (c *HTTPClient) CreatePlaylist(ctx context.Context, name string, public, collaborative bool) (string, error) {
	body := map[string]interface{}{"name": name, "public": public, "collaborative": collaborative}
	var out Playlist
	if err := c.postJSON(ctx, "/me/playlists", body, &out); err != nil {
		return "", err
	}
	return out.URI, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, body, out interface{}) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), strings.NewReader(string(buf)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("remoteapi: POST %s: status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// AddToPlaylist implements Client.AddToPlaylist.
func (c *HTTPClient) AddToPlaylist(ctx context.Context, playlist string, items []string, limit int, skipDupes bool) (int, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	added := 0
	for start := 0; start < len(items); start += limit {
		end := start + limit
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]
		if err := c.postJSON(ctx, fmt.Sprintf("/playlists/%s/tracks", playlist), map[string]interface{}{"uris": batch}, nil); err != nil {
			return added, err
		}
		added += len(batch)
	}
	return added, nil
}

// DeletePlaylist implements Client.DeletePlaylist.
func (c *HTTPClient) DeletePlaylist(ctx context.Context, playlist string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint(fmt.Sprintf("/playlists/%s/followers", playlist), nil), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("remoteapi: DELETE playlist %s: status %d", playlist, resp.StatusCode)
	}
	return playlist, nil
}

// ClearFromPlaylist implements Client.ClearFromPlaylist.
func (c *HTTPClient) ClearFromPlaylist(ctx context.Context, playlist string, items []string, limit int) (int, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	removed := 0
	for start := 0; start < len(items); start += limit {
		end := start + limit
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]
		tracks := make([]map[string]string, len(batch))
		for i, uri := range batch {
			tracks[i] = map[string]string{"uri": uri}
		}
		req, err := c.newDeleteWithBody(ctx, fmt.Sprintf("/playlists/%s/tracks", playlist), map[string]interface{}{"tracks": tracks})
		if err != nil {
			return removed, err
		}
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return removed, err
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			return removed, fmt.Errorf("remoteapi: clear playlist %s: status %d", playlist, resp.StatusCode)
		}
		removed += len(batch)
	}
	return removed, nil
}

func (c *HTTPClient) newDeleteWithBody(ctx context.Context, path string, body interface{}) (*http.Request, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint(path, nil), strings.NewReader(string(buf)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// GetPlaylistURL implements Client.GetPlaylistURL.
func (c *HTTPClient) GetPlaylistURL(ctx context.Context, playlistOrName string) (string, error) {
	var out Playlist
	if err := c.getJSON(ctx, fmt.Sprintf("/playlists/%s", playlistOrName), nil, &out); err != nil {
		return "", err
	}
	return out.URI, nil
}

// idPrefixes maps Kind to the URI scheme prefix a concrete ID of that
// kind carries (e.g. "spotify:track:").
var idPrefixes = map[Kind]string{
	KindTrack:    "track",
	KindAlbum:    "album",
	KindPlaylist: "playlist",
	KindArtist:   "artist",
}

// ValidateIDType implements Client.ValidateIDType: reports whether value
// parses as a URI of the given kind.
func (c *HTTPClient) ValidateIDType(value string, kind Kind) bool {
	prefix := idPrefixes[kind]
	return strings.HasPrefix(value, "spotify:"+prefix+":") || (len(value) == 22 && !strings.Contains(value, ":"))
}

// Convert implements Client.Convert: normalizes a bare ID, URI, or URL to
// the requested representation ("uri" or "id").
func (c *HTTPClient) Convert(value string, kind Kind, typeIn, typeOut string) (string, error) {
	prefix := idPrefixes[kind]
	id := value
	switch {
	case strings.HasPrefix(value, "spotify:"+prefix+":"):
		id = strings.TrimPrefix(value, "spotify:"+prefix+":")
	case strings.Contains(value, "open.spotify.com/"):
		parts := strings.Split(value, "/")
		id = strings.SplitN(parts[len(parts)-1], "?", 2)[0]
	}
	switch typeOut {
	case "uri", "":
		return fmt.Sprintf("spotify:%s:%s", prefix, id), nil
	case "id":
		return id, nil
	default:
		return "", fmt.Errorf("remoteapi: unsupported output type %q", typeOut)
	}
}
