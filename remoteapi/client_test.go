// Copyright 2024 The Musify Authors.
// All rights reserved.

package remoteapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTestClient wires an HTTPClient at a local test server, bypassing the
// OAuth2 transport so handlers see plain requests.
func newTestClient(handler http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &HTTPClient{BaseURL: srv.URL, HTTP: srv.Client()}, srv
}

func TestQueryParsesTracksAndAlbums(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		switch r.URL.Query().Get("type") {
		case "tracks":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"tracks": map[string]interface{}{
					"items": []Track{{Name: "Song", URI: "spotify:track:aaaaaaaaaaaaaaaaaaaaaa"}},
				},
			})
		case "albums":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"albums": map[string]interface{}{
					"items": []Album{{Name: "Record", URI: "spotify:album:bbbbbbbbbbbbbbbbbbbbbb"}},
				},
			})
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	resps, err := c.Query(ctx, "song artist", KindTrack, 10, true)
	if err != nil {
		t.Fatalf("Query(track) failed: %v", err)
	}
	if len(resps) != 1 {
		t.Fatalf("Query(track) returned %d responses, want 1", len(resps))
	}
	track, ok := resps[0].(Track)
	if !ok || track.Name != "Song" {
		t.Errorf("Query(track)[0] = %+v, want Track named Song", resps[0])
	}

	resps, err = c.Query(ctx, "record", KindAlbum, 10, true)
	if err != nil {
		t.Fatalf("Query(album) failed: %v", err)
	}
	if len(resps) != 1 {
		t.Fatalf("Query(album) returned %d responses, want 1", len(resps))
	}
	album, ok := resps[0].(Album)
	if !ok || album.Name != "Record" {
		t.Errorf("Query(album)[0] = %+v, want Album named Record", resps[0])
	}
}

func TestGetJSONReportsNotFound(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := c.GetPlaylistURL(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPlaylistURL on 404 = %v, want ErrNotFound", err)
	}
}

func TestAddToPlaylistBatches(t *testing.T) {
	var batches [][]string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			URIs []string `json:"uris"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding add body: %v", err)
		}
		batches = append(batches, body.URIs)
	}))
	defer srv.Close()

	uris := []string{"u1", "u2", "u3", "u4", "u5"}
	added, err := c.AddToPlaylist(context.Background(), "pl", uris, 2, false)
	if err != nil {
		t.Fatalf("AddToPlaylist failed: %v", err)
	}
	if added != 5 {
		t.Errorf("added = %d, want 5", added)
	}
	want := [][]string{{"u1", "u2"}, {"u3", "u4"}, {"u5"}}
	if diff := cmp.Diff(want, batches); diff != "" {
		t.Errorf("batches mismatch (-want +got):\n%s", diff)
	}
}

func TestClearFromPlaylistBatches(t *testing.T) {
	var calls int
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		calls++
	}))
	defer srv.Close()

	removed, err := c.ClearFromPlaylist(context.Background(), "pl", []string{"u1", "u2", "u3"}, 2)
	if err != nil {
		t.Fatalf("ClearFromPlaylist failed: %v", err)
	}
	if removed != 3 || calls != 2 {
		t.Errorf("removed = %d (calls %d), want 3 removed across 2 calls", removed, calls)
	}
}

func TestValidateIDType(t *testing.T) {
	c := &HTTPClient{}
	for _, tc := range []struct {
		value string
		kind  Kind
		want  bool
	}{
		{"spotify:track:aaaaaaaaaaaaaaaaaaaaaa", KindTrack, true},
		{"spotify:album:aaaaaaaaaaaaaaaaaaaaaa", KindTrack, false},
		{"aaaaaaaaaaaaaaaaaaaaaa", KindTrack, true}, // bare 22-char ID
		{"not-an-id", KindTrack, false},
		{"spotify:playlist:cccccccccccccccccccccc", KindPlaylist, true},
	} {
		if got := c.ValidateIDType(tc.value, tc.kind); got != tc.want {
			t.Errorf("ValidateIDType(%q, %v) = %v, want %v", tc.value, tc.kind, got, tc.want)
		}
	}
}

func TestConvert(t *testing.T) {
	c := &HTTPClient{}
	for _, tc := range []struct {
		value   string
		kind    Kind
		typeOut string
		want    string
	}{
		{"aaaaaaaaaaaaaaaaaaaaaa", KindTrack, "uri", "spotify:track:aaaaaaaaaaaaaaaaaaaaaa"},
		{"spotify:track:aaaaaaaaaaaaaaaaaaaaaa", KindTrack, "id", "aaaaaaaaaaaaaaaaaaaaaa"},
		{"https://open.spotify.com/track/aaaaaaaaaaaaaaaaaaaaaa?si=xyz", KindTrack, "uri", "spotify:track:aaaaaaaaaaaaaaaaaaaaaa"},
		{"bbbbbbbbbbbbbbbbbbbbbb", KindPlaylist, "", "spotify:playlist:bbbbbbbbbbbbbbbbbbbbbb"},
	} {
		got, err := c.Convert(tc.value, tc.kind, "", tc.typeOut)
		if err != nil {
			t.Errorf("Convert(%q) failed: %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Convert(%q, %v, %q) = %q, want %q", tc.value, tc.kind, tc.typeOut, got, tc.want)
		}
	}

	if _, err := c.Convert("aaaaaaaaaaaaaaaaaaaaaa", KindTrack, "", "url"); err == nil {
		t.Error("Convert with unsupported output type should fail")
	}
}
