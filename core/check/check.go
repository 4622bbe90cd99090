// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package check implements the Checker: an interactive
// reconciliation session that builds temporary remote playlists from a
// batch of local collections, lets the user edit them on the remote
// service, then reconciles the edits back onto the local items.
package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/match"
	"github.com/musify-sync/musify/core/tagnorm"
	"github.com/musify-sync/musify/remoteapi"
)

// State is one of the Checker's session states.
type State int

const (
	StateCreating State = iota
	StateAwaitingInput
	StateReconciling
	StateCleaningUp
	StateDone
	StateQuitting
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "CREATING"
	case StateAwaitingInput:
		return "AWAITING_INPUT"
	case StateReconciling:
		return "RECONCILING"
	case StateCleaningUp:
		return "CLEANING_UP"
	case StateDone:
		return "DONE"
	case StateQuitting:
		return "QUITTING"
	default:
		return "UNKNOWN"
	}
}

// Collection is a named group of local tracks to check together, usually
// a playlist.
type Collection struct {
	Name  string
	Items []*item.LocalTrack
}

// Result is the outcome of a completed (non-quit) check session.
type Result struct {
	Switched   []*item.LocalTrack
	Unavailable []*item.LocalTrack
	Unchanged  []*item.LocalTrack
}

// Prompter abstracts user interaction so the Checker's reconciliation
// logic can be tested without a terminal.
type Prompter interface {
	// Prompt displays text and returns the user's trimmed response.
	Prompt(ctx context.Context, text string) (string, error)
	// Print displays text with no response expected, used to preview a
	// playlist's items or an item's path.
	Print(ctx context.Context, text string) error
}

// Checker drives the session. Interval bounds how many temporary
// playlists are created before pausing for user input.
type Checker struct {
	Client    remoteapi.Client
	Matcher   *match.Matcher
	Prompt    Prompter
	Interval  int
	TagConfig tagnorm.Config

	state        State
	playlistURLs map[string]string
	collections  map[string]Collection
	// names preserves the input order of the managed collections;
	// collections is keyed for the substring/URL lookups pause makes, but
	// reconciliation walks names so collections are processed in the
	// order they arrived.
	names     []string
	remaining []*item.LocalTrack
	switched     []*item.LocalTrack
	quit         bool
	skip         bool
}

// New builds a Checker with the default interval of 10.
func New(c remoteapi.Client, p Prompter) *Checker {
	return &Checker{Client: c, Matcher: match.New(), Prompt: p, Interval: 10, TagConfig: tagnorm.DefaultConfig()}
}

// State returns the Checker's current session state.
func (c *Checker) State() State { return c.state }

// Run executes a full session: creates temporary playlists in
// batches of Interval, pausing between batches for user input, and
// reconciling changes after each pause. ok is false if the user quit
// before completion (distinct from an empty but completed result).
func (c *Checker) Run(ctx context.Context, collections []Collection) (Result, bool, error) {
	hasItems := false
	for _, col := range collections {
		if len(col.Items) > 0 {
			hasItems = true
			break
		}
	}
	if !hasItems {
		return Result{}, true, nil
	}

	c.playlistURLs = map[string]string{}
	c.collections = map[string]Collection{}
	c.names = nil
	c.quit = false
	c.skip = false

	var finalSwitched, finalUnavailable, finalUnchanged []*item.LocalTrack

	for i, col := range collections {
		c.state = StateCreating
		if err := c.makeTempPlaylist(ctx, col); err != nil {
			return Result{}, false, err
		}
		if c.quit {
			c.state = StateCleaningUp
			c.deleteTempPlaylists(ctx)
			return Result{}, false, nil
		}

		last := i+1 == len(collections)
		if len(c.playlistURLs)%c.Interval != 0 && !last {
			continue
		}

		c.state = StateAwaitingInput
		if err := c.pause(ctx); err != nil {
			return Result{}, false, err
		}

		if !c.quit {
			c.state = StateReconciling
			sw, unavail, unchanged, err := c.reconcileAll(ctx)
			if err != nil {
				return Result{}, false, err
			}
			finalSwitched = append(finalSwitched, sw...)
			finalUnavailable = append(finalUnavailable, unavail...)
			finalUnchanged = append(finalUnchanged, unchanged...)
		}

		c.state = StateCleaningUp
		c.deleteTempPlaylists(ctx)

		if c.quit || c.skip {
			break
		}
	}

	if c.quit {
		c.state = StateQuitting
		return Result{}, false, nil
	}
	c.state = StateDone
	return Result{Switched: finalSwitched, Unavailable: finalUnavailable, Unchanged: finalUnchanged}, true, nil
}

func (c *Checker) makeTempPlaylist(ctx context.Context, col Collection) error {
	var uris []string
	for _, it := range col.Items {
		if it.ItemHasURI() == item.URIValid {
			uris = append(uris, it.ItemURI())
		}
	}
	if len(uris) == 0 {
		return nil
	}
	url, err := c.Client.CreatePlaylist(ctx, col.Name, false, false)
	if err != nil {
		return err
	}
	c.playlistURLs[col.Name] = url
	c.collections[col.Name] = col
	c.names = append(c.names, col.Name)
	_, err = c.Client.AddToPlaylist(ctx, url, uris, 0, false)
	return err
}

func (c *Checker) deleteTempPlaylists(ctx context.Context) {
	for _, url := range c.playlistURLs {
		c.Client.DeletePlaylist(ctx, url)
	}
	c.playlistURLs = map[string]string{}
	c.collections = map[string]Collection{}
	c.names = nil
}

// pause stops for user input between playlist batches: Return continues, s/q
// skip or quit the remaining checks, h redisplays help, a playlist-name
// substring prints that playlist's items, and anything else the remote
// API recognizes as a URL/URI/ID is pretty-printed via the remote API.
func (c *Checker) pause(ctx context.Context) error {
	help := "Enter to continue, a playlist name (or substring) to list it, a URL/URI/ID to preview it, 's' to skip remaining checks, 'q' to quit, 'h' for help"
	for {
		in, err := c.Prompt.Prompt(ctx, help)
		if err != nil {
			return err
		}
		switch in {
		case "":
			return nil
		case "s":
			c.skip = true
			return nil
		case "q":
			c.quit = true
			return nil
		case "h":
			continue
		default:
			if name, ok := c.findPlaylistBySubstring(in); ok {
				if err := c.printCollectionItems(ctx, name); err != nil {
					return err
				}
				continue
			}
			if c.Client.ValidateIDType(in, remoteapi.KindPlaylist) {
				if err := c.printRemoteTracks(ctx, in); err != nil {
					return err
				}
			}
			continue
		}
	}
}

// findPlaylistBySubstring returns the name of the managed temp playlist
// whose name contains sub (case-insensitive).
func (c *Checker) findPlaylistBySubstring(sub string) (string, bool) {
	sub = strings.ToLower(sub)
	for name := range c.collections {
		if strings.Contains(strings.ToLower(name), sub) {
			return name, true
		}
	}
	return "", false
}

// printCollectionItems prints the source items of the named managed
// collection.
func (c *Checker) printCollectionItems(ctx context.Context, name string) error {
	col := c.collections[name]
	lines := make([]string, 0, len(col.Items)+1)
	lines = append(lines, name+":")
	for _, it := range col.Items {
		lines = append(lines, "  "+it.ItemName())
	}
	return c.Prompt.Print(ctx, strings.Join(lines, "\n"))
}

// printRemoteTracks fetches value via the remote API and pretty-prints
// its tracks.
func (c *Checker) printRemoteTracks(ctx context.Context, value string) error {
	resps, err := c.Client.GetItems(ctx, []string{value}, remoteapi.KindPlaylist, 0, false, false)
	if err != nil {
		return err
	}
	if len(resps) == 0 {
		return c.Prompt.Print(ctx, fmt.Sprintf("%s: not found", value))
	}
	pl, ok := resps[0].(remoteapi.Playlist)
	if !ok {
		return c.Prompt.Print(ctx, fmt.Sprintf("%s: not a playlist", value))
	}
	lines := make([]string, 0, len(pl.Tracks)+1)
	lines = append(lines, pl.Name+":")
	for _, pt := range pl.Tracks {
		lines = append(lines, "  "+pt.Track.Name)
	}
	return c.Prompt.Print(ctx, strings.Join(lines, "\n"))
}

func (c *Checker) reconcileAll(ctx context.Context) (switched, unavailable, unchanged []*item.LocalTrack, err error) {
	for _, name := range c.names {
		col := c.collections[name]
		for {
			if err := c.matchToRemote(ctx, name, col); err != nil {
				return nil, nil, nil, err
			}
			restart, err := c.matchToInput(ctx, name)
			if err != nil {
				return nil, nil, nil, err
			}
			if len(c.remaining) == 0 || !restart {
				break
			}
		}

		for _, it := range col.Items {
			switch it.ItemHasURI() {
			case item.URIUnavailable:
				unavailable = append(unavailable, it)
			case item.URIUnknown:
				unchanged = append(unchanged, it)
			}
		}
		switched = append(switched, c.switched...)
		c.switched = nil

		if c.quit || c.skip {
			break
		}
	}
	return switched, unavailable, unchanged, nil
}

// matchToRemote reconciles user edits made on the remote side: reload the
// temporary playlist's current track list from the remote service, diff
// it against the source collection by key, and try to reconcile any
// removed/missing source items against newly added remote items via the
// Matcher.
func (c *Checker) matchToRemote(ctx context.Context, name string, col Collection) error {
	url := c.playlistURLs[name]
	resps, err := c.Client.GetItems(ctx, []string{url}, remoteapi.KindPlaylist, 1, false, false)
	if err != nil {
		return err
	}
	var remoteTracks []*item.RemoteTrack
	if len(resps) > 0 {
		if pl, ok := resps[0].(remoteapi.Playlist); ok {
			for _, pt := range pl.Tracks {
				remoteTracks = append(remoteTracks, c.trackFromResponse(pt.Track))
			}
		}
	}

	sourceByKey := map[string]*item.LocalTrack{}
	for _, it := range col.Items {
		if it.ItemHasURI() == item.URIValid {
			sourceByKey[it.Key()] = it
		}
	}
	remoteByKey := map[string]*item.RemoteTrack{}
	var added []*item.RemoteTrack
	for _, rt := range remoteTracks {
		remoteByKey[rt.Key()] = rt
		if _, ok := sourceByKey[rt.Key()]; !ok {
			added = append(added, rt)
		}
	}
	var removed []*item.LocalTrack
	for _, it := range col.Items {
		if it.ItemHasURI() != item.URIValid {
			continue
		}
		if _, ok := remoteByKey[it.Key()]; !ok {
			removed = append(removed, it)
		}
	}
	var missing []*item.LocalTrack
	for _, it := range col.Items {
		if it.ItemHasURI() == item.URIUnknown {
			missing = append(missing, it)
		}
	}

	if len(added)+len(removed)+len(missing) == 0 {
		// Open Question decision #2: when URI-equal counts still match
		// exactly, nothing changed. Otherwise the collection held
		// duplicate URIs and one copy was removed on the remote side;
		// find that by comparing per-URI multiset counts rather than
		// plain set membership.
		sourceCounts := map[string]int{}
		for _, it := range col.Items {
			if it.ItemHasURI() == item.URIValid {
				sourceCounts[it.ItemURI()]++
			}
		}
		remoteCounts := map[string]int{}
		for _, rt := range remoteTracks {
			if rt.ItemHasURI() == item.URIValid {
				remoteCounts[rt.ItemURI()]++
			}
		}
		for uri, n := range sourceCounts {
			if remoteCounts[uri] != n {
				for _, it := range col.Items {
					if it.ItemURI() == uri {
						missing = append(missing, it)
					}
				}
			}
		}
	}

	remaining := append(append([]*item.LocalTrack{}, removed...), missing...)
	addedTaggable := make([]match.Taggable, len(added))
	for i, rt := range added {
		addedTaggable[i] = match.RemoteTrackView{RemoteTrack: rt}
	}
	var stillRemaining []*item.LocalTrack
	for _, it := range remaining {
		if len(addedTaggable) == 0 {
			stillRemaining = append(stillRemaining, it)
			continue
		}
		best, _, ok := c.Matcher.ScoreMatch(match.TrackView{LocalTrack: it}, addedTaggable, 0.1, 0.8, []match.Field{match.FieldName})
		if !ok {
			stillRemaining = append(stillRemaining, it)
			continue
		}
		rt := best.(match.RemoteTrackView)
		it.SetURI(rt.ItemURI())
		c.switched = append(c.switched, it)
		for i, a := range addedTaggable {
			if a.(match.RemoteTrackView).RemoteTrack == rt.RemoteTrack {
				addedTaggable = append(addedTaggable[:i], addedTaggable[i+1:]...)
				break
			}
		}
	}
	c.remaining = stillRemaining
	return nil
}

// trackFromResponse adapts a remoteapi.Track into an item.RemoteTrack,
// populating clean tags with the same normalizer local tracks use so the
// Matcher (matchToRemote's name-only pass) compares like with like; see
// core/search.Searcher.toRemoteTrack for the analogous conversion.
func (c *Checker) trackFromResponse(t remoteapi.Track) *item.RemoteTrack {
	var artists []string
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	rawArtist := strings.Join(artists, "; ")
	rt := &item.RemoteTrack{
		Identity:  item.Identity{Name: t.Name, URI: t.URI, HasURI: item.URIValid},
		Artists:   artists,
		Album:     t.Album.Name,
		Length:    float64(t.DurationMs) / 1000,
		RawName:   t.Name,
		RawArtist: rawArtist,
		RawAlbum:  t.Album.Name,
	}
	rt.SetCleanTags(tagnorm.Clean(tagnorm.Source{Name: t.Name, Title: t.Name, Artist: rawArtist, Album: t.Album.Name}, c.TagConfig))
	return rt
}

// matchToInput drives the manual-correction prompt loop: ask the user,
// per remaining item, to mark it unavailable, leave it unresolved, quit,
// skip, recheck, or supply a replacement ID/URI/URL. Returns restart=true
// when the user asked to recheck the playlist from scratch.
func (c *Checker) matchToInput(ctx context.Context, name string) (bool, error) {
	if len(c.remaining) == 0 {
		return false, nil
	}
	help := "u=unavailable, ua=unavailable (all remaining), n=leave unresolved, na=leave unresolved (all remaining), p=print path, r=recheck, s=skip all, q=quit, or paste a URI/URL/ID"

	remaining := append([]*item.LocalTrack{}, c.remaining...)
	var stillRemaining []*item.LocalTrack
	for idx := 0; idx < len(remaining); idx++ {
		it := remaining[idx]
		for {
			in, err := c.Prompt.Prompt(ctx, fmt.Sprintf("%s [%s]: %s", name, it.ItemName(), help))
			if err != nil {
				return false, err
			}
			switch in {
			case "u":
				it.SetUnavailable()
				goto next
			case "ua":
				for _, rem := range remaining[idx:] {
					rem.SetUnavailable()
				}
				c.remaining = stillRemaining
				return false, nil
			case "n":
				it.SetURI("")
				goto next
			case "na":
				for _, rem := range remaining[idx:] {
					rem.SetURI("")
				}
				c.remaining = stillRemaining
				return false, nil
			case "p":
				if it.Path != "" {
					c.Prompt.Print(ctx, it.Path)
				} else {
					c.Prompt.Print(ctx, "(no path)")
				}
				continue
			case "r":
				c.remaining = append(stillRemaining, remaining[idx:]...)
				return true, nil
			case "s":
				c.skip = true
				c.remaining = nil
				return false, nil
			case "q":
				c.quit = true
				c.remaining = nil
				return false, nil
			case "h":
				continue
			default:
				if !c.Client.ValidateIDType(in, remoteapi.KindTrack) {
					continue
				}
				uri, err := c.Client.Convert(in, remoteapi.KindTrack, "", "uri")
				if err != nil {
					continue
				}
				it.SetURI(uri)
				c.switched = append(c.switched, it)
				goto next
			}
		}
	next:
	}
	c.remaining = stillRemaining
	return false, nil
}
