// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package search implements the "search" subcommand: scan the local music
// directory, resolve unmatched tracks against the remote catalogue, and
// write each resolved URI back to the file's tags. Tracks that find no
// match are left as they are.
package search

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/musify-sync/musify/client"
	"github.com/musify-sync/musify/cmd/musify/scan"
	"github.com/musify-sync/musify/core/item"
	coresearch "github.com/musify-sync/musify/core/search"
	"github.com/musify-sync/musify/remoteapi"
	"github.com/musify-sync/musify/tags"
)

// Command implements the "search" subcommand.
type Command struct {
	Cfg *client.Config

	dryRun bool
	limit  int
}

func (*Command) Name() string     { return "search" }
func (*Command) Synopsis() string { return "resolve local tracks against the remote catalogue" }
func (*Command) Usage() string {
	return `search [flags]:
	Walk the configured music directory, group tracks by album, and search
	the remote catalogue for anything not yet tagged with a URI:
	non-compilation albums search as a unit, everything else
	searches track by track. Resolved URIs are written back to each file's
	tags; unmatched tracks are reported and left for a check session.

`
}

func (cmd *Command) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.dryRun, "dry-run", false, "Report matches without writing tags")
	f.IntVar(&cmd.limit, "limit", 0, "Maximum number of files to scan (0 = no limit)")
}

func (cmd *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracks, errs, err := scan.Walk(cmd.Cfg.MusicDir, cmd.limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Scan failed:", err)
		return subcommands.ExitFailure
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, "scan error:", e)
	}
	for _, t := range tracks {
		cmd.Cfg.ApplyURITag(t, client.URITagValue(t))
		t.Tags.Artist = cmd.Cfg.RewriteArtist(t.Tags.Artist)
	}

	rc := remoteapi.NewHTTPClient(ctx, cmd.Cfg.RemoteBaseURL, cmd.Cfg.Auth)
	searcher := coresearch.New(rc)

	var matched, unmatched, skipped int
	for _, group := range groupByAlbum(tracks) {
		var res coresearch.Result
		var err error
		if group.album != "" && !group.compilation && len(group.tracks) > 1 {
			res, err = searcher.SearchAlbum(ctx, group.album, group.artist, group.tracks)
		} else {
			res, err = searcher.SearchItems(ctx, group.tracks)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "search %q: %v\n", group.album, err)
			continue
		}
		matched += len(res.Matched)
		unmatched += len(res.Unmatched)
		skipped += len(res.Skipped)
		for _, t := range res.Unmatched {
			fmt.Fprintf(os.Stderr, "unmatched: %s\n", t.Path)
		}
	}

	for _, t := range tracks {
		value := client.URITagOutput(t)
		if value == client.URITagValue(t) {
			continue
		}
		if _, err := tags.Write(t.Path, map[string]interface{}{tags.FieldComments: value}, true, cmd.dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", t.Path, err)
		}
	}

	fmt.Printf("matched %d, unmatched %d, skipped %d\n", matched, unmatched, skipped)
	return subcommands.ExitSuccess
}

// albumGroup collects the tracks read from one local album directory.
type albumGroup struct {
	album       string
	artist      string
	compilation bool
	tracks      []*item.LocalTrack
}

// groupByAlbum buckets tracks by (album, album artist): a compilation or any track
// lacking an album falls back to per-track search regardless of its
// group's size.
func groupByAlbum(tracks []*item.LocalTrack) []albumGroup {
	order := make([]string, 0, len(tracks))
	groups := map[string]*albumGroup{}
	for _, t := range tracks {
		artist := t.Tags.AlbumArtist
		if artist == "" {
			artist = t.Tags.Artist
		}
		k := t.Tags.Album + "\x00" + artist
		g, ok := groups[k]
		if !ok {
			g = &albumGroup{album: t.Tags.Album, artist: artist}
			groups[k] = g
			order = append(order, k)
		}
		if t.Tags.Compilation {
			g.compilation = true
		}
		g.tracks = append(g.tracks, t)
	}
	out := make([]albumGroup, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}
