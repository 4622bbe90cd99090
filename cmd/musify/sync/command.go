// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package sync implements the "sync" subcommand: load the local library's
// tracks and auto-playlist rules, then push each playlist's intended
// track set to the remote catalogue in one of three modes via
// core/library.Library.
package sync

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/musify-sync/musify/client"
	"github.com/musify-sync/musify/cmd/musify/scan"
	"github.com/musify-sync/musify/core/auto"
	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/library"
	syncengine "github.com/musify-sync/musify/core/sync"
	"github.com/musify-sync/musify/playlistfile"
	"github.com/musify-sync/musify/remoteapi"
)

// Command implements the "sync" subcommand.
type Command struct {
	Cfg *client.Config

	mode   string
	reload bool
	dryRun bool
	limit  int
}

func (*Command) Name() string     { return "sync" }
func (*Command) Synopsis() string { return "push local playlists to the remote catalogue" }
func (*Command) Usage() string {
	return `sync [flags]:
	Scan the local music directory, evaluate every .xautopf rule in the
	configured rules directory against it, and sync each resulting
	playlist to the remote service. -mode selects the sync
	policy: new (add only), refresh (replace entirely), or sync (add and
	remove to match exactly).

`
}

func (cmd *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.mode, "mode", "sync", "Sync policy: new, refresh, or sync")
	f.BoolVar(&cmd.reload, "reload", false, "Bypass the remote playlist cache when resolving current state")
	f.BoolVar(&cmd.dryRun, "dry-run", false, "Compute the sync result without writing to the remote service")
	f.IntVar(&cmd.limit, "limit", 0, "Maximum number of files to scan (0 = no limit)")
}

func parseMode(s string) (syncengine.Mode, error) {
	switch strings.ToLower(s) {
	case "new":
		return syncengine.ModeNew, nil
	case "refresh":
		return syncengine.ModeRefresh, nil
	case "sync":
		return syncengine.ModeSync, nil
	default:
		return 0, fmt.Errorf("sync: unrecognized mode %q (want new, refresh, or sync)", s)
	}
}

func (cmd *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode, err := parseMode(cmd.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	rc := remoteapi.NewHTTPClient(ctx, cmd.Cfg.RemoteBaseURL, cmd.Cfg.Auth)
	lib := library.New(rc, fsTrackLoader{cmd.Cfg, cmd.limit}, fsPlaylistLoader{cmd.Cfg}, nil)
	if err := lib.Load(ctx, true, true); err != nil {
		fmt.Fprintln(os.Stderr, "Load failed:", err)
		return subcommands.ExitFailure
	}
	for _, e := range lib.Errors {
		fmt.Fprintln(os.Stderr, "scan error:", e)
	}

	results, err := lib.Sync(ctx, nil, mode, cmd.reload, cmd.dryRun)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Sync failed:", err)
		return subcommands.ExitFailure
	}
	for _, name := range sortedKeys(results) {
		r := results[name]
		fmt.Printf("%-30s start=%-5d added=%-5d removed=%-5d final=%-5d\n", name, r.Start, r.Added, r.Removed, r.Final)
	}
	return subcommands.ExitSuccess
}

func sortedKeys(m map[string]syncengine.Result) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// fsTrackLoader implements library.TrackLoader over the configured music
// directory.
type fsTrackLoader struct {
	cfg   *client.Config
	limit int
}

func (l fsTrackLoader) LoadTracks(ctx context.Context) ([]*item.LocalTrack, []error, error) {
	tracks, errs, err := scan.Walk(l.cfg.MusicDir, l.limit)
	if err != nil {
		return nil, errs, err
	}
	for _, t := range tracks {
		l.cfg.ApplyURITag(t, client.URITagValue(t))
		t.Tags.Artist = l.cfg.RewriteArtist(t.Tags.Artist)
	}
	return tracks, errs, nil
}

// fsPlaylistLoader implements library.PlaylistLoader by evaluating every
// .xautopf rule file in the configured rules directory against the scanned
// track universe.
type fsPlaylistLoader struct {
	cfg *client.Config
}

func (l fsPlaylistLoader) LoadPlaylists(ctx context.Context, universe []*item.LocalTrack) (map[string]*library.Playlist, error) {
	out := map[string]*library.Playlist{}
	if l.cfg.RulesDir == "" {
		return out, nil
	}
	entries, err := os.ReadDir(l.cfg.RulesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	pathCfg := auto.PathConfig{LibraryFolder: l.cfg.MusicDir}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xautopf") {
			continue
		}
		p := filepath.Join(l.cfg.RulesDir, e.Name())
		sp, err := playlistfile.Read(p)
		if err != nil {
			return nil, fmt.Errorf("load rule %s: %w", p, err)
		}
		rule, err := playlistfile.ToRule(sp, pathCfg)
		if err != nil {
			return nil, fmt.Errorf("parse rule %s: %w", p, err)
		}
		tracks, err := auto.Evaluate(universe, nil, rule)
		if err != nil {
			return nil, fmt.Errorf("evaluate rule %s: %w", p, err)
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		out[name] = &library.Playlist{Name: name, Tracks: tracks, Rule: &rule}
	}
	return out, nil
}
