// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package backup implements the "backup" subcommand: back up the local
// library's playlists to Google Cloud Storage, or download a prior backup
// and report how many playlists it holds. Thin CLI wrapper around the
// backup package's GCSBacker.
package backup

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	gcsbackup "github.com/musify-sync/musify/backup"
	"github.com/musify-sync/musify/client"
	"github.com/musify-sync/musify/cloudutil"
	"github.com/musify-sync/musify/cmd/musify/scan"
	coreauto "github.com/musify-sync/musify/core/auto"
	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/library"
	"github.com/musify-sync/musify/playlistfile"
	"github.com/musify-sync/musify/remoteapi"
)

// Command implements the "backup" subcommand.
type Command struct {
	Cfg *client.Config

	restore bool
	android bool
	limit   int
}

func (*Command) Name() string     { return "backup" }
func (*Command) Synopsis() string { return "back up or restore local playlists via Cloud Storage" }
func (*Command) Usage() string {
	return `backup [-restore] [flags]:
	Back up the local library's playlists to the configured Cloud Storage
	bucket, or with -restore, download a prior backup and report how many
	playlists it holds. The restored playlists are not merged into the
	local library and nothing is written to disk.

`
}

func (cmd *Command) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.restore, "restore", false, "Restore from the backup bucket instead of backing up")
	f.BoolVar(&cmd.android, "android", false, "Log Android-style storage links instead of web console links")
	f.IntVar(&cmd.limit, "limit", 0, "Maximum number of files to scan (0 = no limit)")
}

func (cmd *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if cmd.Cfg.BackupBucket == "" {
		fmt.Fprintln(os.Stderr, "backup: backupBucket not configured")
		return subcommands.ExitFailure
	}
	backer, err := gcsbackup.NewGCSBacker(ctx, cmd.Cfg.BackupBucket)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Connecting to Cloud Storage failed:", err)
		return subcommands.ExitFailure
	}
	if cmd.android {
		backer.LinkClient = cloudutil.AndroidClient
	}

	if cmd.restore {
		restored, err := backer.Restore(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Restore failed:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("restored %d playlist(s)\n", len(restored))
		return subcommands.ExitSuccess
	}

	tracks, errs, err := scan.Walk(cmd.Cfg.MusicDir, cmd.limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Scan failed:", err)
		return subcommands.ExitFailure
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, "scan error:", e)
	}

	playlists, err := loadRulePlaylists(cmd.Cfg, tracks)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Loading playlists failed:", err)
		return subcommands.ExitFailure
	}

	rc := remoteapi.NewHTTPClient(ctx, cmd.Cfg.RemoteBaseURL, cmd.Cfg.Auth)
	lib := library.New(rc, nil, nil, backer)
	lib.SetPlaylists(playlists)
	if err := lib.BackupPlaylists(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Backup failed:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("backed up %d playlist(s)\n", len(lib.Playlists()))
	return subcommands.ExitSuccess
}

// loadRulePlaylists evaluates every .xautopf rule file in cfg's rules
// directory against universe, the way cmd/musify/sync's fsPlaylistLoader
// does, without needing a full library.PlaylistLoader for this one-shot
// backup pass.
func loadRulePlaylists(cfg *client.Config, universe []*item.LocalTrack) (map[string]*library.Playlist, error) {
	out := map[string]*library.Playlist{}
	if cfg.RulesDir == "" {
		return out, nil
	}
	entries, err := os.ReadDir(cfg.RulesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	pathCfg := coreauto.PathConfig{LibraryFolder: cfg.MusicDir}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xautopf") {
			continue
		}
		p := filepath.Join(cfg.RulesDir, e.Name())
		sp, err := playlistfile.Read(p)
		if err != nil {
			return nil, fmt.Errorf("load rule %s: %w", p, err)
		}
		rule, err := playlistfile.ToRule(sp, pathCfg)
		if err != nil {
			return nil, fmt.Errorf("parse rule %s: %w", p, err)
		}
		tracks, err := coreauto.Evaluate(universe, nil, rule)
		if err != nil {
			return nil, fmt.Errorf("evaluate rule %s: %w", p, err)
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		out[name] = &library.Playlist{Name: name, Tracks: tracks, Rule: &rule}
	}
	return out, nil
}
