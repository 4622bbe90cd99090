// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package scan implements the "scan" subcommand: walk a music directory,
// read each file's tags, and report what was found.
package scan

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/musify-sync/musify/client"
	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/tagnorm"
	"github.com/musify-sync/musify/tags"
)

// errStop halts Walk's filepath.Walk call once limit is reached.
var errStop = errors.New("scan: limit reached")

// Command implements the "scan" subcommand.
type Command struct {
	Cfg *client.Config

	limit   int
	verbose bool
}

func (*Command) Name() string     { return "scan" }
func (*Command) Synopsis() string { return "scan the local music directory and report tag reads" }
func (*Command) Usage() string {
	return `scan [flags]:
	Walk the configured music directory, read each file's tags, and print a
	per-file error report plus a final count. Per-file read failures are
	skipped and recorded; the scan continues.

`
}

func (cmd *Command) SetFlags(f *flag.FlagSet) {
	f.IntVar(&cmd.limit, "limit", 0, "Maximum number of files to scan (0 = no limit)")
	f.BoolVar(&cmd.verbose, "v", false, "Print every track scanned, not just errors")
}

func (cmd *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracks, errs, err := Walk(cmd.Cfg.MusicDir, cmd.limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Scan failed:", err)
		return subcommands.ExitFailure
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, "error:", e)
	}
	if cmd.verbose {
		for _, t := range tracks {
			fmt.Printf("%-40s %-30s %-30s\n", t.Path, t.Tags.Artist, t.Tags.Title)
		}
	}
	fmt.Printf("scanned %d track(s), %d error(s)\n", len(tracks), len(errs))
	return subcommands.ExitSuccess
}

// Walk scans dir for music files and reads each one's tags into a
// LocalTrack. Per-file read failures are collected into errs rather than
// aborting; limit caps the number of files read when positive.
func Walk(dir string, limit int) (tracks []*item.LocalTrack, errs []error, err error) {
	cfg := tagnorm.DefaultConfig()
	err = filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			errs = append(errs, walkErr)
			return nil
		}
		if info.IsDir() || !tags.IsMusicPath(path) {
			return nil
		}
		if limit > 0 && len(tracks) >= limit {
			return errStop
		}
		t, readErr := tags.ReadTrack(path, cfg)
		if readErr != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, readErr))
			return nil
		}
		tracks = append(tracks, t)
		return nil
	})
	if errors.Is(err, errStop) {
		err = nil
	}
	return tracks, errs, err
}
