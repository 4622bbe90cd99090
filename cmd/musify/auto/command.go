// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package auto implements the "auto" subcommand: evaluate a single
// .xautopf auto-playlist rule against the local music directory and
// write the result out as a plain M3U playlist. Pairs core/auto's rule
// evaluator with playlistfile's M3U writer over cmd/musify/scan's
// directory walk.
package auto

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/musify-sync/musify/client"
	"github.com/musify-sync/musify/cmd/musify/scan"
	coreauto "github.com/musify-sync/musify/core/auto"
	"github.com/musify-sync/musify/playlistfile"
)

// Command implements the "auto" subcommand.
type Command struct {
	Cfg *client.Config

	rule  string
	out   string
	limit int
}

func (*Command) Name() string     { return "auto" }
func (*Command) Synopsis() string { return "evaluate a .xautopf rule into an M3U playlist" }
func (*Command) Usage() string {
	return `auto -rule <path> -out <path> [flags]:
	Scan the local music directory, evaluate the named .xautopf rule
	against it, and write the resulting track list as an M3U playlist.

`
}

func (cmd *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.rule, "rule", "", "Path to a .xautopf rule file")
	f.StringVar(&cmd.out, "out", "", "Path to write the resulting M3U playlist")
	f.IntVar(&cmd.limit, "limit", 0, "Maximum number of files to scan (0 = no limit)")
}

func (cmd *Command) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if cmd.rule == "" || cmd.out == "" {
		fmt.Fprintln(os.Stderr, "auto: -rule and -out are required")
		return subcommands.ExitUsageError
	}

	tracks, errs, err := scan.Walk(cmd.Cfg.MusicDir, cmd.limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Scan failed:", err)
		return subcommands.ExitFailure
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, "scan error:", e)
	}

	sp, err := playlistfile.Read(cmd.rule)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Reading rule failed:", err)
		return subcommands.ExitFailure
	}
	pathCfg := coreauto.PathConfig{LibraryFolder: cmd.Cfg.MusicDir}
	rule, err := playlistfile.ToRule(sp, pathCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Parsing rule failed:", err)
		return subcommands.ExitFailure
	}

	result, err := coreauto.Evaluate(tracks, nil, rule)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Evaluating rule failed:", err)
		return subcommands.ExitFailure
	}

	paths := make([]string, len(result))
	for i, t := range result {
		paths[i] = t.Path
	}
	if err := os.MkdirAll(filepath.Dir(cmd.out), 0755); err != nil {
		fmt.Fprintln(os.Stderr, "Creating output directory failed:", err)
		return subcommands.ExitFailure
	}
	if err := playlistfile.WriteM3U(cmd.out, paths, pathCfg); err != nil {
		fmt.Fprintln(os.Stderr, "Writing playlist failed:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("wrote %d track(s) to %s\n", len(paths), cmd.out)
	return subcommands.ExitSuccess
}
