// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package check implements the "check" subcommand: an interactive
// terminal session wired to core/check.Checker, reading a line from
// stdin and dispatching on a short command set.
package check

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/musify-sync/musify/client"
	"github.com/musify-sync/musify/cmd/musify/scan"
	corecheck "github.com/musify-sync/musify/core/check"
	"github.com/musify-sync/musify/remoteapi"
	"github.com/musify-sync/musify/tags"
)

// Command implements the "check" subcommand.
type Command struct {
	Cfg *client.Config

	interval int
	limit    int
}

func (*Command) Name() string     { return "check" }
func (*Command) Synopsis() string { return "interactively reconcile local and remote playlists" }
func (*Command) Usage() string {
	return `check [flags]:
	Build temporary remote playlists from the configured music directory's
	tracks, pause periodically for interactive review, and reconcile any
	edits made on the remote side back onto local tags.

`
}

func (cmd *Command) SetFlags(f *flag.FlagSet) {
	f.IntVar(&cmd.interval, "interval", 10, "Playlists to create before pausing for input")
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
	}

	rc := remoteapi.NewHTTPClient(ctx, cmd.Cfg.RemoteBaseURL, cmd.Cfg.Auth)
	checker := corecheck.New(rc, NewStdioPrompter(os.Stdin, os.Stdout))
	if cmd.interval > 0 {
		checker.Interval = cmd.interval
	}

	res, ok, err := checker.Run(ctx, []corecheck.Collection{{Name: "library", Items: tracks}})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Check failed:", err)
		return subcommands.ExitFailure
	}
	if !ok {
		fmt.Println("check session aborted")
		return subcommands.ExitSuccess
	}
	for _, t := range tracks {
		value := client.URITagOutput(t)
		if value == client.URITagValue(t) {
			continue
		}
		if _, err := tags.Write(t.Path, map[string]interface{}{tags.FieldComments: value}, true, false); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", t.Path, err)
		}
	}
	fmt.Printf("switched %d, unavailable %d, unchanged %d\n", len(res.Switched), len(res.Unavailable), len(res.Unchanged))
	return subcommands.ExitSuccess
}

// StdioPrompter implements corecheck.Prompter by reading lines from an
// io.Reader and writing prompts to an io.Writer.
type StdioPrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewStdioPrompter builds a StdioPrompter reading from in and writing
// prompts to out.
func NewStdioPrompter(in io.Reader, out io.Writer) *StdioPrompter {
	return &StdioPrompter{scanner: bufio.NewScanner(in), out: out}
}

// Prompt implements corecheck.Prompter.
func (p *StdioPrompter) Prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprintf(p.out, "%s\n> ", text)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Print implements corecheck.Prompter.
func (p *StdioPrompter) Print(ctx context.Context, text string) error {
	_, err := fmt.Fprintln(p.out, text)
	return err
}
