// Copyright 2024 The Musify Authors.
// All rights reserved.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/musify-sync/musify/client"
	"github.com/musify-sync/musify/cmd/musify/auto"
	"github.com/musify-sync/musify/cmd/musify/backup"
	"github.com/musify-sync/musify/cmd/musify/check"
	"github.com/musify-sync/musify/cmd/musify/scan"
	"github.com/musify-sync/musify/cmd/musify/search"
	"github.com/musify-sync/musify/cmd/musify/sync"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage %v: [flag]...\n"+
			"Reconciles a local music library against a remote streaming catalogue.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	configFile := flag.String("config", filepath.Join(os.Getenv("HOME"), ".musify/config.json"),
		"Path to config file")

	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.HelpCommand(), "")

	var cfg client.Config
	subcommands.Register(&scan.Command{Cfg: &cfg}, "")
	subcommands.Register(&search.Command{Cfg: &cfg}, "")
	subcommands.Register(&check.Command{Cfg: &cfg}, "")
	subcommands.Register(&sync.Command{Cfg: &cfg}, "")
	subcommands.Register(&auto.Command{Cfg: &cfg}, "")
	subcommands.Register(&backup.Command{Cfg: &cfg}, "")

	flag.Parse()

	if cmd := flag.Arg(0); cmd != "commands" && cmd != "flags" && cmd != "help" {
		if err := client.LoadConfig(*configFile, &cfg); err != nil {
			fmt.Fprintln(os.Stderr, "Unable to read config file:", err)
			os.Exit(int(subcommands.ExitUsageError))
		}
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
