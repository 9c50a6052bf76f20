// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Command symserve is the CLI and msgpack server front end for the correction
engine: single-term lookup, compound phrase correction, and word
segmentation over a SymSpell-style delete index.

# Usage

Run a single lookup:

	symserve lookup memebers --max-edit-distance 2 --verbosity CLOSEST

Correct a whole phrase:

	symserve compound "wh ere is th elove" --max-edit-distance 2

Segment a run-on string:

	symserve segment thequickbrownfoxjumpsoverthelazydog

Build a dictionary from corpus and frequency files, then serve it over
msgpack IPC:

	symserve build --unigrams en_50k.txt --bigrams bigrams.txt --out state.msgpack
	symserve serve --state state.msgpack

# Configuration

Engine construction parameters, server limits, and CLI defaults load from a
TOML file with the same fallback chain as the file is found in
~/.config/symserve/config.toml, created with documented defaults on first
run. Override the path with --config on any subcommand.
*/
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symserve/symserve/pkg/config"
)

const (
	Version = "0.1.0"
	AppName = "symserve"
	gh      = "https://github.com/symserve/symserve"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: "Approximate string correction over a delete index",
		Long:  `symserve provides single-term lookup, compound phrase correction, and word segmentation, served over msgpack IPC or run directly from the CLI.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (defaults to ~/.config/symserve/config.toml)")

	rootCmd.AddCommand(
		newLookupCmd(),
		newCompoundCmd(),
		newSegmentCmd(),
		newBuildCmd(),
		newServeCmd(),
		newStatsCmd(),
		newREPLCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Run: func(cmd *cobra.Command, args []string) {
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    false,
				ReportTimestamp: false,
				Prefix:          "",
			})

			styles := log.DefaultStyles()
			styles.Values["version"] = lipgloss.NewStyle().Bold(true).
				Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			logger.SetStyles(styles)

			logger.Print("")
			logger.Print("[ symserve ] approximate string correction")
			logger.Print("", "version", Version)
			logger.Print("")
			logger.Print("Github Repo", "gh", gh)
		},
	}
}

// loadConfig resolves and loads the engine configuration, falling back to
// builtin defaults on any error, matching the tolerant load chain
// pkg/config implements.
func loadConfig() *config.Config {
	cfg, activePath, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		log.Warnf("failed to load configuration: %v; using builtin defaults", err)
		return config.DefaultConfig()
	}
	log.Debugf("using config: %s", activePath)
	return cfg
}
