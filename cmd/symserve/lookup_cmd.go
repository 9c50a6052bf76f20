package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symserve/symserve/pkg/lookup"
	"github.com/symserve/symserve/pkg/suggestion"
)

func newLookupCmd() *cobra.Command {
	var statePath string
	var maxEditDistance int
	var verbosity string
	var includeUnknown bool
	var transferCasing bool

	cmd := &cobra.Command{
		Use:   "lookup [term]",
		Short: "Find the closest dictionary terms to a single word",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			eng, err := buildEngine(cfg, statePath)
			if err != nil {
				log.Fatalf("lookup: %v", err)
			}

			v, ok := parseVerbosityFlag(verbosity)
			if !ok {
				log.Fatalf("lookup: unrecognized verbosity %q", verbosity)
			}

			results, err := eng.Lookup(args[0], v, maxEditDistance, lookup.Options{
				IncludeUnknown: includeUnknown,
				TransferCasing: transferCasing,
			})
			if err != nil {
				log.Fatalf("lookup: %v", err)
			}

			printSuggestions(results)
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to a persisted dictionary state file (msgpack)")
	cmd.Flags().IntVar(&maxEditDistance, "max-edit-distance", 2, "Maximum edit distance to search")
	cmd.Flags().StringVar(&verbosity, "verbosity", "CLOSEST", "TOP, CLOSEST, or ALL")
	cmd.Flags().BoolVar(&includeUnknown, "include-unknown", false, "Return the input itself when nothing matches")
	cmd.Flags().BoolVar(&transferCasing, "transfer-casing", false, "Carry the input's capitalization onto the suggestion")

	return cmd
}

func parseVerbosityFlag(name string) (suggestion.Verbosity, bool) {
	switch name {
	case "TOP":
		return suggestion.Top, true
	case "CLOSEST":
		return suggestion.Closest, true
	case "ALL":
		return suggestion.All, true
	default:
		return 0, false
	}
}

func printSuggestions(results []suggestion.Suggestion) {
	if len(results) == 0 {
		fmt.Println("(no suggestions)")
		return
	}
	for _, r := range results {
		fmt.Printf("%-20s distance=%d count=%d\n", r.Term, r.Distance, r.Count)
	}
}
