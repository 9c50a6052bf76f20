package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symserve/symserve/pkg/compound"
)

func newCompoundCmd() *cobra.Command {
	var statePath string
	var maxEditDistance int
	var transferCasing bool
	var ignoreNonWords bool

	cmd := &cobra.Command{
		Use:   "compound [phrase]",
		Short: "Correct a whole phrase, merging adjacent tokens when it improves the match",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			eng, err := buildEngine(cfg, statePath)
			if err != nil {
				log.Fatalf("compound: %v", err)
			}

			result, err := eng.Correct(args[0], maxEditDistance, compound.Options{
				TransferCasing: transferCasing,
				IgnoreNonWords: ignoreNonWords,
			})
			if err != nil {
				log.Fatalf("compound: %v", err)
			}

			fmt.Printf("%s\ndistance=%d count=%d\n", result.Term, result.Distance, result.Count)
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to a persisted dictionary state file (msgpack)")
	cmd.Flags().IntVar(&maxEditDistance, "max-edit-distance", 2, "Maximum edit distance per token")
	cmd.Flags().BoolVar(&transferCasing, "transfer-casing", false, "Carry input capitalization onto the result")
	cmd.Flags().BoolVar(&ignoreNonWords, "ignore-non-words", true, "Pass integers and acronyms through unchanged")

	return cmd
}
