package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symserve/symserve/internal/cli"
)

func newREPLCmd() *cobra.Command {
	var statePath string
	var mode string
	var maxEditDistance int
	var maxSegmentationWordLength int

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive read-eval-print loop over lookup, compound, or segment",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			eng, err := buildEngine(cfg, statePath)
			if err != nil {
				log.Fatalf("repl: %v", err)
			}

			m, ok := map[string]cli.Mode{
				"lookup":   cli.ModeLookup,
				"compound": cli.ModeCompound,
				"segment":  cli.ModeSegment,
			}[mode]
			if !ok {
				log.Fatalf("repl: unrecognized mode %q", mode)
			}

			r := cli.NewREPL(eng, m, maxEditDistance, maxSegmentationWordLength)
			if err := r.Start(); err != nil {
				log.Print("")
			}
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to a persisted dictionary state file (msgpack)")
	cmd.Flags().StringVar(&mode, "mode", "lookup", "lookup, compound, or segment")
	cmd.Flags().IntVar(&maxEditDistance, "max-edit-distance", 2, "Maximum edit distance per query")
	cmd.Flags().IntVar(&maxSegmentationWordLength, "max-word-length", 0, "Maximum word length considered per segment split")

	return cmd
}
