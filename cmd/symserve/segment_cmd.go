package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newSegmentCmd() *cobra.Command {
	var statePath string
	var maxEditDistance int
	var maxSegmentationWordLength int

	cmd := &cobra.Command{
		Use:   "segment [phrase]",
		Short: "Split a run of text into dictionary words",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			eng, err := buildEngine(cfg, statePath)
			if err != nil {
				log.Fatalf("segment: %v", err)
			}

			composition := eng.Segment(args[0], maxEditDistance, maxSegmentationWordLength)
			fmt.Println(composition.CorrectedString)
			fmt.Printf("distance_sum=%d log_prob_sum=%.4f\n", composition.DistanceSum, composition.LogProbSum)
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to a persisted dictionary state file (msgpack)")
	cmd.Flags().IntVar(&maxEditDistance, "max-edit-distance", 0, "Maximum edit distance per segment")
	cmd.Flags().IntVar(&maxSegmentationWordLength, "max-word-length", 0, "Maximum word length considered per split (0 uses the configured prefix_length)")

	return cmd
}
