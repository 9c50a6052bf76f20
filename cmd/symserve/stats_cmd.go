package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symserve/symserve/pkg/engine"
)

func newStatsCmd() *cobra.Command {
	var statePath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report scalar counters for a persisted dictionary state",
		Run: func(cmd *cobra.Command, args []string) {
			if statePath == "" {
				log.Fatal("stats: --state is required")
			}

			cfg := loadConfig()
			eng, err := engine.New(cfg.Engine, nil)
			if err != nil {
				log.Fatalf("stats: %v", err)
			}

			f, err := os.Open(statePath)
			if err != nil {
				log.Fatalf("stats: open state: %v", err)
			}
			defer f.Close()
			if err := eng.LoadState(f); err != nil {
				log.Fatalf("stats: load state: %v", err)
			}

			for k, v := range eng.Stats() {
				fmt.Printf("%-15s %d\n", k, v)
			}
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to a persisted dictionary state file (msgpack)")
	return cmd
}
