package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symserve/symserve/pkg/server"
)

func newServeCmd() *cobra.Command {
	var statePath string
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the msgpack IPC server over stdin/stdout",
		Run: func(cmd *cobra.Command, args []string) {
			if debugMode {
				log.SetLevel(log.DebugLevel)
				log.SetReportTimestamp(true)
			} else {
				log.SetLevel(log.WarnLevel)
			}

			cfg := loadConfig()
			eng, err := buildEngine(cfg, statePath)
			if err != nil {
				log.Fatalf("serve: %v", err)
			}

			srv := server.NewServer(eng)
			if err := srv.Start(); err != nil {
				log.Fatalf("serve: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to a persisted dictionary state file (msgpack)")
	cmd.Flags().BoolVar(&debugMode, "d", false, "Enable debug logging")

	return cmd
}
