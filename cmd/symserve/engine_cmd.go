package main

import (
	"fmt"
	"os"

	"github.com/symserve/symserve/pkg/config"
	"github.com/symserve/symserve/pkg/engine"
)

// buildEngine constructs an Engine from the resolved config, optionally
// restoring persisted dictionary state from statePath.
func buildEngine(cfg *config.Config, statePath string) (*engine.Engine, error) {
	eng, err := engine.New(cfg.Engine, nil)
	if err != nil {
		return nil, fmt.Errorf("construct engine: %w", err)
	}
	if statePath == "" {
		return eng, nil
	}

	f, err := os.Open(statePath)
	if err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}
	defer f.Close()

	if err := eng.LoadState(f); err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return eng, nil
}
