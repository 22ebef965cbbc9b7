package main

import (
	"errors"
	"fmt"

	"voxelnoise/internal/config"
)

// writeConfigFromEnv persists a configuration handed over through the
// environment to cfgPath so the rest of the run reads it like any other file.
func writeConfigFromEnv(cfgPath string) (bool, error) {
	cfg, ok, err := config.FromEnv()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if cfgPath == "" {
		return false, errors.New("environment provided configuration but no --config path supplied")
	}
	if err := config.Save(cfg, cfgPath); err != nil {
		return false, fmt.Errorf("persist environment config: %w", err)
	}
	return true, nil
}
