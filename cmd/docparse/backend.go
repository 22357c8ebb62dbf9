// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docparse/internal/container"
	"github.com/pdiddy/docparse/internal/convert"
	"github.com/pdiddy/docparse/internal/store"
	"github.com/pdiddy/docparse/pkg/types"
)

// loadConfig unmarshals the merged viper state (config file, environment,
// defaults) into the typed configuration.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

// historyPath returns the configured history database location, defaulting
// to ~/.docparse/history.db.
func historyPath(cfg types.Config) (string, error) {
	if cfg.History.Path != "" {
		return cfg.History.Path, nil
	}
	return store.DefaultPath()
}

// newConverter builds the conversion backend selected by the --backend flag,
// falling back to the config file and finally to the native backend.
func newConverter(cmd *cobra.Command, cfg types.Config) (convert.Converter, types.Backend, error) {
	name, _ := cmd.Flags().GetString("backend")
	if name == "" {
		name = string(cfg.Convert.Backend)
	}
	if name == "" {
		name = string(types.BackendNative)
	}

	backend := types.Backend(name)
	switch backend {
	case types.BackendNative:
		return convert.NewNativeConverter(), backend, nil

	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime(cfg.Convert.Runtime)
		if err != nil {
			return nil, backend, err
		}
		c, err := convert.NewMarkitdownConverter(rt, cfg.Convert.Image)
		if err != nil {
			return nil, backend, err
		}
		return c, backend, nil

	case types.BackendRemote:
		rcfg := cfg.Convert.Remote
		rcfg.APIKey = secretDefault("docparse-api-key", rcfg.APIKey)
		if rcfg.UserAgent == "" {
			rcfg.UserAgent = "docparse/" + version
		}
		c, err := convert.NewRemoteConverter(rcfg)
		if err != nil {
			return nil, backend, err
		}
		return c, backend, nil

	default:
		return nil, backend, fmt.Errorf("unknown backend %q (want native, markitdown, or remote)", name)
	}
}
