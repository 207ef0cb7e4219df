package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cpa750/git-sift/internal/config"
	"github.com/cpa750/git-sift/internal/git"
)

// loadConfig reads the config file and applies command line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		if err := config.ValidateBackend(backendFlag); err != nil {
			return config.Config{}, fmt.Errorf("--backend: %w", err)
		}
		cfg.Backend = backendFlag
	}
	if flags.Changed("local") {
		cfg.LocalOnly = localOnly
	}
	return cfg, nil
}

// openBackend opens the repository containing the working directory.
func openBackend(ctx context.Context, name string) (git.Backend, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return openBackendAt(ctx, name, wd)
}

func openBackendAt(ctx context.Context, name, dir string) (git.Backend, error) {
	switch name {
	case config.BackendGoGit:
		b, err := git.OpenGoGit(ctx, dir)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BackendGit, "":
		b, err := git.OpenExec(ctx, dir)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, config.ValidateBackend(name)
	}
}
