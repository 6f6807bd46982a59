// Package commands implements the DataInspect CLI commands.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datainspect/datainspect/internal/config"
	"github.com/datainspect/datainspect/internal/store"
)

type configKey struct{}

// WithConfig stores the loaded configuration in the command context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// getConfig retrieves the configuration placed in the context by the
// root command.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// openWorkspace opens the workspace state database from the config.
func openWorkspace(cmd *cobra.Command) (*store.Workspace, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	return store.OpenWorkspace(cfg.WorkspaceDB)
}

// touchRecent best-effort records a project in the recent list. Recent
// tracking never fails a primary operation.
func touchRecent(cmd *cobra.Command, path, name string) {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return
	}
	defer ws.Close()
	_ = ws.Touch(path, name)
}
