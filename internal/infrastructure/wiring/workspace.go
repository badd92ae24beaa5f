package wiring

import (
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
)

// Workspace locates the widget configuration for a project root.
type Workspace struct {
	Root       string
	ConfigPath string
}

// NewWorkspace resolves the config path under root. A non-empty override
// (the --config flag) wins over the default location.
func NewWorkspace(root, override string) *Workspace {
	path := override
	if path == "" {
		path = config.DefaultPath(root)
	}
	return &Workspace{Root: root, ConfigPath: path}
}

// LoadConfig reads root/.env, the config file and STUDIORATE_* overrides,
// in that order, and validates the merged result.
func (w *Workspace) LoadConfig() (*config.WidgetConfig, error) {
	if err := config.LoadDotEnv(filepath.Join(w.Root, ".env")); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(w.ConfigPath)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
