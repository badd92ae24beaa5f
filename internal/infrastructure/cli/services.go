package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
	"github.com/felixgeelhaar/studiorate/internal/infrastructure/logging"
	"github.com/felixgeelhaar/studiorate/internal/infrastructure/wiring"
)

func getProjectRoot() (string, error) {
	if projectPath != "" {
		abs, err := filepath.Abs(projectPath)
		if err != nil {
			return "", fmt.Errorf("invalid project path %q: %w", projectPath, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("project path %q: %w", abs, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project path %q is not a directory", abs)
		}
		return abs, nil
	}
	return os.Getwd()
}

func loadWorkspace() (*wiring.Workspace, error) {
	root, err := getProjectRoot()
	if err != nil {
		return nil, err
	}
	return wiring.NewWorkspace(root, configPath), nil
}

func loadConfig() (*config.WidgetConfig, *wiring.Workspace, error) {
	ws, err := loadWorkspace()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := ws.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, ws, nil
}

// loadServices builds services with a logger chosen by newLogger. Terminal
// UI commands pass logging.ForTerminalUI so nothing is drawn over the UI.
func loadServices(newLogger func(config.LogConfig) (*zap.Logger, error)) (*wiring.AppServices, *wiring.Workspace, error) {
	cfg, ws, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if newLogger == nil {
		newLogger = logging.New
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	services, err := wiring.BuildAppServices(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build services: %w", err)
	}
	return services, ws, nil
}
