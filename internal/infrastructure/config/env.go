package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every override variable.
const EnvPrefix = "STUDIORATE_"

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv overlays STUDIORATE_* variables on cfg.
func ApplyEnv(cfg *WidgetConfig) {
	ApplyEnvFrom(cfg, os.LookupEnv)
}

// ApplyEnvFrom is ApplyEnv with an injectable lookup.
func ApplyEnvFrom(cfg *WidgetConfig, lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"ENDPOINT":    &cfg.Endpoint,
		"STUDIO_NAME": &cfg.StudioName,
		"LOCALE":      &cfg.Locale,
		"TIMEZONE":    &cfg.Timezone,
		"LOG_LEVEL":   &cfg.Log.Level,
		"LOG_FILE":    &cfg.Log.File,
		"ENV":         &cfg.Log.Env,
		"ADDR":        &cfg.Server.Addr,
	}
	for key, field := range overrides {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*field = v
		}
	}
}
