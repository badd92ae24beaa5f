// Package config loads the widget configuration from .studiorate/widget.yaml.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	// Embedded zone data so Asia/Jerusalem resolves on hosts without tzdata.
	_ "time/tzdata"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/formspree"
	"github.com/felixgeelhaar/studiorate/pkg/application"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
	"github.com/felixgeelhaar/studiorate/pkg/domain/social"
)

const (
	Dir        = ".studiorate"
	WidgetFile = "widget.yaml"
)

// WidgetConfig is everything a host needs to mount the rating widget.
type WidgetConfig struct {
	Endpoint   string          `yaml:"endpoint" json:"endpoint"`
	StudioName string          `yaml:"studio_name" json:"studio_name"`
	Locale     string          `yaml:"locale" json:"locale"`
	Timezone   string          `yaml:"timezone,omitempty" json:"timezone,omitempty"`
	Questions  []string        `yaml:"questions" json:"questions"`
	Copy       CopyConfig      `yaml:"copy" json:"copy"`
	Social     []social.Button `yaml:"social" json:"social"`
	Log        LogConfig       `yaml:"log" json:"log"`
	Server     ServerConfig    `yaml:"server" json:"server"`
}

// CopyConfig holds every user-visible string of the dialog.
type CopyConfig struct {
	Title      string `yaml:"title" json:"title"`
	Subtitle   string `yaml:"subtitle" json:"subtitle"`
	Submit     string `yaml:"submit" json:"submit"`
	Submitting string `yaml:"submitting" json:"submitting"`
	Close      string `yaml:"close" json:"close"`
	Open       string `yaml:"open" json:"open"`
	Incomplete string `yaml:"incomplete" json:"incomplete"`
	Failed     string `yaml:"failed" json:"failed"`
	Thanks     string `yaml:"thanks" json:"thanks"`
}

type LogConfig struct {
	// Env selects the logger flavour: "production" or "development".
	Env   string `yaml:"env" json:"env"`
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Default returns the studio's stock configuration.
func Default() *WidgetConfig {
	prompts := make([]string, rating.QuestionCount)
	copy(prompts, rating.DefaultPrompts[:])
	return &WidgetConfig{
		Endpoint:   formspree.DefaultEndpoint,
		StudioName: rating.DefaultStudioName,
		Locale:     rating.DefaultLocale,
		Timezone:   "Asia/Jerusalem",
		Questions:  prompts,
		Copy: CopyConfig{
			Title:      "דעתכם חשובה לנו",
			Subtitle:   "דרגו כל סעיף בין ⭐1 ל-⭐5",
			Submit:     "שליחה",
			Submitting: "שולח...",
			Close:      "סגירה",
			Open:       "דרגו אותנו",
			Incomplete: application.DefaultCopy.Incomplete,
			Failed:     application.DefaultCopy.Failed,
			Thanks:     "תודה! הדירוג הממוצע שלך:",
		},
		Social: social.Defaults(),
		Log:    LogConfig{Env: "development", Level: "info"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DialogCopy extracts the notice texts the dialog controller needs.
func (c *WidgetConfig) DialogCopy() application.Copy {
	return application.Copy{Incomplete: c.Copy.Incomplete, Failed: c.Copy.Failed}
}

// QuestionList returns the ordered questions with configured prompts.
func (c *WidgetConfig) QuestionList() []rating.Question {
	return rating.Questions(c.Questions)
}

// Location resolves Timezone, falling back to the local zone.
func (c *WidgetConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ResolvePath ensures filename is a direct child of root/.studiorate.
func ResolvePath(root, filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(root, Dir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}
	return cleanPath, nil
}

// DefaultPath is root/.studiorate/widget.yaml.
func DefaultPath(root string) string {
	path, _ := ResolvePath(root, WidgetFile)
	return path
}

var readRetry = retry.Config{
	MaxAttempts:   3,
	InitialDelay:  10 * time.Millisecond,
	BackoffPolicy: retry.BackoffExponential,
}

// Load reads the config at path, fills unset fields from Default and
// validates the result. A missing file yields the defaults.
func Load(path string) (*WidgetConfig, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat widget config: %w", err)
	}

	retryer := retry.New[[]byte](readRetry)
	data, err := retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- path is chosen by the operator
		return os.ReadFile(path)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read widget config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML, merges defaults and validates.
func Parse(data []byte) (*WidgetConfig, error) {
	var cfg WidgetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal widget config: %w", err)
	}
	cfg.fillDefaults()
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg *WidgetConfig) error {
	if cfg == nil {
		return fmt.Errorf("widget config is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal widget config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func (c *WidgetConfig) fillDefaults() {
	def := Default()
	setIfEmpty(&c.Endpoint, def.Endpoint)
	setIfEmpty(&c.StudioName, def.StudioName)
	setIfEmpty(&c.Locale, def.Locale)
	setIfEmpty(&c.Log.Env, def.Log.Env)
	setIfEmpty(&c.Log.Level, def.Log.Level)
	setIfEmpty(&c.Server.Addr, def.Server.Addr)

	setIfEmpty(&c.Copy.Title, def.Copy.Title)
	setIfEmpty(&c.Copy.Subtitle, def.Copy.Subtitle)
	setIfEmpty(&c.Copy.Submit, def.Copy.Submit)
	setIfEmpty(&c.Copy.Submitting, def.Copy.Submitting)
	setIfEmpty(&c.Copy.Close, def.Copy.Close)
	setIfEmpty(&c.Copy.Open, def.Copy.Open)
	setIfEmpty(&c.Copy.Incomplete, def.Copy.Incomplete)
	setIfEmpty(&c.Copy.Failed, def.Copy.Failed)
	setIfEmpty(&c.Copy.Thanks, def.Copy.Thanks)

	if len(c.Questions) == 0 {
		c.Questions = def.Questions
	}
	if c.Social == nil {
		c.Social = def.Social
	}
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
