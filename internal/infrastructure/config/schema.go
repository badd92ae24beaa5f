package config

import (
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const widgetSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["endpoint", "studio_name", "locale", "questions"],
  "properties": {
    "endpoint": { "type": "string", "pattern": "^https?://[^\\s]+$" },
    "studio_name": { "type": "string", "minLength": 1 },
    "locale": { "type": "string", "pattern": "^[A-Za-z]{2,3}([-_][A-Za-z0-9]{2,8})*$" },
    "timezone": { "type": "string" },
    "questions": {
      "type": "array",
      "maxItems": 5,
      "items": { "type": "string" }
    },
    "social": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["href", "label"],
        "properties": {
          "href": { "type": "string", "pattern": "^(https?://|mailto:|tel:)[^\\s]+$" },
          "label": { "type": "string", "minLength": 1 },
          "color": { "type": "string", "pattern": "^(#[0-9A-Fa-f]{3}([0-9A-Fa-f]{3})?)?$" }
        }
      }
    },
    "log": {
      "type": "object",
      "properties": {
        "env": { "enum": ["production", "development"] },
        "level": { "enum": ["debug", "info", "warn", "error"] }
      }
    }
  }
}`

var widgetSchemaLoader = gojsonschema.NewStringLoader(widgetSchemaJSON)

// ErrInvalidConfig marks schema violations.
var ErrInvalidConfig = errors.New("invalid widget config")

// Validate checks cfg against the widget schema and reports every
// violation at once.
func Validate(cfg *WidgetConfig) error {
	if cfg == nil {
		return fmt.Errorf("widget config is nil")
	}

	result, err := gojsonschema.Validate(widgetSchemaLoader, gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return fmt.Errorf("failed to validate widget config: %w", err)
	}

	errs := make([]error, 0, len(result.Errors())+1)
	for _, e := range result.Errors() {
		errs = append(errs, errors.New(e.String()))
	}
	// The schema only sees a string; the zone must also resolve.
	if _, err := cfg.Location(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
