package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configSchema constrains the keys and types a config file may carry.
// Unknown keys are rejected to catch typos early instead of silently
// falling back to defaults.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "loganalyzer configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "report": {
      "type": "string",
      "enum": ["handlers", "levels", "csv", "json", "yaml"]
    },
    "output": { "type": "string" },
    "detectLevels": { "type": "boolean" },
    "concurrency": { "type": "integer", "minimum": 0 },
    "encodingFallback": { "type": "boolean" },
    "fallbackEncoding": { "type": "string", "minLength": 1 },
    "tui": { "type": "boolean" },
    "verbose": { "type": "boolean" }
  }
}`

// ValidateConfigFile checks a YAML config file against the embedded JSON
// schema. The YAML document is decoded and re-encoded as JSON because
// gojsonschema validates JSON documents only.
func ValidateConfigFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	if doc == nil {
		return nil
	}
	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting config to JSON for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if err != nil {
		return fmt.Errorf("running schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
	}
	return nil
}
