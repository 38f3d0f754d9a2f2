package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownSection reports a top-level key the configuration does not define.
var ErrUnknownSection = errors.New("unknown config section")

// knownSections lists the recognized top-level keys, for error messages.
//
//nolint:gochecknoglobals // static lookup table
var knownSections = []string{"logging", "server", "store", "engine", "dashboard"}

// ShallowMergeYAML merges the YAML document in data onto cfg at section
// granularity. Each present top-level section decodes over the matching
// struct, absent sections keep their current values, and unrecognized keys
// fail with ErrUnknownSection.
func ShallowMergeYAML(cfg *Config, data []byte) error {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	for key := range doc {
		node := doc[key]
		if node.Kind == 0 || node.Tag == "!!null" {
			continue
		}
		if err := unmarshalSection(cfg, key, &node); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalSection(cfg *Config, key string, node *yaml.Node) error {
	var target any
	switch key {
	case "logging":
		target = &cfg.Logging
	case "server":
		target = &cfg.Server
	case "store":
		target = &cfg.Store
	case "engine":
		target = &cfg.Engine
	case "dashboard":
		target = &cfg.Dashboard
	default:
		return fmt.Errorf("%w: %q (known sections: %v)", ErrUnknownSection, key, knownSections)
	}

	if err := node.Decode(target); err != nil {
		return fmt.Errorf("decoding %s section: %w", key, err)
	}
	return nil
}
