package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ToTOML serializes the persisted part of the configuration.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromTOML parses a configuration. Unknown keys are rejected.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}
